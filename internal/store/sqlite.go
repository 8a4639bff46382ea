package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// SQLiteStore is the durable backend for the verified log.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const verifiedSchema = `
CREATE TABLE IF NOT EXISTS verified_quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    speaker TEXT NOT NULL,
    book TEXT NOT NULL,
    context_before TEXT NOT NULL DEFAULT '',
    context_after TEXT NOT NULL DEFAULT '',
    historically_significant INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    verification_date TEXT NOT NULL,
    original_attribution TEXT NOT NULL DEFAULT '{}'
);`

// OpenSQLite initializes or connects to the verified-quote database and
// applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(verifiedSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Name identifies the backend in warnings.
func (s *SQLiteStore) Name() string { return "sqlite:" + s.path }

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the full verified log in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.VerifiedQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT text, speaker, book, context_before, context_after,
               historically_significant, notes, verification_date, original_attribution
        FROM verified_quotes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query verified quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.VerifiedQuote
	for rows.Next() {
		var (
			vq          model.VerifiedQuote
			significant int
			verifiedAt  string
			attribution string
		)
		if err := rows.Scan(&vq.Text, &vq.Speaker, &vq.Book, &vq.ContextBefore, &vq.ContextAfter,
			&significant, &vq.Notes, &verifiedAt, &attribution); err != nil {
			return nil, fmt.Errorf("scan verified quote: %w", err)
		}
		vq.HistoricallySignificant = significant != 0
		if ts, parseErr := time.Parse(time.RFC3339Nano, verifiedAt); parseErr == nil {
			vq.VerificationDate = ts
		}
		if err := json.Unmarshal([]byte(attribution), &vq.OriginalAttribution); err != nil {
			return nil, fmt.Errorf("parse attribution: %w", err)
		}
		quotes = append(quotes, vq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verified quotes: %w", err)
	}
	return quotes, nil
}

// Save replaces the stored log with the given snapshot inside one
// transaction. The replace is all-or-nothing: a failed write leaves the
// previous snapshot untouched.
func (s *SQLiteStore) Save(ctx context.Context, quotes []model.VerifiedQuote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM verified_quotes"); err != nil {
		return fmt.Errorf("clear verified quotes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO verified_quotes (
            text, speaker, book, context_before, context_after,
            historically_significant, notes, verification_date, original_attribution
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, vq := range quotes {
		attribution, err := json.Marshal(vq.OriginalAttribution)
		if err != nil {
			return fmt.Errorf("marshal attribution: %w", err)
		}
		significant := 0
		if vq.HistoricallySignificant {
			significant = 1
		}
		if _, err := stmt.ExecContext(ctx,
			vq.Text, vq.Speaker, vq.Book, vq.ContextBefore, vq.ContextAfter,
			significant, vq.Notes, vq.VerificationDate.UTC().Format(time.RFC3339Nano),
			string(attribution),
		); err != nil {
			return fmt.Errorf("insert verified quote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

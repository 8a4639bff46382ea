package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// FileCache is the local-cache backend: a single JSON file holding the latest
// verified log plus the time it was written. It is best-effort backup, used
// when the durable store is unavailable.
type FileCache struct {
	path string
}

// NewFileCache creates a file cache at the given path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

type cacheRecord struct {
	VerifiedQuotes []model.VerifiedQuote `json:"verified_quotes"`
	LastSaved      time.Time             `json:"lastSaved"`
}

// Name identifies the backend in warnings.
func (c *FileCache) Name() string { return "cache:" + c.path }

// Load reads the cached log. Missing or unparseable files are errors so the
// gateway can keep walking the chain.
func (c *FileCache) Load(_ context.Context) ([]model.VerifiedQuote, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	var rec cacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	return rec.VerifiedQuotes, nil
}

// Save writes the full log with the current timestamp.
func (c *FileCache) Save(_ context.Context, quotes []model.VerifiedQuote) error {
	rec := cacheRecord{VerifiedQuotes: quotes, LastSaved: time.Now()}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

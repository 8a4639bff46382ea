// Package store persists the verified-quote log through an ordered chain of
// backends: a durable SQLite store first, then a local JSON cache. Reads take
// the first backend that succeeds; writes go to the durable store and always
// also to the cache, so a durable outage degrades durability without losing
// the operator's work.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// Backend is one persistence layer for the verified log. Load returns an
// error when the backend holds no usable data (missing resource and parse
// failures alike); the gateway then tries the next backend.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]model.VerifiedQuote, error)
	Save(ctx context.Context, quotes []model.VerifiedQuote) error
}

// PersistError is the soft failure: the durable store rejected the write but
// the cache accepted it. The session continues; the operator is warned with
// the last known durable timestamp.
type PersistError struct {
	Backend     string
	LastDurable time.Time
	Err         error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("durable store %s failed (cache holds latest): %v", e.Backend, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// TotalPersistFailure means every backend rejected the write. The in-memory
// log is still intact; only durability is at risk.
type TotalPersistFailure struct {
	DurableErr error
	CacheErr   error
}

func (e *TotalPersistFailure) Error() string {
	return fmt.Sprintf("all persistence backends failed: durable: %v; cache: %v", e.DurableErr, e.CacheErr)
}

// Gateway composes the durable store and the local cache.
type Gateway struct {
	durable      Backend
	cache        Backend
	writeTimeout time.Duration
	lastDurable  time.Time
}

// NewGateway creates a gateway. writeTimeout bounds each durable write;
// expiry is treated as a durable-store failure and triggers the cache path.
func NewGateway(durable, cache Backend, writeTimeout time.Duration) *Gateway {
	return &Gateway{durable: durable, cache: cache, writeTimeout: writeTimeout}
}

// LoadVerified reads the verified log, preferring the durable store and
// falling back to the cache. An empty durable result is treated like a miss:
// a freshly created store that never took a write must not shadow work the
// cache captured during an outage. When every backend comes up empty the
// result is an empty log and a nil error: persistence absence is normal on
// first run.
func (g *Gateway) LoadVerified(ctx context.Context) []model.VerifiedQuote {
	for _, backend := range []Backend{g.durable, g.cache} {
		if backend == nil {
			continue
		}
		quotes, err := backend.Load(ctx)
		if err != nil || len(quotes) == 0 {
			continue
		}
		return quotes
	}
	return nil
}

// AppendAndPersist writes the full verified log. The durable store is tried
// first under the write timeout; the cache is written regardless of the
// durable outcome, so the newest state survives a durable outage. Returns the
// timestamp of the last successful durable write alongside the error
// classification.
func (g *Gateway) AppendAndPersist(ctx context.Context, quotes []model.VerifiedQuote) (time.Time, error) {
	durableErr := g.saveDurable(ctx, quotes)
	if durableErr == nil {
		g.lastDurable = time.Now()
	}

	var cacheErr error
	if g.cache != nil {
		cacheErr = g.cache.Save(ctx, quotes)
	}

	if durableErr == nil {
		return g.lastDurable, nil
	}
	if cacheErr == nil {
		name := "none"
		if g.durable != nil {
			name = g.durable.Name()
		}
		return g.lastDurable, &PersistError{Backend: name, LastDurable: g.lastDurable, Err: durableErr}
	}
	return g.lastDurable, &TotalPersistFailure{DurableErr: durableErr, CacheErr: cacheErr}
}

func (g *Gateway) saveDurable(ctx context.Context, quotes []model.VerifiedQuote) error {
	if g.durable == nil {
		return fmt.Errorf("no durable backend configured")
	}
	if g.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.writeTimeout)
		defer cancel()
	}
	return g.durable.Save(ctx, quotes)
}

// snapshot is the export document shape.
type snapshot struct {
	VerifiedQuotes []model.VerifiedQuote `json:"verified_quotes"`
	ExportedAt     time.Time             `json:"exported_at"`
}

// ExportSnapshot serializes the full verified log plus an export timestamp to
// the given sink. Pure apart from the write.
func ExportSnapshot(w io.Writer, quotes []model.VerifiedQuote, at time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{VerifiedQuotes: quotes, ExportedAt: at}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DefaultExportName names the export document with the given date.
func DefaultExportName(at time.Time) string {
	return "verified_quotes_" + at.Format("2006-01-02") + ".json"
}

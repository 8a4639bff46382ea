// Package curate drives the sequential review workflow: a cursor over one
// book's quotes with accept/reject/skip decisions feeding an append-only
// verified log. One session, one operator, one outstanding operation at a
// time; callers must serialize Decide/Skip/Advance.
package curate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/model"
	"github.com/miguelito4/herodotus-quotes/internal/query"
	"github.com/miguelito4/herodotus-quotes/internal/store"
)

// State is the session lifecycle state.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateExhausted State = "exhausted" // Cursor past the last quote of the selected book
	StateError     State = "error"     // Corpus load failed; no workflow possible
)

// ErrExhausted is returned when a decision is attempted with no current quote.
var ErrExhausted = errors.New("no current quote: book exhausted")

// ErrNoBook is returned when a cursor operation runs before SelectBook.
var ErrNoBook = errors.New("no book selected")

// Session is an explicit review session handle. It owns the in-memory
// verified log; persistence failures never roll back appends.
type Session struct {
	state   State
	loadErr error

	engine  *query.Engine
	gateway *store.Gateway
	policy  model.RejectPolicy
	now     func() time.Time

	verified []model.VerifiedQuote

	book     string
	filtered []model.QuoteRecord
	index    int

	speakerOverride string
	notes           string
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the decision timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRejectPolicy overrides the reject handling policy.
func WithRejectPolicy(policy model.RejectPolicy) Option {
	return func(s *Session) { s.policy = policy }
}

// NewSession builds a session over an already-loaded corpus and resumes the
// verified log through the gateway's fallback chain. A missing log is a
// normal first run.
func NewSession(ctx context.Context, cs *corpus.Store, gateway *store.Gateway, opts ...Option) *Session {
	s := &Session{
		state:   StateLoading,
		engine:  query.NewEngine(cs),
		gateway: gateway,
		policy:  model.RejectRecord,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cs == nil || cs.Len() == 0 {
		s.state = StateError
		s.loadErr = &corpus.LoadError{Err: fmt.Errorf("empty corpus")}
		return s
	}

	s.verified = gateway.LoadVerified(ctx)
	s.state = StateReady
	return s
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Err reports the corpus load failure when the session is in StateError.
func (s *Session) Err() error { return s.loadErr }

// Verified returns the in-memory verified log.
func (s *Session) Verified() []model.VerifiedQuote { return s.verified }

// Book returns the selected book.
func (s *Session) Book() string { return s.book }

// Index returns the cursor position within the filtered list.
func (s *Session) Index() int { return s.index }

// Remaining returns how many quotes are left at or after the cursor.
func (s *Session) Remaining() int { return len(s.filtered) - s.index }

// SelectBook recomputes the working set for the given book and resets the
// cursor. Already-verified quotes are not hidden: verified status is a
// progress counter, not a filter, so a revisited book shows every quote again.
func (s *Session) SelectBook(book string) error {
	if s.state == StateError {
		return s.loadErr
	}

	s.book = book
	s.filtered = s.engine.QuotesIn(book)
	s.index = 0
	s.speakerOverride = ""
	s.notes = ""
	s.refreshState()
	return nil
}

// Current returns the quote under the cursor, or false when the book is
// exhausted or not selected.
func (s *Session) Current() (model.QuoteRecord, bool) {
	if s.state != StateReady || s.index >= len(s.filtered) {
		return model.QuoteRecord{}, false
	}
	return s.filtered[s.index], true
}

// Advance moves the cursor forward, clamped at the list length. Reaching the
// length transitions to StateExhausted.
func (s *Session) Advance() {
	if s.book == "" || s.state == StateError {
		return
	}
	if s.index < len(s.filtered) {
		s.index++
	}
	s.refreshState()
}

// Retreat moves the cursor back, clamped at zero. Retreating from an
// exhausted book resumes review of its last quote.
func (s *Session) Retreat() {
	if s.book == "" || s.state == StateError {
		return
	}
	if s.index > 0 {
		s.index--
	}
	s.refreshState()
}

// SetSpeakerOverride buffers a corrected speaker for the next decision.
func (s *Session) SetSpeakerOverride(name string) { s.speakerOverride = name }

// SetNotes buffers curator notes for the next decision.
func (s *Session) SetNotes(notes string) { s.notes = notes }

// Decide records a decision for the current quote and advances. Rejections
// follow the configured policy: under RejectRecord they append a log entry
// with historically_significant=false, recording every reviewed quote; under
// RejectAdvance they only move on.
//
// The in-memory append always stands. A persistence failure comes back as
// *store.PersistError (cache holds the latest, keep working) or
// *store.TotalPersistFailure (nothing was written, memory is the only copy);
// both are warnings to surface, not reasons to stop.
func (s *Session) Decide(ctx context.Context, accepted, significant bool) error {
	if s.book == "" {
		return ErrNoBook
	}
	current, ok := s.Current()
	if !ok {
		return ErrExhausted
	}

	if !accepted && s.policy == model.RejectAdvance {
		s.clearBuffer()
		s.Advance()
		return nil
	}

	if !accepted {
		significant = false
	}
	vq := model.NewVerifiedQuote(current, significant, s.speakerOverride, s.notes, s.now())
	s.verified = append(s.verified, vq)

	_, persistErr := s.gateway.AppendAndPersist(ctx, s.verified)

	s.clearBuffer()
	s.Advance()
	return persistErr
}

// Skip advances without recording anything: the only path that reviews a
// quote without a decision.
func (s *Session) Skip() error {
	if s.book == "" {
		return ErrNoBook
	}
	if _, ok := s.Current(); !ok {
		return ErrExhausted
	}
	s.clearBuffer()
	s.Advance()
	return nil
}

// VerifiedCount counts log entries recorded for the given book.
func (s *Session) VerifiedCount(book string) int {
	n := 0
	for _, vq := range s.verified {
		if book == query.BookAll || vq.Book == book {
			n++
		}
	}
	return n
}

// Progress reports verified/total for the selected book as a percentage.
func (s *Session) Progress() float64 {
	total := len(s.filtered)
	if total == 0 {
		return 0
	}
	return float64(s.VerifiedCount(s.book)) / float64(total) * 100
}

func (s *Session) clearBuffer() {
	s.speakerOverride = ""
	s.notes = ""
}

func (s *Session) refreshState() {
	if s.state == StateError {
		return
	}
	if s.book != "" && s.index >= len(s.filtered) {
		s.state = StateExhausted
		return
	}
	s.state = StateReady
}

// Package query filters and orders corpus quotes and draws random selections.
// Query results are pure functions of (speaker, book, order) over an immutable
// corpus, so they are memoized.
package query

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// BookAll selects quotes from every book.
const BookAll = "all"

// Order is the book sort direction for query results.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ErrEmptySelection is returned when a random draw is attempted against an
// empty filtered set. Callers must treat it as "nothing to show", not a fault.
var ErrEmptySelection = errors.New("no quotes match the current selection")

// Engine answers ordered and random quote selections over a corpus store.
type Engine struct {
	store *corpus.Store
	memo  *gocache.Cache
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects a deterministic random source, used by tests to make
// draws reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine creates a query engine over the given store.
func NewEngine(store *corpus.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		memo:  gocache.New(gocache.NoExpiration, 0),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QuotesFor returns the quotes attributed to exactly the given speaker,
// restricted to bookFilter unless it is BookAll, ordered by numeric book value
// in the requested direction. Ties within a book keep corpus order. The
// speaker key is the raw attribution: alias resolution belongs to search, not
// to the join.
func (e *Engine) QuotesFor(speaker, bookFilter string, order Order) []model.QuoteRecord {
	key := speaker + "|" + bookFilter + "|" + string(order)
	if cached, found := e.memo.Get(key); found {
		return cached.([]model.QuoteRecord)
	}

	var result []model.QuoteRecord
	for _, q := range e.store.Quotes() {
		if q.Speaker != speaker {
			continue
		}
		if bookFilter != BookAll && q.Book != bookFilter {
			continue
		}
		result = append(result, q)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := model.BookValue(result[i].Book), model.BookValue(result[j].Book)
		if order == OrderDesc {
			return a > b
		}
		return a < b
	})

	e.memo.Set(key, result, gocache.NoExpiration)
	return result
}

// QuotesIn returns all quotes in a book (or every quote for BookAll) in corpus
// order. This is the curation working set.
func (e *Engine) QuotesIn(bookFilter string) []model.QuoteRecord {
	key := "|" + bookFilter + "|corpus"
	if cached, found := e.memo.Get(key); found {
		return cached.([]model.QuoteRecord)
	}

	var result []model.QuoteRecord
	for _, q := range e.store.Quotes() {
		if bookFilter != BookAll && q.Book != bookFilter {
			continue
		}
		result = append(result, q)
	}

	e.memo.Set(key, result, gocache.NoExpiration)
	return result
}

// Random draws one quote uniformly at random from the book-filtered set.
// Returns ErrEmptySelection when the set is empty.
func (e *Engine) Random(bookFilter string) (model.QuoteRecord, error) {
	candidates := e.QuotesIn(bookFilter)
	if len(candidates) == 0 {
		return model.QuoteRecord{}, ErrEmptySelection
	}
	return candidates[e.rng.Intn(len(candidates))], nil
}

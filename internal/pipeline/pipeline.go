// Package pipeline orchestrates corpus recovery: fetch the source volumes,
// clean and split them into books, and run quote extraction per book on a
// worker pool.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/miguelito4/herodotus-quotes/internal/cache"
	"github.com/miguelito4/herodotus-quotes/internal/extract"
	"github.com/miguelito4/herodotus-quotes/internal/model"
	"github.com/miguelito4/herodotus-quotes/internal/score"
	"github.com/miguelito4/herodotus-quotes/internal/worker"
)

// VolumeURLs are the two Project Gutenberg volumes of the source text.
var VolumeURLs = []string{
	"https://www.gutenberg.org/cache/epub/2707/pg2707.txt",
	"https://www.gutenberg.org/cache/epub/2456/pg2456.txt",
}

// ExtractOptions narrow an extraction run.
type ExtractOptions struct {
	MinConfidence float64  // Drop quotes below this attribution confidence
	Books         []string // Digit book ids to keep; empty means all
	Workers       int      // Books extracted in parallel
}

// Pipeline runs the full extraction flow.
type Pipeline struct {
	fetcher   *Fetcher
	extractor *extract.Extractor
	verbose   bool
}

// NewPipeline builds a pipeline from configuration and character metadata.
func NewPipeline(cfg *model.Config, characters model.CharacterSet) *Pipeline {
	var fetchCache cache.Cache
	if cfg.Cache.Enabled {
		fetchCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	return &Pipeline{
		fetcher:   NewFetcher(cfg.HTTP, fetchCache),
		extractor: extract.NewExtractor(characters),
		verbose:   cfg.Output.Verbose,
	}
}

// Run fetches the given volumes and extracts the quote corpus.
func (p *Pipeline) Run(ctx context.Context, urls []string, opts ExtractOptions) ([]model.QuoteRecord, error) {
	var combined strings.Builder
	for _, url := range urls {
		raw, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch volume: %w", err)
		}
		cleaned, err := CleanVolume(raw)
		if err != nil {
			return nil, fmt.Errorf("clean volume %s: %w", url, err)
		}
		combined.WriteString(cleaned)
		combined.WriteString("\n\n")
		if p.verbose {
			fmt.Fprintf(os.Stderr, "Fetched and cleaned %s (%d bytes)\n", url, len(cleaned))
		}
	}

	books := SplitBooks(combined.String())
	if len(books) == 0 {
		return nil, fmt.Errorf("no book headers found in source text")
	}
	books = filterBooks(books, opts.Books)

	quotes := p.extractBooks(books, opts.Workers)

	if opts.MinConfidence > 0 {
		filtered := quotes[:0]
		for _, q := range quotes {
			if q.Confidence >= opts.MinConfidence {
				filtered = append(filtered, q)
			}
		}
		quotes = filtered
	}

	assignIDs(quotes)

	// IDs number quotes in book order; the written corpus is ranked so the
	// strongest extractions lead the file.
	scorer := score.NewScorer()
	for i := range quotes {
		quotes[i].Quality = scorer.Assess(quotes[i])
	}
	score.Rank(quotes)

	return quotes, nil
}

// bookJob extracts one book on the pool.
type bookJob struct {
	book      Book
	extractor *extract.Extractor
}

type bookResult struct {
	book   string
	quotes []model.QuoteRecord
	err    error
}

func (r *bookResult) Err() error { return r.err }

func (j *bookJob) Execute(ctx context.Context) worker.Result {
	select {
	case <-ctx.Done():
		return &bookResult{book: j.book.Number, err: ctx.Err()}
	default:
	}
	return &bookResult{
		book:   j.book.Number,
		quotes: j.extractor.ExtractBook(j.book.Number, j.book.Content),
	}
}

func (p *Pipeline) extractBooks(books []Book, workers int) []model.QuoteRecord {
	pool := worker.NewPool(workers)
	pool.Start()
	for _, book := range books {
		pool.Submit(&bookJob{book: book, extractor: p.extractor})
	}
	results := pool.Wait()

	// Results complete in arbitrary order; restore book order before
	// concatenating so corpus order is deterministic.
	var byBook []*bookResult
	for _, r := range results {
		br := r.(*bookResult)
		if br.err != nil {
			continue
		}
		byBook = append(byBook, br)
	}
	sort.Slice(byBook, func(i, j int) bool {
		return model.BookValue(byBook[i].book) < model.BookValue(byBook[j].book)
	})

	var quotes []model.QuoteRecord
	for _, br := range byBook {
		if p.verbose {
			fmt.Fprintf(os.Stderr, "Book %s: %d quotes\n", br.book, len(br.quotes))
		}
		quotes = append(quotes, br.quotes...)
	}
	return quotes
}

func filterBooks(books []Book, keep []string) []Book {
	if len(keep) == 0 {
		return books
	}
	want := make(map[string]struct{}, len(keep))
	for _, b := range keep {
		want[b] = struct{}{}
	}
	var filtered []Book
	for _, book := range books {
		if _, ok := want[book.Number]; ok {
			filtered = append(filtered, book)
		}
	}
	return filtered
}

// assignIDs numbers quotes per speaker within each book.
func assignIDs(quotes []model.QuoteRecord) {
	counts := make(map[string]int)
	for i := range quotes {
		key := quotes[i].Book + "|" + quotes[i].Speaker
		counts[key]++
		quotes[i].ID = extract.QuoteID(quotes[i].Book, quotes[i].Speaker, counts[key])
	}
}

// Package search derives the set of books and speakers from the corpus and
// resolves free-text queries to speaker names via name and alias matching.
// The corpus is small and static, so every call is a linear scan; no
// incremental index is kept.
package search

import (
	"sort"
	"strings"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// Index answers book and speaker lookups over a corpus store.
type Index struct {
	store *corpus.Store
}

// NewIndex creates an index over the given store.
func NewIndex(store *corpus.Store) *Index {
	return &Index{store: store}
}

// ListBooks returns the distinct book identifiers in ascending numeric order.
func (ix *Index) ListBooks() []string {
	seen := make(map[string]struct{})
	var books []string
	for _, q := range ix.store.Quotes() {
		if _, ok := seen[q.Book]; ok {
			continue
		}
		seen[q.Book] = struct{}{}
		books = append(books, q.Book)
	}

	sort.SliceStable(books, func(i, j int) bool {
		return model.BookValue(books[i]) < model.BookValue(books[j])
	})
	return books
}

// ListSpeakers returns the distinct raw speaker names, sorted for stable
// display.
func (ix *Index) ListSpeakers() []string {
	seen := make(map[string]struct{})
	var speakers []string
	for _, q := range ix.store.Quotes() {
		if _, ok := seen[q.Speaker]; ok {
			continue
		}
		seen[q.Speaker] = struct{}{}
		speakers = append(speakers, q.Speaker)
	}

	sort.Strings(speakers)
	return speakers
}

// MatchSpeakers returns the speakers whose raw name, standard name, or any
// alias contains the query case-insensitively. An empty query matches nothing;
// listing everything is ListSpeakers' job, not a search result.
func (ix *Index) MatchSpeakers(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	characters := ix.store.Characters()

	var matched []string
	for _, speaker := range ix.ListSpeakers() {
		if speakerMatches(speaker, characters[speaker], query) {
			matched = append(matched, speaker)
		}
	}
	return matched
}

func speakerMatches(speaker string, meta model.CharacterMetadata, query string) bool {
	if strings.Contains(strings.ToLower(speaker), query) {
		return true
	}
	if strings.Contains(strings.ToLower(meta.StandardName), query) {
		return true
	}
	for _, alias := range meta.Aliases {
		if strings.Contains(strings.ToLower(alias), query) {
			return true
		}
	}
	return false
}

// Package corpus loads and holds the immutable parsed quote corpus and the
// character metadata it is attributed against. The store is read-only after
// load; every other component works against it.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// LoadError indicates the corpus could not be loaded. It is fatal to a
// session: no quotes means no workflow.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load corpus %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store holds the loaded corpus. All accessors return data owned by the
// store; callers must not mutate returned slices.
type Store struct {
	quotes     []model.QuoteRecord
	characters model.CharacterSet
}

// New builds a store from already-parsed data. Used by tests and by the
// extraction pipeline to query freshly extracted quotes.
func New(quotes []model.QuoteRecord, characters model.CharacterSet) *Store {
	if characters == nil {
		characters = model.CharacterSet{}
	}
	return &Store{quotes: quotes, characters: characters}
}

// Load reads the quote corpus and character metadata from disk. The quotes
// file may be JSON (an array of records) or the block-text interchange format;
// the characters file may be JSON or YAML. A missing characters file is not an
// error: metadata is optional and lookups fall back to raw speaker names.
func Load(quotesPath, charactersPath string) (*Store, error) {
	quotes, err := loadQuotes(quotesPath)
	if err != nil {
		return nil, &LoadError{Path: quotesPath, Err: err}
	}
	if len(quotes) == 0 {
		return nil, &LoadError{Path: quotesPath, Err: fmt.Errorf("no quotes found")}
	}

	characters, err := LoadCharacters(charactersPath)
	if err != nil {
		return nil, &LoadError{Path: charactersPath, Err: err}
	}

	return New(quotes, characters), nil
}

// Quotes returns all records in corpus order.
func (s *Store) Quotes() []model.QuoteRecord { return s.quotes }

// Characters returns the character metadata set.
func (s *Store) Characters() model.CharacterSet { return s.characters }

// Len returns the number of records in the corpus.
func (s *Store) Len() int { return len(s.quotes) }

func loadQuotes(path string) ([]model.QuoteRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var quotes []model.QuoteRecord
		if err := json.Unmarshal(data, &quotes); err != nil {
			return nil, fmt.Errorf("parse quotes JSON: %w", err)
		}
		return quotes, nil
	}

	// Fall back to the block-text interchange format.
	return ParseBlockText(trimmed)
}

// LoadCharacters reads character metadata on its own, for callers (like the
// extraction pipeline) that need the character set before a corpus exists.
func LoadCharacters(path string) (model.CharacterSet, error) {
	if path == "" {
		return model.CharacterSet{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.CharacterSet{}, nil
		}
		return nil, err
	}

	characters := model.CharacterSet{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &characters); err != nil {
			return nil, fmt.Errorf("parse characters YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &characters); err != nil {
			return nil, fmt.Errorf("parse characters JSON: %w", err)
		}
	}
	return characters, nil
}

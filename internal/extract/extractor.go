// Package extract recovers attributed quotations from the cleaned source
// text. Attribution is literal: regexp patterns plus character-name and alias
// matching against a context window, never semantic analysis.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// contextWindow is how much surrounding text is kept with each quote and
// searched during speaker resolution.
const contextWindow = 500

// Extractor runs the attribution patterns over book text.
type Extractor struct {
	characters model.CharacterSet
	names      []string          // All names and aliases, longest first
	canonical  map[string]string // alias -> raw speaker name
}

// NewExtractor builds an extractor for the given character set.
func NewExtractor(characters model.CharacterSet) *Extractor {
	e := &Extractor{
		characters: characters,
		canonical:  make(map[string]string),
	}
	for name, meta := range characters {
		e.names = append(e.names, name)
		e.canonical[name] = name
		for _, alias := range meta.Aliases {
			e.names = append(e.names, alias)
			e.canonical[alias] = name
		}
	}
	// Longest first so "Cyrus the Younger" wins over "Cyrus".
	sort.Slice(e.names, func(i, j int) bool { return len(e.names[i]) > len(e.names[j]) })
	return e
}

// ExtractBook extracts all attributable quotes from one book's content.
// Duplicate (speaker, text) pairs keep the first (highest-confidence) match
// because patterns run in confidence order.
func (e *Extractor) ExtractBook(book, content string) []model.QuoteRecord {
	type key struct{ speaker, text string }
	seen := make(map[key]struct{})
	var quotes []model.QuoteRecord

	for _, p := range attributionPatterns {
		for _, match := range p.re.FindAllStringSubmatchIndex(content, -1) {
			text, speaker := e.matchParts(p, content, match)

			text = CleanQuote(text)
			if !ValidQuote(text) {
				continue
			}

			before, after := window(content, match[0], match[1])
			resolved := e.ResolveSpeaker(speaker, before)
			if resolved == "" {
				continue
			}

			k := key{resolved, text}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}

			quotes = append(quotes, model.QuoteRecord{
				Text:           text,
				Speaker:        resolved,
				Book:           book,
				ContextBefore:  before,
				ContextAfter:   after,
				Tags:           Tags(text),
				Confidence:     e.confidence(p, speaker, resolved, before),
				PatternMatched: p.name,
			})
		}
	}

	return quotes
}

func (e *Extractor) matchParts(p pattern, content string, match []int) (text, speaker string) {
	group := func(n int) string {
		if n == 0 || match[2*n] < 0 {
			return ""
		}
		return content[match[2*n]:match[2*n+1]]
	}

	text = group(p.quoteGroup)
	if p.secondQuote != 0 {
		text = text + " " + group(p.secondQuote)
	}
	speaker = group(p.speakerGroup)
	return text, speaker
}

// ResolveSpeaker maps a raw captured name to a known character. Resolution
// order: exact name or alias, then a scan of the context window for any
// character name near a speech indicator. Empty means unresolvable; the
// match is discarded.
func (e *Extractor) ResolveSpeaker(speaker, contextBefore string) string {
	if canonical, ok := e.canonical[speaker]; ok {
		return canonical
	}

	lower := strings.ToLower(contextBefore)
	for _, name := range e.names {
		idx := strings.LastIndex(contextBefore, name)
		if idx < 0 {
			continue
		}
		tail := lower[idx:]
		for _, indicator := range SpeechIndicators {
			if strings.Contains(tail, indicator) {
				return e.canonical[name]
			}
		}
	}

	return ""
}

func (e *Extractor) confidence(p pattern, raw, resolved, contextBefore string) float64 {
	c := p.confidence

	if raw != resolved {
		if e.isAlias(resolved, raw) {
			c *= 0.95 // known variation
		} else {
			c *= 0.85 // context-based resolution
		}
	}

	lower := strings.ToLower(contextBefore)
	for _, strong := range []string{"answered", "replied", "made answer"} {
		if strings.Contains(lower, strong) {
			c *= 1.1
			break
		}
	}
	if c > 1 {
		c = 1
	}
	return c
}

func (e *Extractor) isAlias(speaker, candidate string) bool {
	for _, alias := range e.characters[speaker].Aliases {
		if alias == candidate {
			return true
		}
	}
	return false
}

func window(content string, start, end int) (before, after string) {
	b := start - contextWindow
	if b < 0 {
		b = 0
	}
	a := end + contextWindow
	if a > len(content) {
		a = len(content)
	}
	return strings.TrimSpace(content[b:start]), strings.TrimSpace(content[end:a])
}

var (
	refMarks       = regexp.MustCompile(`\[\d+\]`)
	parentheticals = regexp.MustCompile(`\([^)]*\)`)
	whitespace     = regexp.MustCompile(`\s+`)
	editorialOpen  = regexp.MustCompile(`^\d+\.|^\[|^\(`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// CleanQuote strips reference numbers, parentheticals and stray quoting
// characters, and normalizes whitespace.
func CleanQuote(text string) string {
	text = refMarks.ReplaceAllString(text, "")
	text = parentheticals.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.Trim(text, `"' []`)
}

// ValidQuote rejects fragments and editorial apparatus. Quotes carrying a
// speech indicator pass outright; otherwise most sentences must be complete.
func ValidQuote(text string) bool {
	words := strings.Fields(text)
	if len(words) < 4 {
		return false
	}
	if text == strings.ToUpper(text) {
		return false
	}
	if strings.Count(text, "[") != strings.Count(text, "]") {
		return false
	}
	if editorialOpen.MatchString(text) {
		return false
	}
	upper := strings.ToUpper(text)
	for _, marker := range []string{"NOTE:", "BOOK", "CHAPTER", "MS", "MSS"} {
		if strings.Contains(upper, marker) {
			return false
		}
	}

	lower := strings.ToLower(text)
	for _, indicator := range []string{"thus", "spoke", "said", "replied", "answered", "declared", "commanded", "asked"} {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	sentences := sentenceSplit.Split(text, -1)
	complete := 0
	counted := 0
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" {
			continue
		}
		counted++
		if len(strings.Fields(s)) >= 3 {
			complete++
		}
	}
	if counted > 0 && float64(complete)/float64(counted) > 0.5 {
		return true
	}

	return len(words) >= 4
}

// QuoteID builds the stable identifier for a generated record.
func QuoteID(book, speaker string, n int) string {
	slug := strings.ToLower(strings.ReplaceAll(speaker, " ", "_"))
	return fmt.Sprintf("book%s_%s_%02d", strings.ToLower(book), slug, n)
}

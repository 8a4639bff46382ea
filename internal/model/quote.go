package model

import "strings"

// QuoteRecord is a single attributed quotation parsed from the source text.
// Records are created once at corpus load and never mutated.
type QuoteRecord struct {
	ID             string   `json:"id,omitempty"`              // Stable identifier (e.g., "book1_croesus_01")
	Text           string   `json:"text"`                      // The quoted passage
	Speaker        string   `json:"speaker"`                   // Raw attributed name
	Book           string   `json:"book"`                      // Book identifier, compared numerically
	ContextBefore  string   `json:"context_before,omitempty"`  // Surrounding text before the quote
	ContextAfter   string   `json:"context_after,omitempty"`   // Surrounding text after the quote
	Tags           []string `json:"tags,omitempty"`            // Category tags (war, fate, wisdom, ...)
	Confidence     float64  `json:"confidence,omitempty"`      // Attribution confidence, 0-1
	PatternMatched string   `json:"pattern_matched,omitempty"` // Which extraction pattern produced this

	Quality *QualityMetrics `json:"quality_metrics,omitempty"` // Per-quote quality grades, set at extraction
}

// QualityMetrics grade a recovered quote on four 0-1 axes. Extraction fills
// them in; browse and curate treat them as opaque.
type QualityMetrics struct {
	GrammaticalCompleteness float64 `json:"grammatical_completeness"` // Share of complete sentences
	ContextRelevance        float64 `json:"context_relevance"`        // Word overlap with surrounding text
	AttributionConfidence   float64 `json:"attribution_confidence"`   // Pattern confidence, context-boosted
	TextCleanliness         float64 `json:"text_cleanliness"`         // Freedom from editorial marks
}

// Average is the mean of the four metrics.
func (m QualityMetrics) Average() float64 {
	return (m.GrammaticalCompleteness + m.ContextRelevance + m.AttributionConfidence + m.TextCleanliness) / 4
}

// BookValue returns the numeric value of a book identifier by stripping
// non-digit characters. Identifiers without digits sort first (value 0).
func BookValue(book string) int {
	n := 0
	seen := false
	for _, r := range book {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return n
}

// CharacterMetadata describes a known speaker, keyed by raw speaker name.
// Absence of metadata for a speaker is valid: display falls back to the raw name.
type CharacterMetadata struct {
	StandardName string   `json:"standardName" yaml:"standardName"`           // Canonical display name
	Aliases      []string `json:"aliases,omitempty" yaml:"aliases,omitempty"` // Alternate spellings and names
	Wiki         string   `json:"wiki,omitempty" yaml:"wiki,omitempty"`       // External reference URL
}

// CharacterSet maps raw speaker names to their metadata.
type CharacterSet map[string]CharacterMetadata

// DisplayName returns the canonical name for a speaker, or the raw name when
// no metadata is present.
func (cs CharacterSet) DisplayName(speaker string) string {
	if meta, ok := cs[speaker]; ok && strings.TrimSpace(meta.StandardName) != "" {
		return meta.StandardName
	}
	return speaker
}

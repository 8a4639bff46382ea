package model

import "time"

// Attribution is a snapshot of the original parser attribution, preserved on a
// VerifiedQuote even after the curator corrects the speaker.
type Attribution struct {
	Speaker        string  `json:"speaker"`
	Confidence     float64 `json:"confidence,omitempty"`
	PatternMatched string  `json:"pattern_matched,omitempty"`
}

// VerifiedQuote is the curated output derived from a QuoteRecord. The verified
// log is append-only within a session; entries are never edited in place.
type VerifiedQuote struct {
	Text                    string      `json:"text"`
	Speaker                 string      `json:"speaker"` // Curator-corrected, defaults to original
	Book                    string      `json:"book"`
	ContextBefore           string      `json:"context_before,omitempty"`
	ContextAfter            string      `json:"context_after,omitempty"`
	HistoricallySignificant bool        `json:"historically_significant"`
	Notes                   string      `json:"notes,omitempty"`
	VerificationDate        time.Time   `json:"verification_date"`
	OriginalAttribution     Attribution `json:"original_attribution"`
}

// NewVerifiedQuote builds a verified entry from a source record. speakerOverride
// may be empty, in which case the original attribution stands.
func NewVerifiedQuote(src QuoteRecord, significant bool, speakerOverride, notes string, at time.Time) VerifiedQuote {
	speaker := src.Speaker
	if speakerOverride != "" {
		speaker = speakerOverride
	}
	return VerifiedQuote{
		Text:                    src.Text,
		Speaker:                 speaker,
		Book:                    src.Book,
		ContextBefore:           src.ContextBefore,
		ContextAfter:            src.ContextAfter,
		HistoricallySignificant: significant,
		Notes:                   notes,
		VerificationDate:        at,
		OriginalAttribution: Attribution{
			Speaker:        src.Speaker,
			Confidence:     src.Confidence,
			PatternMatched: src.PatternMatched,
		},
	}
}

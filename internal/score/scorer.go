// Package score grades recovered quotes on per-quote quality metrics and
// ranks extraction output by combined score. Every metric is literal
// arithmetic over the record's text and context windows.
package score

import (
	"regexp"
	"sort"
	"strings"

	"github.com/miguelito4/herodotus-quotes/internal/extract"
	"github.com/miguelito4/herodotus-quotes/internal/model"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Scorer calculates quality metrics for extracted quote records.
type Scorer struct{}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Assess grades one record on the four quality axes. The record is not
// modified; callers attach the result.
func (s *Scorer) Assess(q model.QuoteRecord) *model.QualityMetrics {
	return &model.QualityMetrics{
		GrammaticalCompleteness: s.grammaticalCompleteness(q.Text),
		ContextRelevance:        s.contextRelevance(q),
		AttributionConfidence:   s.attributionConfidence(q),
		TextCleanliness:         s.textCleanliness(q.Text),
	}
}

// grammaticalCompleteness is the share of sentences with more than three
// words. Fragments left by trailing punctuation are ignored.
func (s *Scorer) grammaticalCompleteness(text string) float64 {
	var total, complete int
	for _, sentence := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		total++
		if len(strings.Fields(sentence)) > 3 {
			complete++
		}
	}
	if total == 0 {
		return 0
	}
	return clamp(float64(complete) / float64(total))
}

// contextRelevance is the fraction of the quote's words that also appear in
// the surrounding context windows.
func (s *Scorer) contextRelevance(q model.QuoteRecord) float64 {
	contextWords := make(map[string]struct{})
	for _, w := range strings.Fields(q.ContextBefore) {
		contextWords[w] = struct{}{}
	}
	for _, w := range strings.Fields(q.ContextAfter) {
		contextWords[w] = struct{}{}
	}

	quoteWords := make(map[string]struct{})
	for _, w := range strings.Fields(q.Text) {
		quoteWords[w] = struct{}{}
	}
	if len(quoteWords) == 0 {
		return 0
	}

	overlap := 0
	for w := range quoteWords {
		if _, ok := contextWords[w]; ok {
			overlap++
		}
	}
	return clamp(float64(overlap) / float64(len(quoteWords)))
}

// attributionConfidence starts from the pattern confidence and boosts it when
// a speech indicator precedes the quote.
func (s *Scorer) attributionConfidence(q model.QuoteRecord) float64 {
	c := q.Confidence
	before := strings.ToLower(q.ContextBefore)
	for _, indicator := range extract.SpeechIndicators {
		if strings.Contains(before, indicator) {
			c *= 1.1
			break
		}
	}
	return clamp(c)
}

// textCleanliness penalizes editorial bracketing left in the quote text.
func (s *Scorer) textCleanliness(text string) float64 {
	if text == "" {
		return 0
	}
	marks := 0
	for _, r := range text {
		switch r {
		case '[', ']', '(', ')', '{', '}':
			marks++
		}
	}
	return clamp(1 - float64(marks)/float64(len(text)))
}

// Rank orders records best first by combined score: attribution confidence
// plus the mean of the quality metrics. Ties keep extraction order.
func Rank(quotes []model.QuoteRecord) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return Combined(quotes[i]) > Combined(quotes[j])
	})
}

// Combined is the ranking key: pattern confidence plus the metric average.
// Records without metrics rank on confidence alone.
func Combined(q model.QuoteRecord) float64 {
	c := q.Confidence
	if q.Quality != nil {
		c += q.Quality.Average()
	}
	return c
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

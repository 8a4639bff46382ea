package score

import (
	"math"
	"testing"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGrammaticalCompleteness(t *testing.T) {
	s := NewScorer()
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"two complete sentences", "Call no man happy until he is dead. Count no mortal fortunate before the end.", 1.0},
		{"one complete one fragment", "Call no man happy until he is dead. So be it.", 0.5},
		{"fragment only", "So be it.", 0.0},
		{"empty", "", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.grammaticalCompleteness(tt.text); !almost(got, tt.want) {
				t.Errorf("grammaticalCompleteness(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContextRelevance(t *testing.T) {
	s := NewScorer()
	q := model.QuoteRecord{
		Text:          "happy until dead",
		ContextBefore: "Solon said to him that no man is happy",
		ContextAfter:  "and so Croesus remained until the end",
	}
	// "happy" and "until" appear in context, "dead" does not.
	if got := s.contextRelevance(q); !almost(got, 2.0/3.0) {
		t.Errorf("contextRelevance = %v, want %v", got, 2.0/3.0)
	}

	if got := s.contextRelevance(model.QuoteRecord{Text: ""}); got != 0 {
		t.Errorf("contextRelevance of empty text = %v, want 0", got)
	}
}

func TestAttributionConfidence(t *testing.T) {
	s := NewScorer()

	plain := model.QuoteRecord{Confidence: 0.8, ContextBefore: "Croesus the king of Lydia"}
	if got := s.attributionConfidence(plain); !almost(got, 0.8) {
		t.Errorf("without indicator = %v, want 0.8", got)
	}

	boosted := model.QuoteRecord{Confidence: 0.8, ContextBefore: "Croesus answered the stranger"}
	if got := s.attributionConfidence(boosted); !almost(got, 0.88) {
		t.Errorf("with indicator = %v, want 0.88", got)
	}

	capped := model.QuoteRecord{Confidence: 1.0, ContextBefore: "Then Croesus said"}
	if got := s.attributionConfidence(capped); got != 1.0 {
		t.Errorf("boost must cap at 1.0, got %v", got)
	}
}

func TestTextCleanliness(t *testing.T) {
	s := NewScorer()
	if got := s.textCleanliness("no marks here"); got != 1.0 {
		t.Errorf("clean text = %v, want 1.0", got)
	}
	// 2 marks in 10 characters.
	if got := s.textCleanliness("ab[cd]efgh"); !almost(got, 0.8) {
		t.Errorf("marked text = %v, want 0.8", got)
	}
	if got := s.textCleanliness(""); got != 0 {
		t.Errorf("empty text = %v, want 0", got)
	}
}

func TestAssessFillsAllMetrics(t *testing.T) {
	s := NewScorer()
	q := model.QuoteRecord{
		Text:          "Call no man happy until he is dead.",
		Speaker:       "Solon",
		Confidence:    0.9,
		ContextBefore: "Solon answered the king",
		ContextAfter:  "and Croesus was angered",
	}
	m := s.Assess(q)
	if m.GrammaticalCompleteness != 1.0 {
		t.Errorf("GrammaticalCompleteness = %v, want 1.0", m.GrammaticalCompleteness)
	}
	if !almost(m.AttributionConfidence, 0.99) {
		t.Errorf("AttributionConfidence = %v, want 0.99", m.AttributionConfidence)
	}
	if m.TextCleanliness != 1.0 {
		t.Errorf("TextCleanliness = %v, want 1.0", m.TextCleanliness)
	}
	if avg := m.Average(); avg <= 0 || avg > 1 {
		t.Errorf("Average = %v, want in (0, 1]", avg)
	}
}

func TestRankOrdersByCombinedScore(t *testing.T) {
	high := model.QuoteRecord{
		ID: "a", Confidence: 0.9,
		Quality: &model.QualityMetrics{GrammaticalCompleteness: 1, ContextRelevance: 1, AttributionConfidence: 1, TextCleanliness: 1},
	}
	low := model.QuoteRecord{
		ID: "b", Confidence: 0.9,
		Quality: &model.QualityMetrics{GrammaticalCompleteness: 0.2, ContextRelevance: 0, AttributionConfidence: 0.9, TextCleanliness: 0.5},
	}
	unscored := model.QuoteRecord{ID: "c", Confidence: 0.95}

	quotes := []model.QuoteRecord{unscored, low, high}
	Rank(quotes)

	if quotes[0].ID != "a" || quotes[1].ID != "b" || quotes[2].ID != "c" {
		order := []string{quotes[0].ID, quotes[1].ID, quotes[2].ID}
		t.Errorf("Rank order = %v, want [a b c]", order)
	}
}

func TestRankIsStableOnTies(t *testing.T) {
	a := model.QuoteRecord{ID: "first", Confidence: 0.8}
	b := model.QuoteRecord{ID: "second", Confidence: 0.8}
	quotes := []model.QuoteRecord{a, b}
	Rank(quotes)
	if quotes[0].ID != "first" || quotes[1].ID != "second" {
		t.Errorf("tied records reordered: %v, %v", quotes[0].ID, quotes[1].ID)
	}
}

package extract

import (
	"math"
	"testing"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

var testCharacters = model.CharacterSet{
	"Croesus": {StandardName: "Croesus", Aliases: []string{"Kroisos"}},
	"Cyrus":   {StandardName: "Cyrus the Great"},
	"Solon":   {StandardName: "Solon of Athens"},
}

func extractOne(t *testing.T, content string) model.QuoteRecord {
	t.Helper()
	quotes := NewExtractor(testCharacters).ExtractBook("1", content)
	if len(quotes) != 1 {
		t.Fatalf("extracted %d quotes, want 1: %+v", len(quotes), quotes)
	}
	return quotes[0]
}

func TestExtractBook_BasicQuote(t *testing.T) {
	q := extractOne(t, `Croesus: "Call no man happy until the day he perish."`)

	if q.Speaker != "Croesus" {
		t.Errorf("speaker = %q", q.Speaker)
	}
	if q.Text != "Call no man happy until the day he perish." {
		t.Errorf("text = %q", q.Text)
	}
	if q.PatternMatched != "basic_quote" {
		t.Errorf("pattern = %q", q.PatternMatched)
	}
	if q.Confidence != 1.0 {
		t.Errorf("confidence = %f", q.Confidence)
	}
	if q.Book != "1" {
		t.Errorf("book = %q", q.Book)
	}
}

func TestExtractBook_QuoteFirst(t *testing.T) {
	q := extractOne(t, `"No man knows what tomorrow holds for mortals" said Solon.`)

	if q.Speaker != "Solon" {
		t.Errorf("speaker = %q", q.Speaker)
	}
	if q.PatternMatched != "quote_first" {
		t.Errorf("pattern = %q", q.PatternMatched)
	}
	if q.Confidence != 0.80 {
		t.Errorf("confidence = %f", q.Confidence)
	}
}

func TestExtractBook_AliasResolution(t *testing.T) {
	q := extractOne(t, `Kroisos: "Count no mortal fortunate before the end is known."`)

	if q.Speaker != "Croesus" {
		t.Errorf("speaker = %q, want canonical Croesus", q.Speaker)
	}
	// Alias resolution discounts the pattern's base confidence.
	if math.Abs(q.Confidence-0.95) > 1e-9 {
		t.Errorf("confidence = %f, want 0.95", q.Confidence)
	}
}

func TestExtractBook_SplitQuoteResolvesFromContext(t *testing.T) {
	q := extractOne(t, `Croesus answered: "My son," said he, "do not go forth to the hunt this day."`)

	if q.Speaker != "Croesus" {
		t.Errorf("speaker = %q", q.Speaker)
	}
	if q.PatternMatched != "split_quote" {
		t.Errorf("pattern = %q", q.PatternMatched)
	}
	if q.Text != "My son, do not go forth to the hunt this day." {
		t.Errorf("text = %q", q.Text)
	}
	// Context resolution discounts, "answered" boosts: 0.95 * 0.85 * 1.1.
	want := 0.95 * 0.85 * 1.1
	if math.Abs(q.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %f, want %f", q.Confidence, want)
	}
}

func TestExtractBook_GroupDialogue(t *testing.T) {
	q := extractOne(t, `Then they made report to Cyrus saying, "The city wall is breached and the guards flee before us."`)

	if q.Speaker != "Cyrus" {
		t.Errorf("speaker = %q", q.Speaker)
	}
	if q.PatternMatched != "group_dialogue" {
		t.Errorf("pattern = %q", q.PatternMatched)
	}
	if q.Confidence != 0.75 {
		t.Errorf("confidence = %f, want 0.75", q.Confidence)
	}
}

func TestExtractBook_ConversationMarker(t *testing.T) {
	q := extractOne(t, `Solon held long conversation with the king and offered this, "Look to the end of every matter, how it shall turn out."`)

	if q.Speaker != "Solon" {
		t.Errorf("speaker = %q", q.Speaker)
	}
	if q.PatternMatched != "conversation_marker" {
		t.Errorf("pattern = %q", q.PatternMatched)
	}
	if q.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", q.Confidence)
	}
}

func TestPatternConfidences(t *testing.T) {
	want := map[string]float64{
		"split_quote":             0.95,
		"basic_quote":             1.0,
		"quote_first":             0.80,
		"then_thus":               1.0,
		"group_dialogue":          0.75,
		"conversation_marker":     0.8,
		"response_pattern":        0.85,
		"delayed_indirect_speech": 0.78,
	}
	got := make(map[string]float64)
	for _, p := range attributionPatterns {
		got[p.name] = p.confidence
	}
	for name, conf := range want {
		if got[name] != conf {
			t.Errorf("pattern %s confidence = %v, want %v", name, got[name], conf)
		}
	}
}

func TestExtractBook_UnknownSpeakerDropped(t *testing.T) {
	quotes := NewExtractor(testCharacters).
		ExtractBook("1", `Xerxes said, "March against the men of Hellas at once."`)
	if len(quotes) != 0 {
		t.Errorf("extracted %d quotes for an unknown speaker, want 0", len(quotes))
	}
}

func TestExtractBook_DuplicatesKeepFirstMatch(t *testing.T) {
	content := `Croesus: "Count no mortal fortunate before the end is known."
Some narration in between. Croesus: "Count no mortal fortunate before the end is known."`

	quotes := NewExtractor(testCharacters).ExtractBook("1", content)
	if len(quotes) != 1 {
		t.Errorf("extracted %d quotes, want 1 after dedupe", len(quotes))
	}
}

func TestCleanQuote(t *testing.T) {
	got := CleanQuote(`"Call no  man [1] happy (he said) until he is dead"`)
	want := "Call no man happy until he is dead"
	if got != want {
		t.Errorf("CleanQuote = %q, want %q", got, want)
	}
}

func TestValidQuote(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"too short", "Only three words", false},
		{"all caps", "THE PERSIANS ARE COMING NOW", false},
		{"unbalanced bracket", "a fragment [with a stray marker here", false},
		{"editorial note", "NOTE: the reading of this passage varies", false},
		{"numbered apparatus", "1. The first section begins at the river", false},
		{"speech indicator passes", "thus he commanded the army to march at dawn", true},
		{"complete sentence", "No man may escape the portion allotted to him.", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidQuote(tc.text); got != tc.want {
				t.Errorf("ValidQuote(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTags(t *testing.T) {
	got := Tags("In war fathers bury their sons")
	if len(got) != 2 || got[0] != "death" || got[1] != "war" {
		t.Errorf("Tags = %v, want [death war]", got)
	}

	if got := Tags("He crossed the river at dawn"); len(got) != 1 || got[0] != "history" {
		t.Errorf("default Tags = %v, want [history]", got)
	}
}

func TestQuoteID(t *testing.T) {
	if got := QuoteID("1", "Cyrus the Great", 3); got != "book1_cyrus_the_great_03" {
		t.Errorf("QuoteID = %q", got)
	}
}

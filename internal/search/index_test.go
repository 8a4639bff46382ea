package search

import (
	"reflect"
	"testing"

	"github.com/miguelito4/herodotus-quotes/internal/corpus"
	"github.com/miguelito4/herodotus-quotes/internal/model"
)

func testStore() *corpus.Store {
	quotes := []model.QuoteRecord{
		{ID: "1", Book: "2", Speaker: "Amasis", Text: "A"},
		{ID: "2", Book: "1", Speaker: "Croesus", Text: "B"},
		{ID: "3", Book: "1", Speaker: "Darius", Text: "C"},
		{ID: "4", Book: "10", Speaker: "Croesus", Text: "D"},
		{ID: "5", Book: "2", Speaker: "Amasis", Text: "E"},
	}
	characters := model.CharacterSet{
		"Croesus": {StandardName: "Croesus of Lydia", Aliases: []string{"Kroisos"}},
		"Darius":  {StandardName: "Darius I", Aliases: []string{"Dareios", "Darius the Great"}},
	}
	return corpus.New(quotes, characters)
}

func TestListBooks_NumericOrderDeduped(t *testing.T) {
	index := NewIndex(testStore())

	got := index.ListBooks()
	want := []string{"1", "2", "10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBooks() = %v, want %v", got, want)
	}
}

func TestListSpeakers_Distinct(t *testing.T) {
	index := NewIndex(testStore())

	got := index.ListSpeakers()
	want := []string{"Amasis", "Croesus", "Darius"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListSpeakers() = %v, want %v", got, want)
	}
}

func TestMatchSpeakers_EmptyQueryMatchesNothing(t *testing.T) {
	index := NewIndex(testStore())

	if got := index.MatchSpeakers(""); len(got) != 0 {
		t.Errorf("MatchSpeakers(\"\") = %v, want empty", got)
	}
	if got := index.MatchSpeakers("   "); len(got) != 0 {
		t.Errorf("MatchSpeakers(blank) = %v, want empty", got)
	}
}

func TestMatchSpeakers_CaseInsensitiveSubstring(t *testing.T) {
	index := NewIndex(testStore())

	got := index.MatchSpeakers("croesus")
	want := []string{"Croesus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSpeakers(croesus) = %v, want %v", got, want)
	}

	// Partial substring match
	got = index.MatchSpeakers("OES")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSpeakers(OES) = %v, want %v", got, want)
	}
}

func TestMatchSpeakers_AliasAndStandardName(t *testing.T) {
	index := NewIndex(testStore())

	// Alias match
	got := index.MatchSpeakers("dareios")
	want := []string{"Darius"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSpeakers(dareios) = %v, want %v", got, want)
	}

	// Standard-name match
	got = index.MatchSpeakers("lydia")
	want = []string{"Croesus"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSpeakers(lydia) = %v, want %v", got, want)
	}
}

func TestMatchSpeakers_NoMetadataFallsBackToRawName(t *testing.T) {
	index := NewIndex(testStore())

	// Amasis has no metadata entry; raw-name matching must still work.
	got := index.MatchSpeakers("amas")
	want := []string{"Amasis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSpeakers(amas) = %v, want %v", got, want)
	}
}

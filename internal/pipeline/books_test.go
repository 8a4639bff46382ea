package pipeline

import (
	"strings"
	"testing"
)

const sampleVolume = `The Project Gutenberg eBook of The History of Herodotus
Front matter that must not survive cleaning.
*** START OF THE PROJECT GUTENBERG EBOOK THE HISTORY OF HERODOTUS ***

BOOK I. THE FIRST BOOK OF THE HISTORIES, CALLED CLIO

This is the story of Croesus {kroisos} and the Lydians.
[ 1 ] A footnote line that should disappear.
More   narrative    text here.

BOOK II. THE SECOND BOOK OF THE HISTORIES, CALLED EUTERPE

Concerning Egypt and the Nile.

*** END OF THE PROJECT GUTENBERG EBOOK THE HISTORY OF HERODOTUS ***
License text that must not survive either.`

func TestCleanVolume(t *testing.T) {
	cleaned, err := CleanVolume(sampleVolume)
	if err != nil {
		t.Fatalf("CleanVolume: %v", err)
	}

	if strings.Contains(cleaned, "Front matter") || strings.Contains(cleaned, "License text") {
		t.Error("gutenberg boilerplate survived cleaning")
	}
	if strings.Contains(cleaned, "footnote line") {
		t.Error("footnote survived cleaning")
	}
	if strings.Contains(cleaned, "{kroisos}") {
		t.Error("transliterated greek survived cleaning")
	}
	if strings.Contains(cleaned, "  ") {
		t.Error("whitespace was not collapsed")
	}
	if !strings.Contains(cleaned, "story of Croesus and the Lydians") {
		t.Errorf("narrative text lost: %q", cleaned)
	}
}

func TestCleanVolume_MissingMarkers(t *testing.T) {
	if _, err := CleanVolume("no markers in this text"); err == nil {
		t.Error("expected an error for missing gutenberg markers")
	}
}

func TestSplitBooks(t *testing.T) {
	cleaned, err := CleanVolume(sampleVolume)
	if err != nil {
		t.Fatalf("CleanVolume: %v", err)
	}

	books := SplitBooks(cleaned)
	if len(books) != 2 {
		t.Fatalf("split into %d books, want 2", len(books))
	}

	if books[0].Number != "1" || books[0].Numeral != "I" {
		t.Errorf("first book = %s/%s", books[0].Number, books[0].Numeral)
	}
	if books[1].Number != "2" || books[1].Numeral != "II" {
		t.Errorf("second book = %s/%s", books[1].Number, books[1].Numeral)
	}
	if !strings.Contains(books[0].Content, "Croesus") {
		t.Errorf("book 1 content = %q", books[0].Content)
	}
	if strings.Contains(books[0].Content, "Egypt") {
		t.Error("book 1 content bleeds into book 2")
	}
	if !strings.Contains(books[1].Content, "Nile") {
		t.Errorf("book 2 content = %q", books[1].Content)
	}
}

func TestRomanValue(t *testing.T) {
	cases := map[string]int{
		"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
		"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
		"XIV": 14, "XIX": 19,
	}
	for numeral, want := range cases {
		if got := romanValue(numeral); got != want {
			t.Errorf("romanValue(%s) = %d, want %d", numeral, got, want)
		}
	}
}

package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Book is one book of the source text with its cleaned content.
type Book struct {
	Number  string // Digit identifier ("1", "2", ...)
	Numeral string // Roman numeral as printed in the source
	Title   string
	Content string
}

const (
	startMarker = "*** START OF THE PROJECT GUTENBERG EBOOK"
	endMarker   = "*** END OF THE PROJECT GUTENBERG EBOOK"
)

var (
	footnoteLine  = regexp.MustCompile(`\[\s*\d+\s*\][^\n]*\n`)
	greekBraces   = regexp.MustCompile(`\{[^}]*\}`)
	anyWhitespace = regexp.MustCompile(`\s+`)

	bookHeader = regexp.MustCompile(`(?im)BOOK\s+([IVX]+)\.?\s+THE\s+([^B]+)BOOK\s+OF\s+THE\s+HISTORIES`)
)

// CleanVolume trims the Gutenberg boilerplate around a volume and removes
// footnotes, transliterated Greek, and excess whitespace.
func CleanVolume(text string) (string, error) {
	start := strings.Index(text, startMarker)
	end := strings.Index(text, endMarker)
	if start == -1 || end == -1 {
		return "", fmt.Errorf("gutenberg start/end markers not found")
	}
	text = text[start:end]

	text = footnoteLine.ReplaceAllString(text, "")
	text = greekBraces.ReplaceAllString(text, "")
	text = anyWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}

// SplitBooks splits the combined cleaned text into books on the book headers,
// converting roman numerals to digit identifiers.
func SplitBooks(text string) []Book {
	matches := bookHeader.FindAllStringSubmatchIndex(text, -1)

	type position struct {
		numeral, title string
		start          int
	}
	var positions []position
	for _, m := range matches {
		positions = append(positions, position{
			numeral: text[m[2]:m[3]],
			title:   strings.TrimSpace(text[m[4]:m[5]]),
			start:   m[0],
		})
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	var books []Book
	for i, pos := range positions {
		end := len(text)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		books = append(books, Book{
			Number:  fmt.Sprintf("%d", romanValue(pos.numeral)),
			Numeral: strings.ToUpper(pos.numeral),
			Title:   pos.title,
			Content: strings.TrimSpace(text[pos.start:end]),
		})
	}
	return books
}

// romanValue converts a roman numeral (I through IX is all the source needs,
// but the subtractive rule is handled generally).
func romanValue(numeral string) int {
	values := map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100}
	numeral = strings.ToUpper(numeral)

	total := 0
	for i := 0; i < len(numeral); i++ {
		v := values[numeral[i]]
		if i+1 < len(numeral) && v < values[numeral[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

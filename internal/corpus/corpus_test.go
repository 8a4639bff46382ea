package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBlockText = `Speaker: Croesus
Book: 1
Quote:
Call no man happy until he is dead.
Context Before:
Solon had departed from Sardis.
Context After:
And Croesus pondered these words.
Pattern: basic_quote
Confidence: 1.00
--------------------------------------------------------------------------------
Speaker: Darius
Book: 3
Quote:
Let each man speak his mind
freely before the council.
--------------------------------------------------------------------------------
Speaker: Nobody
Book: 5
Quote:
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseBlockText(t *testing.T) {
	quotes, err := ParseBlockText(sampleBlockText)
	if err != nil {
		t.Fatalf("ParseBlockText: %v", err)
	}
	// The third block has no quote body and is dropped.
	if len(quotes) != 2 {
		t.Fatalf("parsed %d records, want 2", len(quotes))
	}

	first := quotes[0]
	if first.Speaker != "Croesus" || first.Book != "1" {
		t.Errorf("first record header = %q/%q", first.Speaker, first.Book)
	}
	if first.Text != "Call no man happy until he is dead." {
		t.Errorf("first text = %q", first.Text)
	}
	if first.ContextBefore != "Solon had departed from Sardis." {
		t.Errorf("context before = %q", first.ContextBefore)
	}
	if first.ContextAfter != "And Croesus pondered these words." {
		t.Errorf("context after = %q", first.ContextAfter)
	}

	// Multi-line quote bodies accumulate until the next header.
	second := quotes[1]
	if !strings.Contains(second.Text, "speak his mind\nfreely") {
		t.Errorf("second text lost its line break: %q", second.Text)
	}
}

func TestLoad_JSONCorpus(t *testing.T) {
	quotesPath := writeTemp(t, "quotes.json", `[
		{"id": "book1_croesus_01", "text": "A", "speaker": "Croesus", "book": "1"},
		{"id": "book2_cyrus_01", "text": "B", "speaker": "Cyrus", "book": "2"}
	]`)

	cs, err := Load(quotesPath, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cs.Len())
	}
	if cs.Quotes()[0].ID != "book1_croesus_01" {
		t.Errorf("first ID = %q", cs.Quotes()[0].ID)
	}
}

func TestLoad_BlockTextCorpus(t *testing.T) {
	quotesPath := writeTemp(t, "quotes.txt", sampleBlockText)

	cs, err := Load(quotesPath, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cs.Len())
	}
}

func TestLoad_MissingFileIsLoadError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), "")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestLoad_EmptyCorpusIsLoadError(t *testing.T) {
	quotesPath := writeTemp(t, "quotes.json", `[]`)
	_, err := Load(quotesPath, "")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if !strings.Contains(err.Error(), "no quotes") {
		t.Errorf("err = %v, want mention of empty corpus", err)
	}
}

func TestLoadCharacters_MissingFileIsEmpty(t *testing.T) {
	characters, err := LoadCharacters(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadCharacters: %v", err)
	}
	if len(characters) != 0 {
		t.Errorf("got %d characters, want 0", len(characters))
	}
}

func TestLoadCharacters_YAML(t *testing.T) {
	path := writeTemp(t, "characters.yaml", `
Croesus:
  standardName: Croesus of Lydia
  aliases:
    - the Lydian king
Darius:
  standardName: Darius I
  aliases:
    - Dareios
`)

	characters, err := LoadCharacters(path)
	if err != nil {
		t.Fatalf("LoadCharacters: %v", err)
	}
	if len(characters) != 2 {
		t.Fatalf("got %d characters, want 2", len(characters))
	}
	if got := characters.DisplayName("Croesus"); got != "Croesus of Lydia" {
		t.Errorf("DisplayName(Croesus) = %q", got)
	}
	if got := characters["Darius"].Aliases; len(got) != 1 || got[0] != "Dareios" {
		t.Errorf("Darius aliases = %v", got)
	}
}

func TestLoadCharacters_JSON(t *testing.T) {
	path := writeTemp(t, "characters.json",
		`{"Cyrus": {"standardName": "Cyrus the Great", "aliases": ["Kyros"]}}`)

	characters, err := LoadCharacters(path)
	if err != nil {
		t.Fatalf("LoadCharacters: %v", err)
	}
	if got := characters.DisplayName("Cyrus"); got != "Cyrus the Great" {
		t.Errorf("DisplayName(Cyrus) = %q", got)
	}
}

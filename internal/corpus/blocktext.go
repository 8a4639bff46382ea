package corpus

import (
	"strings"

	"github.com/miguelito4/herodotus-quotes/internal/model"
)

// blockSeparator divides records in the interchange format emitted by the
// extraction tooling.
const blockSeparator = "--------------------------------------------------------------------------------"

// ParseBlockText parses the block-text interchange format: records separated
// by a dashed line, each carrying "Speaker:", "Book:", "Quote:",
// "Context Before:" and "Context After:" fields. Multi-line field bodies are
// accumulated until the next field header. Blocks missing a quote or book are
// dropped rather than failing the whole file.
func ParseBlockText(content string) ([]model.QuoteRecord, error) {
	var quotes []model.QuoteRecord

	for _, block := range strings.Split(content, blockSeparator) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if rec, ok := parseBlock(block); ok {
			quotes = append(quotes, rec)
		}
	}

	return quotes, nil
}

func parseBlock(block string) (model.QuoteRecord, bool) {
	var rec model.QuoteRecord

	flush := func(field *string, buffer []string) {
		if field != nil {
			*field = strings.TrimSpace(strings.Join(buffer, "\n"))
		}
	}

	var current *string
	var buffer []string

	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		switch {
		case strings.HasPrefix(line, "Speaker: "):
			flush(current, buffer)
			rec.Speaker = strings.TrimSpace(strings.TrimPrefix(line, "Speaker: "))
			current, buffer = nil, nil
		case strings.HasPrefix(line, "Book: "):
			flush(current, buffer)
			rec.Book = strings.TrimSpace(strings.TrimPrefix(line, "Book: "))
			current, buffer = nil, nil
		case strings.HasPrefix(line, "Quote:"):
			flush(current, buffer)
			current, buffer = &rec.Text, nil
		case strings.HasPrefix(line, "Context Before:"):
			flush(current, buffer)
			current, buffer = &rec.ContextBefore, nil
		case strings.HasPrefix(line, "Context After:"):
			flush(current, buffer)
			current, buffer = &rec.ContextAfter, nil
		case strings.HasPrefix(line, "Pattern:"), strings.HasPrefix(line, "Confidence:"):
			// Diagnostic lines are not carried into the record.
			continue
		default:
			if current != nil {
				buffer = append(buffer, line)
			}
		}
	}
	flush(current, buffer)

	return rec, rec.Text != "" && rec.Book != ""
}

package extract

import "regexp"

// SpeechIndicators mark attribution verbs near a quotation. They drive
// pattern construction, context-based speaker resolution, and the quality
// scorer's attribution metric.
var SpeechIndicators = []string{
	"said", "spoke", "replied", "answered", "declared",
	"made answer", "addressed", "responded", "called out",
	"cried", "exclaimed", "proclaimed", "told", "asked",
	"commanded", "ordered", "shouted", "stated",
}

const (
	speechAlt = `(?:said|spoke|replied|answered|declared|made answer|addressed|responded|called out|cried|exclaimed|proclaimed|told|asked|commanded|ordered|shouted|stated)`
	nameExpr  = `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`
)

// pattern pairs a compiled attribution regexp with its name and base
// confidence. speakerGroup/quoteGroup locate the capture groups; a
// speakerGroup of 0 means the speaker must be resolved from context.
type pattern struct {
	re           *regexp.Regexp
	name         string
	confidence   float64
	speakerGroup int
	quoteGroup   int
	secondQuote  int // second fragment of a split quote, 0 when absent
}

// attributionPatterns are tried in order against each book. Direct
// attributions come first and carry the highest confidence; the delayed
// family tolerates intervening narration at a discount.
var attributionPatterns = []pattern{
	{
		re:          regexp.MustCompile(`(?s)"([^"]+)"\s*,?\s*` + speechAlt + `\s+(?:he|she).*?"([^"]+)"`),
		name:        "split_quote",
		confidence:  0.95,
		quoteGroup:  1,
		secondQuote: 2,
	},
	{
		re:           regexp.MustCompile(`(` + nameExpr + `)[:.,]?\s*"([^"]+)"`),
		name:         "basic_quote",
		confidence:   1.0,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`"([^"]+)"\s*` + speechAlt + `\s+(` + nameExpr + `)`),
		name:         "quote_first",
		confidence:   0.80,
		speakerGroup: 2,
		quoteGroup:   1,
	},
	{
		re:           regexp.MustCompile(`(?:Then|Thus)\s+(` + nameExpr + `)\s*[:.,]?\s*"([^"]+)"`),
		name:         "then_thus",
		confidence:   1.0,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:turning|looking|seeing)[^"]*?` + speechAlt + `[^"]*?"([^"]+)"`),
		name:         "delayed_attribution_action",
		confidence:   0.85,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:silent|angry|pleased)[^"]*?` + speechAlt + `[^"]*?"([^"]+)"`),
		name:         "delayed_attribution_state",
		confidence:   0.82,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:when|after|while)[^"]*?` + speechAlt + `[^"]*?"([^"]+)"`),
		name:         "delayed_attribution_temporal",
		confidence:   0.80,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:message|word)[^"]*?"([^"]+)"`),
		name:         "delayed_indirect_speech",
		confidence:   0.78,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(?:they|the\s+[A-Z][a-z]+)[^"]*?to\s+(` + nameExpr + `)[^"]*?"([^"]+)"`),
		name:         "group_dialogue",
		confidence:   0.75,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?` + speechAlt + `[^"]*?"([^"]+)"`),
		name:         "delayed_attribution_basic",
		confidence:   0.75,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:conversation|discussion)[^"]*?"([^"]+)"`),
		name:         "conversation_marker",
		confidence:   0.8,
		speakerGroup: 1,
		quoteGroup:   2,
	},
	{
		re:           regexp.MustCompile(`(?s)(` + nameExpr + `)[^"]*?(?:answer|response)[^"]*?"([^"]+)"`),
		name:         "response_pattern",
		confidence:   0.85,
		speakerGroup: 1,
		quoteGroup:   2,
	},
}

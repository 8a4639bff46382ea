package extract

import (
	"sort"
	"strings"
)

// tagKeywords groups the thematic vocabulary used to tag quotes.
var tagKeywords = map[string][]string{
	"war":     {"war", "battle", "army", "fight", "spear", "shield", "conquer", "destroy"},
	"fate":    {"fate", "destiny", "god", "oracle", "dream", "prophecy", "doom", "fortune"},
	"wisdom":  {"wisdom", "wise", "counsel", "advice", "learn", "know", "truth"},
	"hubris":  {"pride", "boast", "greatness", "wealth", "power", "king", "master"},
	"justice": {"justice", "right", "wrong", "law", "punish", "avenge", "penalty"},
	"death":   {"death", "die", "slay", "kill", "bury", "tomb", "perish"},
}

// Tags assigns thematic tags by keyword lookup. Quotes matching nothing are
// tagged "history".
func Tags(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	for tag, words := range tagKeywords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				tags = append(tags, tag)
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{"history"}
	}
	sort.Strings(tags)
	return tags
}

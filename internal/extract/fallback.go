package extract

import (
	"regexp"
	"strings"
)

// fieldPattern is one entry of the versioned fallback table: a labeled-field
// regex applied line by line when the structured response cannot be parsed.
type fieldPattern struct {
	Field   string
	Pattern *regexp.Regexp
}

// fallbackPatternsV1 is the v1 fallback schema. The table is declared up
// front so tests can enumerate it exhaustively. Patterns are case-insensitive
// and line-oriented; the first matching line per field wins.
var fallbackPatternsV1 = []fieldPattern{
	{"client_name", regexp.MustCompile(`(?i)(?:client|claimant|plaintiff)\s*:\s*(.+)`)},
	{"date_of_loss", regexp.MustCompile(`(?i)(?:date of loss|accident date|incident date)\s*:\s*(.+)`)},
	{"accident_type", regexp.MustCompile(`(?i)(?:accident type|incident type)\s*:\s*(.+)`)},
	{"attorney_name", regexp.MustCompile(`(?i)(?:attorney|lawyer)\s*:\s*(.+)`)},
	{"attorney_email", regexp.MustCompile(`(?i)(?:email|e-mail)\s*:\s*([^\s@]+@[^\s@]+\.[^\s@]+)`)},
}

// FallbackPatterns returns the active fallback table.
func FallbackPatterns() []fieldPattern {
	return fallbackPatternsV1
}

// applyFallback runs the fallback table over the text and returns the
// matched field values. Fields with no matching line stay unset.
func applyFallback(text string) map[string]string {
	matched := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		for _, fp := range fallbackPatternsV1 {
			if _, done := matched[fp.Field]; done {
				continue
			}
			if m := fp.Pattern.FindStringSubmatch(line); m != nil {
				matched[fp.Field] = strings.TrimSpace(m[1])
			}
		}
	}

	return matched
}

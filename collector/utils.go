package collector

import (
	"regexp"
	"strings"
)

const summaryMaxRunes = 500

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeSummary strips markup and collapses whitespace so summaries render
// as plain text, then truncates to a display-friendly length.
func SanitizeSummary(raw string) string {
	text := htmlTagPattern.ReplaceAllString(raw, " ")
	text = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&nbsp;", " ").Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= summaryMaxRunes {
		return text
	}
	return string(runes[:summaryMaxRunes-3]) + "..."
}

// MatchesAnyKeyword reports whether text contains any of the keywords as a
// case-insensitive substring. An empty keyword list matches everything.
func MatchesAnyKeyword(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

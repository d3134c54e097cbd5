package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// urlPattern matches absolute http(s) URL occurrences in message text.
var urlPattern = regexp.MustCompile(`(http|https)://([\w_-]+(?:(?:\.[\w_-]+)+))([\w.,@?^=%&:/~+#-]*[\w@?^=%&/~+#-])?`)

// placeholderPrefix is a plain digit run because bracketed or symbolic
// tokens tend to get mangled by the machine translator; digits survive.
const placeholderPrefix = "0123456789"

// extractURLs replaces every URL in text with a unique numeric
// placeholder and returns the placeholder->URL mapping for reinsertion
// after translation.
func extractURLs(text string) (string, map[string]string) {
	captured := make(map[string]string)
	count := 0
	replaced := urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		count++
		placeholder := placeholderPrefix + strconv.Itoa(count)
		captured[placeholder] = match
		return placeholder
	})
	return replaced, captured
}

// restoreURL substitutes the resolved URL back for its placeholder. For
// Chinese targets the translator may append a full-width period directly
// after the placeholder, which breaks the link in rendered form; strip it
// before substituting.
func restoreURL(text, placeholder, resolvedURL, targetLocale string) string {
	if strings.HasPrefix(targetLocale, "zh") {
		text = strings.ReplaceAll(text, placeholder+"。", placeholder)
	}
	return strings.ReplaceAll(text, placeholder, resolvedURL)
}

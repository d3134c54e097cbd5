package pipeline

import (
	"regexp"
	"strings"
)

// RepairRule reverses one script-native punctuation pairing the
// translator substitutes for the markdown link syntax [label](url).
type RepairRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// repairRules is keyed by script family. The set is a table rather than
// hard-coded branches so new locales only need new entries.
var repairRules = map[string][]RepairRule{
	"zh": {
		// ASCII brackets with full-width parentheses.
		{regexp.MustCompile(`\[(.+)\] *（([^（）]+)）`), "[$1]($2)"},
		// Corner brackets with full-width parentheses.
		{regexp.MustCompile(`「(.+)」 *（([^（）]+)）`), "[$1]($2)"},
	},
	"ru": {
		// Guillemets with ASCII parentheses.
		{regexp.MustCompile(`«(.+)» *\(([^（）]+)\)`), "[$1]($2)"},
	},
}

// markdownSpaces matches an accidental space the translator introduces
// between ] and ( in the link syntax.
var markdownSpaces = regexp.MustCompile(`\] *\(`)

func repairKey(targetLocale string) string {
	if strings.HasPrefix(targetLocale, "zh") {
		return "zh"
	}
	return targetLocale
}

// repairMarkdown applies the locale's repair rules, escapes double
// quotes the translator added, and closes up the link syntax. Best-effort
// textual correction.
func repairMarkdown(text, targetLocale string) string {
	for _, rule := range repairRules[repairKey(targetLocale)] {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	text = strings.ReplaceAll(text, `"`, `\"`)
	return markdownSpaces.ReplaceAllString(text, "](")
}

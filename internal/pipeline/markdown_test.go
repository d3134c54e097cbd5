package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairMarkdown_ChineseFullWidthParentheses(t *testing.T) {
	repaired := repairMarkdown("[資源]（http://x）", "zh-Hant")
	assert.Equal(t, "[資源](http://x)", repaired)
}

func TestRepairMarkdown_ChineseCornerBrackets(t *testing.T) {
	repaired := repairMarkdown("「foo」（http://x）", "zh-Hant")
	assert.Equal(t, "[foo](http://x)", repaired)
}

func TestRepairMarkdown_SimplifiedChineseSharesRules(t *testing.T) {
	repaired := repairMarkdown("[资源] （http://x）", "zh-Hans")
	assert.Equal(t, "[资源](http://x)", repaired)
}

func TestRepairMarkdown_RussianGuillemets(t *testing.T) {
	repaired := repairMarkdown("«ресурсы» (http://x)", "ru")
	assert.Equal(t, "[ресурсы](http://x)", repaired)
}

func TestRepairMarkdown_EscapesQuotes(t *testing.T) {
	repaired := repairMarkdown(`dice "hola"`, "es")
	assert.Equal(t, `dice \"hola\"`, repaired)
}

func TestRepairMarkdown_ClosesLinkSyntaxSpaces(t *testing.T) {
	repaired := repairMarkdown("[label] (http://x)", "es")
	assert.Equal(t, "[label](http://x)", repaired)
}

func TestRepairMarkdown_LeavesUnknownLocalesAlone(t *testing.T) {
	text := "«label» (http://x)"
	assert.Equal(t, text, repairMarkdown(text, "vi"))
}

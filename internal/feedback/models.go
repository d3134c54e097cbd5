package feedback

// Helpfulness signal values.
const (
	NotHelpful = 0
	Helpful    = 1
)

// Record is one immutable feedback submission tying a translated answer
// back to its original-language exchange.
type Record struct {
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	TranslatedQuestion string `json:"translatedQuestion"`
	TranslatedAnswer   string `json:"translatedAnswer"`
	Helpful            int    `json:"helpful"`
	Locale             string `json:"language"`
}

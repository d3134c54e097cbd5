// Package conversation holds per-conversation translation state.
package conversation

import "github.com/bellevuewa/chatbot-multilingual/internal/locale"

// State is one conversation's translation record. Created lazily on
// first access, mutated once per turn by the pipeline, never explicitly
// destroyed.
type State struct {
	LanguagePreference     string `json:"languagePreference"`
	LanguageChangeDetected bool   `json:"languageChangeDetected"`
	UserQuestion           string `json:"userQuestion"`
	TranslatedQuestion     string `json:"translatedQuestion"`
	UserAnswer             string `json:"userAnswer"`
	TranslatedAnswer       string `json:"translatedAnswer"`
}

// NewState returns the default state for a fresh conversation.
func NewState() *State {
	return &State{LanguagePreference: locale.DefaultLocale}
}

package feedback

import (
	"context"

	"github.com/bellevuewa/chatbot-multilingual/internal/activity"
	"github.com/bellevuewa/chatbot-multilingual/internal/content"
	"github.com/bellevuewa/chatbot-multilingual/internal/conversation"
)

// Annotator attaches the feedback prompt card to outgoing answers.
type Annotator struct {
	registry *content.Registry
}

// NewAnnotator creates a feedback annotator.
func NewAnnotator(registry *content.Registry) *Annotator {
	return &Annotator{registry: registry}
}

// Annotate scans outgoing activities from the end backward and attaches
// the feedback prompt card to every non-empty text message that is not
// the fixed no-answer text. The card carries the exchange as hidden
// payload so the later submission can correlate back without a session
// lookup.
func (a *Annotator) Annotate(ctx context.Context, state *conversation.State, activities []*activity.Activity) {
	if !a.registry.Flags().RequestUserFeedback {
		return
	}

	userLanguage := state.LanguagePreference
	for idx := len(activities) - 1; idx >= 0; idx-- {
		act := activities[idx]
		if !act.IsMessage() || act.Text == "" {
			continue
		}
		if act.Text == a.registry.DefaultNoAnswer(userLanguage) {
			continue
		}

		card := a.registry.FeedbackCard(
			userLanguage,
			state.UserQuestion,
			act.Text,
			state.TranslatedQuestion,
			state.TranslatedAnswer,
		)
		if card == nil {
			continue
		}
		act.Attachments = []content.Attachment{*card}
	}
}

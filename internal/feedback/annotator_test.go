package feedback

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellevuewa/chatbot-multilingual/internal/activity"
	"github.com/bellevuewa/chatbot-multilingual/internal/content"
	"github.com/bellevuewa/chatbot-multilingual/internal/conversation"
)

func annotatorRegistry(requestFeedback bool) *content.Registry {
	return content.NewRegistry(
		content.Flags{RequestUserFeedback: requestFeedback},
		map[string]string{"en": "No answer found."},
		nil,
		nil,
		map[string]string{
			"en": `{"q":"__question__","a":"__answer__","tq":"__translatedQuestion__","ta":"__translatedAnswer__"}`,
		},
	)
}

func message(text string) *activity.Activity {
	return &activity.Activity{Type: activity.TypeMessage, Text: text}
}

func TestAnnotate_AttachesCardWithExchangePayload(t *testing.T) {
	a := NewAnnotator(annotatorRegistry(true))
	state := conversation.NewState()
	state.UserQuestion = "pregunta"
	state.TranslatedQuestion = "question"
	state.TranslatedAnswer = "answer before translation"

	act := message("la respuesta")
	a.Annotate(context.Background(), state, []*activity.Activity{act})

	require.Len(t, act.Attachments, 1)
	assert.Equal(t, content.AdaptiveCardContentType, act.Attachments[0].ContentType)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(act.Attachments[0].Content, &payload))
	assert.Equal(t, "pregunta", payload["q"])
	assert.Equal(t, "la respuesta", payload["a"])
	assert.Equal(t, "question", payload["tq"])
	assert.Equal(t, "answer before translation", payload["ta"])
}

func TestAnnotate_SkipsNoAnswerText(t *testing.T) {
	a := NewAnnotator(annotatorRegistry(true))
	state := conversation.NewState()
	state.UserQuestion = "question"

	act := message("No answer found.")
	a.Annotate(context.Background(), state, []*activity.Activity{act})

	assert.Empty(t, act.Attachments)
}

func TestAnnotate_SkipsNonMessagesAndEmptyText(t *testing.T) {
	a := NewAnnotator(annotatorRegistry(true))
	state := conversation.NewState()
	state.UserQuestion = "question"

	trace := &activity.Activity{Type: activity.TypeTrace, Text: "diagnostic"}
	empty := message("")
	answer := message("the answer")
	a.Annotate(context.Background(), state, []*activity.Activity{trace, empty, answer})

	assert.Empty(t, trace.Attachments)
	assert.Empty(t, empty.Attachments)
	assert.Len(t, answer.Attachments, 1)
}

func TestAnnotate_DisabledByFlag(t *testing.T) {
	a := NewAnnotator(annotatorRegistry(false))
	state := conversation.NewState()
	state.UserQuestion = "question"

	act := message("the answer")
	a.Annotate(context.Background(), state, []*activity.Activity{act})

	assert.Empty(t, act.Attachments)
}

// Package bot routes conversation turn activities: free-text questions
// through the translation pipeline, card submits to their handlers.
package bot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/activity"
	"github.com/bellevuewa/chatbot-multilingual/internal/content"
	"github.com/bellevuewa/chatbot-multilingual/internal/conversation"
	"github.com/bellevuewa/chatbot-multilingual/internal/feedback"
	"github.com/bellevuewa/chatbot-multilingual/internal/locale"
	"github.com/bellevuewa/chatbot-multilingual/internal/pipeline"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// Structured submit payload fields.
const (
	actionKey              = "Action"
	actionLanguageSelector = "languageselector"
	choiceSetKey           = "choiceset"
	consentKey             = "Consent"
	consentLanguageKey     = "Language"
	helpfulKey             = "helpful"
	languageKey            = "language"
	questionKey            = "question"
	answerKey              = "answer"
	translatedQuestionKey  = "translatedQuestion"
	translatedAnswerKey    = "translatedAnswer"
)

// Service handles one conversation turn at a time.
type Service struct {
	pipeline  *pipeline.Pipeline
	registry  *content.Registry
	states    conversation.Store
	annotator *feedback.Annotator
	feedback  FeedbackSink
	answers   AnswerSource
}

// NewService creates a bot service.
func NewService(p *pipeline.Pipeline, registry *content.Registry, states conversation.Store, annotator *feedback.Annotator, sink FeedbackSink, answers AnswerSource) *Service {
	return &Service{
		pipeline:  p,
		registry:  registry,
		states:    states,
		annotator: annotator,
		feedback:  sink,
		answers:   answers,
	}
}

// ProcessActivity handles one inbound activity and returns the reply
// activities to send.
func (s *Service) ProcessActivity(ctx context.Context, act *activity.Activity) ([]*activity.Activity, error) {
	switch act.Type {
	case activity.TypeConversationUpdate:
		return s.greetNewMembers(act)
	case activity.TypeMessage:
		if act.Text == "" && act.Value != nil {
			if _, ok := act.StringValue(pipelineLanguageKey); !ok {
				return s.handleSubmit(ctx, act)
			}
		}
		return s.handleMessage(ctx, act)
	default:
		// Trace and other framework activities pass through untouched.
		return nil, nil
	}
}

// pipelineLanguageKey mirrors the pipeline's language-choice postback
// field; such postbacks are treated as free-text turns.
const pipelineLanguageKey = "LanguagePreference"

// greetNewMembers welcomes each added member other than the bot itself.
func (s *Service) greetNewMembers(act *activity.Activity) ([]*activity.Activity, error) {
	var replies []*activity.Activity
	for _, member := range act.MembersAdded {
		if member.ID == act.Recipient.ID {
			continue
		}
		var attachment content.Attachment
		if s.registry.Flags().SupportMultilingual {
			attachment = s.registry.SelectLanguageCard()
		} else {
			card, err := s.registry.Card(locale.DefaultLocale, content.CardIntro)
			if err != nil {
				return nil, err
			}
			attachment = card
		}
		replies = append(replies, attachmentReply(act, attachment))
	}
	return replies, nil
}

// handleMessage runs a free-text turn through the translation pipeline
// and the knowledge base.
func (s *Service) handleMessage(ctx context.Context, act *activity.Activity) ([]*activity.Activity, error) {
	state, err := s.states.Get(ctx, act.Conversation.ID)
	if err != nil {
		return nil, err
	}

	if err := s.pipeline.ProcessInbound(ctx, state, act); err != nil {
		return nil, err
	}

	question := act.Text
	answer := ""
	if strings.TrimSpace(question) != "" {
		answer, err = s.answers.Answer(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("answer lookup failed: %w", err)
		}
	}
	if answer == "" {
		answer = s.registry.DefaultNoAnswer(state.LanguagePreference)
	}

	replies := []*activity.Activity{textReply(act, answer)}
	if err := s.pipeline.ProcessOutbound(ctx, state, replies); err != nil {
		return nil, err
	}
	if question != "" {
		s.annotator.Annotate(ctx, state, replies)
	}

	s.saveState(ctx, act.Conversation.ID, state)
	return replies, nil
}

// handleSubmit routes card submit actions: language selection, consent,
// and feedback.
func (s *Service) handleSubmit(ctx context.Context, act *activity.Activity) ([]*activity.Activity, error) {
	if action, ok := act.StringValue(actionKey); ok && action == actionLanguageSelector {
		lang, _ := act.StringValue(choiceSetKey)
		card, err := s.registry.Card(lang, content.CardIntro)
		if err != nil {
			return nil, err
		}
		return []*activity.Activity{attachmentReply(act, card)}, nil
	}

	if consent, ok := act.IntValue(consentKey); ok && consent == 1 {
		lang, _ := act.StringValue(consentLanguageKey)
		card, err := s.registry.Card(lang, content.CardAfterAgreeing)
		if err != nil {
			return nil, err
		}
		return []*activity.Activity{attachmentReply(act, card)}, nil
	}

	if helpful, ok := act.IntValue(helpfulKey); ok && s.registry.Flags().RequestUserFeedback {
		return s.handleFeedbackSubmit(ctx, act, helpful)
	}

	return nil, nil
}

// handleFeedbackSubmit acknowledges the signal in the user's locale and
// records the exchange carried in the card's hidden payload.
func (s *Service) handleFeedbackSubmit(ctx context.Context, act *activity.Activity, helpful int) ([]*activity.Activity, error) {
	lang, _ := act.StringValue(languageKey)

	var message string
	switch helpful {
	case feedback.Helpful:
		message = s.registry.AfterFeedbackHelpful(lang)
	case feedback.NotHelpful:
		message = s.registry.AfterFeedbackNotHelpful(lang)
	default:
		return nil, nil
	}

	question, _ := act.StringValue(questionKey)
	answer, _ := act.StringValue(answerKey)
	translatedQuestion, _ := act.StringValue(translatedQuestionKey)
	translatedAnswer, _ := act.StringValue(translatedAnswerKey)
	s.feedback.Record(ctx, feedback.Record{
		Question:           question,
		Answer:             answer,
		TranslatedQuestion: translatedQuestion,
		TranslatedAnswer:   translatedAnswer,
		Helpful:            helpful,
		Locale:             lang,
	})

	state, err := s.states.Get(ctx, act.Conversation.ID)
	if err != nil {
		return nil, err
	}

	replies := []*activity.Activity{textReply(act, message)}
	if err := s.pipeline.ProcessOutbound(ctx, state, replies); err != nil {
		return nil, err
	}

	s.saveState(ctx, act.Conversation.ID, state)
	return replies, nil
}

// ProcessUpdateActivity re-translates an edited activity for the user's
// locale.
func (s *Service) ProcessUpdateActivity(ctx context.Context, act *activity.Activity) error {
	state, err := s.states.Get(ctx, act.Conversation.ID)
	if err != nil {
		return err
	}
	return s.pipeline.ProcessUpdate(ctx, state, act)
}

// saveState persists conversation state; failure is logged, not fatal to
// the turn.
func (s *Service) saveState(ctx context.Context, conversationID string, state *conversation.State) {
	if err := s.states.Save(ctx, conversationID, state); err != nil {
		logger.Error("failed to save conversation state",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
	}
}

func textReply(inbound *activity.Activity, text string) *activity.Activity {
	return &activity.Activity{
		Type:         activity.TypeMessage,
		Text:         text,
		Conversation: inbound.Conversation,
	}
}

func attachmentReply(inbound *activity.Activity, attachment content.Attachment) *activity.Activity {
	return &activity.Activity{
		Type:         activity.TypeMessage,
		Conversation: inbound.Conversation,
		Attachments:  []content.Attachment{attachment},
	}
}

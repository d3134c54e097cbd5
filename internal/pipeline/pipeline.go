// Package pipeline orchestrates per-turn language detection and
// placeholder-protected translation of inbound and outbound text.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/activity"
	"github.com/bellevuewa/chatbot-multilingual/internal/conversation"
	"github.com/bellevuewa/chatbot-multilingual/internal/locale"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// languagePreferenceKey is the structured postback field carrying a
// language choice.
const languagePreferenceKey = "LanguagePreference"

// Translator is the remote detection and translation boundary.
type Translator interface {
	Detect(ctx context.Context, text string, candidates []string) (string, error)
	Translate(ctx context.Context, text, target string) (string, error)
}

// OverrideStore returns curated translations checked before the
// Translator is called.
type OverrideStore interface {
	Lookup(loc, phrase string) (string, bool)
}

// URLResolver maps a canonical English URL to its per-locale equivalent.
type URLResolver interface {
	MappedURL(ctx context.Context, englishURL, loc string) string
}

// FixedMessages identifies pre-localized system texts that must never be
// re-translated.
type FixedMessages interface {
	IsFixedSystemMessage(text, loc string) bool
	IsFeedbackAckMessage(text, loc string) bool
}

// Interaction is one logged question/answer exchange.
type Interaction struct {
	Question           string
	Answer             string
	TranslatedQuestion string
	TranslatedAnswer   string
	Locale             string
}

// InteractionSink records interactions best-effort; implementations must
// swallow their own failures.
type InteractionSink interface {
	Log(ctx context.Context, interaction Interaction)
}

// Pipeline is the turn translation orchestrator.
type Pipeline struct {
	translator Translator
	overrides  OverrideStore
	urls       URLResolver
	messages   FixedMessages
	sink       InteractionSink

	processingLocale string
	skipDetection    bool
}

// New creates a pipeline. processingLocale is the pivot locale all
// knowledge-base content is authored in. sink may be nil to disable
// interaction logging.
func New(translator Translator, overrides OverrideStore, urls URLResolver, messages FixedMessages, sink InteractionSink, processingLocale string, skipDetection bool) *Pipeline {
	if processingLocale == "" {
		processingLocale = locale.DefaultLocale
	}
	return &Pipeline{
		translator:       translator,
		overrides:        overrides,
		urls:             urls,
		messages:         messages,
		sink:             sink,
		processingLocale: processingLocale,
		skipDetection:    skipDetection,
	}
}

// ProcessingLocale returns the pipeline's pivot locale.
func (p *Pipeline) ProcessingLocale() string {
	return p.processingLocale
}

// ProcessInbound runs detection and inbound translation for one message
// activity, mutating both the activity text and the conversation state.
func (p *Pipeline) ProcessInbound(ctx context.Context, state *conversation.State, act *activity.Activity) error {
	if !act.IsMessage() {
		return nil
	}

	utterance := extractUtterance(act)
	if strings.TrimSpace(utterance) == "" {
		return nil
	}

	if !p.skipDetection {
		detected, err := p.translator.Detect(ctx, utterance, locale.SupportedLocales)
		if err != nil {
			// Detection failure is non-fatal: the stored preference wins.
			logger.Warn("language detection failed", zap.Error(err))
		} else if detected != "" && detected != state.LanguagePreference {
			state.LanguageChangeDetected = true
			state.LanguagePreference = detected
		}
	}

	state.UserQuestion = act.Text
	if act.Text == "" || state.LanguagePreference == p.processingLocale {
		return nil
	}

	if override, ok := p.overrides.Lookup(state.LanguagePreference, act.Text); ok {
		act.Text = override
	} else {
		translated, err := p.translator.Translate(ctx, act.Text, p.processingLocale)
		if err != nil {
			return err
		}
		act.Text = translated
	}
	state.TranslatedQuestion = act.Text

	return nil
}

// extractUtterance pulls the effective utterance out of the activity. A
// structured language-selection postback overwrites the visible text so
// downstream stages treat it uniformly; free text is lower-cased.
func extractUtterance(act *activity.Activity) string {
	if act.Value != nil {
		if choice, ok := act.StringValue(languagePreferenceKey); ok {
			choice = strings.TrimSpace(choice)
			act.Text = choice
			return choice
		}
		return ""
	}
	return strings.ToLower(act.Text)
}

// ProcessOutbound translates each outgoing message activity to the
// user's locale. Activities are independent external calls, so they fan
// out concurrently and join before the turn continues.
func (p *Pipeline) ProcessOutbound(ctx context.Context, state *conversation.State, activities []*activity.Activity) error {
	userLanguage := state.LanguagePreference
	if userLanguage == p.processingLocale {
		return nil
	}

	type job struct {
		act *activity.Activity
	}
	var jobs []job
	for _, act := range activities {
		if !act.IsMessage() {
			continue
		}
		// Recorded before translation on purpose: the skip checks and the
		// interaction log below see the processing-locale text.
		state.TranslatedAnswer = act.Text
		if p.messages.IsFixedSystemMessage(act.Text, userLanguage) {
			continue
		}
		jobs = append(jobs, job{act: act})
	}

	if len(jobs) > 0 {
		// Always return traditional Chinese to stay consistent with the
		// authored content.
		target := userLanguage
		if target == "zh-Hans" {
			target = "zh-Hant"
		}

		results := make([]string, len(jobs))
		errs := make([]error, len(jobs))
		var wg sync.WaitGroup
		for i, j := range jobs {
			wg.Add(1)
			go func(i int, act *activity.Activity) {
				defer wg.Done()
				results[i], errs[i] = p.translateText(ctx, act.Text, target)
			}(i, j.act)
		}
		wg.Wait()

		for i, j := range jobs {
			if errs[i] != nil {
				return errs[i]
			}
			j.act.Text = results[i]
			state.UserAnswer = results[i]
		}
	}

	p.logInteraction(ctx, state, userLanguage)
	return nil
}

// ProcessUpdate applies the per-activity translation routine when an
// existing activity is edited rather than newly sent.
func (p *Pipeline) ProcessUpdate(ctx context.Context, state *conversation.State, act *activity.Activity) error {
	if !act.IsMessage() || state.LanguagePreference == p.processingLocale {
		return nil
	}

	translated, err := p.translateText(ctx, act.Text, state.LanguagePreference)
	if err != nil {
		return err
	}
	act.Text = translated
	return nil
}

// translateText performs one placeholder-protected translation: URLs out,
// translate, remapped URLs back in, markdown repaired.
func (p *Pipeline) translateText(ctx context.Context, text, targetLocale string) (string, error) {
	protected, placeholders := extractURLs(text)

	translated, err := p.translator.Translate(ctx, protected, targetLocale)
	if err != nil {
		return "", err
	}

	for placeholder, originalURL := range placeholders {
		resolved := p.urls.MappedURL(ctx, originalURL, targetLocale)
		if resolved == "" {
			resolved = originalURL
		}
		translated = restoreURL(translated, placeholder, resolved, targetLocale)
	}

	return repairMarkdown(translated, targetLocale), nil
}

// logInteraction emits the turn's question/answer record. Trace
// activities pass through the send path too, so only a turn that
// actually translated an answer is logged.
func (p *Pipeline) logInteraction(ctx context.Context, state *conversation.State, userLanguage string) {
	if p.sink == nil {
		return
	}
	if state.TranslatedAnswer == "" || state.UserQuestion == "" {
		return
	}
	if p.messages.IsFeedbackAckMessage(state.TranslatedAnswer, userLanguage) {
		return
	}
	p.sink.Log(ctx, Interaction{
		Question:           state.UserQuestion,
		Answer:             state.UserAnswer,
		TranslatedQuestion: state.TranslatedQuestion,
		TranslatedAnswer:   state.TranslatedAnswer,
		Locale:             userLanguage,
	})
}

// Package content selects localized cards and fixed texts for a
// requested locale, falling back to English where nothing is authored.
package content

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/locale"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// Registry holds all localized content, populated once at process start
// and treated as read-only thereafter.
type Registry struct {
	flags Flags

	defaultNoAnswer    map[string]string
	feedbackHelpful    map[string]string
	feedbackNotHelpful map[string]string

	// locale -> card type -> attachment
	cards map[string]map[CardType]Attachment
	// feedback card content is kept as a template, not an attachment
	feedbackCardContent map[string]string
	selectLanguageCard  Attachment
}

// LoadRegistry fetches and decodes every content document. Individual
// load failures are logged and leave the affected dictionary empty, so
// reads fall back to English; they do not abort startup.
func LoadRegistry(ctx context.Context, store DocumentStore, resourcesPath string) (*Registry, error) {
	r := &Registry{
		defaultNoAnswer:     make(map[string]string),
		feedbackHelpful:     make(map[string]string),
		feedbackNotHelpful:  make(map[string]string),
		cards:               make(map[string]map[CardType]Attachment),
		feedbackCardContent: make(map[string]string),
	}

	settingsDoc, err := fetchDocument(ctx, store, resourcesPath, KeyAppSettings)
	if err != nil {
		return nil, err
	}
	r.flags, err = decodeFlags(settingsDoc)
	if err != nil {
		return nil, err
	}

	texts := map[string]map[string]string{
		KeyDefaultNoAnswer:        r.defaultNoAnswer,
		KeyFeedbackHelpfulText:    r.feedbackHelpful,
		KeyFeedbackNotHelpfulText: r.feedbackNotHelpful,
	}
	for key, dict := range texts {
		byLocale, err := loadLocalized(ctx, store, resourcesPath, key)
		if err != nil {
			logger.Error("content load failed", zap.String("key", key), zap.Error(err))
			continue
		}
		for loc, value := range byLocale {
			dict[loc] = value
		}
	}

	cardKeys := map[string]CardType{
		KeyCardIntro:         CardIntro,
		KeyCardAfterAgreeing: CardAfterAgreeing,
		KeyCardFeedback:      CardFeedback,
	}
	for key, cardType := range cardKeys {
		byLocale, err := loadLocalized(ctx, store, resourcesPath, key)
		if err != nil {
			logger.Error("content load failed", zap.String("key", key), zap.Error(err))
			continue
		}
		for loc, value := range byLocale {
			if cardType == CardFeedback {
				// The feedback card gets per-exchange values substituted
				// in at send time, so keep the raw template.
				r.feedbackCardContent[loc] = value
				continue
			}
			byType, ok := r.cards[loc]
			if !ok {
				byType = make(map[CardType]Attachment)
				r.cards[loc] = byType
			}
			byType[cardType] = Attachment{
				ContentType: AdaptiveCardContentType,
				Content:     json.RawMessage(value),
			}
		}
	}

	selectDoc, err := fetchDocument(ctx, store, resourcesPath, KeyCardSelectLanguage)
	if err != nil {
		logger.Error("content load failed", zap.String("key", KeyCardSelectLanguage), zap.Error(err))
	} else {
		r.selectLanguageCard = Attachment{
			ContentType: AdaptiveCardContentType,
			Content:     json.RawMessage(selectDoc),
		}
	}

	return r, nil
}

func loadLocalized(ctx context.Context, store DocumentStore, resourcesPath, key string) (map[string]string, error) {
	doc, err := fetchDocument(ctx, store, resourcesPath, key)
	if err != nil {
		return nil, err
	}
	return decodeLocalizedValues(key, doc)
}

// NewRegistry builds a registry from in-memory content. Used by tests.
func NewRegistry(flags Flags, noAnswer, helpful, notHelpful, feedbackCards map[string]string) *Registry {
	r := &Registry{
		flags:               flags,
		defaultNoAnswer:     noAnswer,
		feedbackHelpful:     helpful,
		feedbackNotHelpful:  notHelpful,
		cards:               make(map[string]map[CardType]Attachment),
		feedbackCardContent: feedbackCards,
	}
	if r.defaultNoAnswer == nil {
		r.defaultNoAnswer = make(map[string]string)
	}
	if r.feedbackHelpful == nil {
		r.feedbackHelpful = make(map[string]string)
	}
	if r.feedbackNotHelpful == nil {
		r.feedbackNotHelpful = make(map[string]string)
	}
	if r.feedbackCardContent == nil {
		r.feedbackCardContent = make(map[string]string)
	}
	return r
}

// SetCard registers a card for a locale. Used by tests.
func (r *Registry) SetCard(loc string, cardType CardType, attachment Attachment) {
	byType, ok := r.cards[loc]
	if !ok {
		byType = make(map[CardType]Attachment)
		r.cards[loc] = byType
	}
	byType[cardType] = attachment
}

// SetSelectLanguageCard registers the language-selection card. Used by tests.
func (r *Registry) SetSelectLanguageCard(attachment Attachment) {
	r.selectLanguageCard = attachment
}

// Flags returns the feature switches loaded at startup.
func (r *Registry) Flags() Flags {
	return r.flags
}

// DefaultNoAnswer returns the fixed no-answer text for the locale.
func (r *Registry) DefaultNoAnswer(loc string) string {
	return textFor(loc, r.defaultNoAnswer)
}

// AfterFeedbackHelpful returns the helpful-feedback acknowledgement text.
func (r *Registry) AfterFeedbackHelpful(loc string) string {
	return textFor(loc, r.feedbackHelpful)
}

// AfterFeedbackNotHelpful returns the not-helpful-feedback acknowledgement text.
func (r *Registry) AfterFeedbackNotHelpful(loc string) string {
	return textFor(loc, r.feedbackNotHelpful)
}

// textFor never fails: unknown locales silently fall back to English.
func textFor(loc string, dict map[string]string) string {
	loc = locale.NormalizeForDisplay(loc)
	if value, ok := dict[loc]; ok {
		return value
	}
	return dict[locale.DefaultLocale]
}

// Card returns the card registered for the locale, falling back to the
// English card set when the locale has none. The display set is closed
// for cards, so an unsupported locale is an error rather than a
// fallback.
func (r *Registry) Card(loc string, cardType CardType) (Attachment, error) {
	if cardType == CardSelectLanguage {
		return r.selectLanguageCard, nil
	}
	if !locale.IsDisplayLocale(loc) {
		return Attachment{}, ErrUnsupportedLocale
	}
	byType, ok := r.cards[loc]
	if !ok {
		byType = r.cards[locale.DefaultLocale]
	}
	return byType[cardType], nil
}

// SelectLanguageCard returns the language-selection card.
func (r *Registry) SelectLanguageCard() Attachment {
	return r.selectLanguageCard
}

// FeedbackCard builds the feedback prompt card for the locale, carrying
// the exchange as hidden payload so the submission can correlate back
// without a session lookup. Returns nil for locales outside the display
// set after normalization.
func (r *Registry) FeedbackCard(loc, question, answer, translatedQuestion, translatedAnswer string) *Attachment {
	if loc == "zh-Hans" {
		loc = "zh-Hant" // only traditional Chinese content is authored
	}
	if !locale.IsDisplayLocale(loc) {
		return nil
	}

	template, ok := r.feedbackCardContent[loc]
	if !ok {
		template = r.feedbackCardContent[locale.DefaultLocale]
	}
	if template == "" {
		return nil
	}

	card := strings.NewReplacer(
		"__question__", question,
		"__answer__", answer,
		"__translatedQuestion__", translatedQuestion,
		"__translatedAnswer__", translatedAnswer,
	).Replace(template)

	return &Attachment{
		ContentType: AdaptiveCardContentType,
		Content:     json.RawMessage(card),
	}
}

// IsFixedSystemMessage reports whether text is one of the pre-localized
// system messages that must never be re-translated.
func (r *Registry) IsFixedSystemMessage(text, loc string) bool {
	return text == r.DefaultNoAnswer(loc) ||
		text == r.AfterFeedbackHelpful(loc) ||
		text == r.AfterFeedbackNotHelpful(loc)
}

// IsFeedbackAckMessage reports whether text is one of the two
// feedback-acknowledgement messages for the locale.
func (r *Registry) IsFeedbackAckMessage(text, loc string) bool {
	return text == r.AfterFeedbackHelpful(loc) ||
		text == r.AfterFeedbackNotHelpful(loc)
}

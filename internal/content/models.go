package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AdaptiveCardContentType tags attachments as rich-card content for the
// channel renderer.
const AdaptiveCardContentType = "application/vnd.microsoft.card.adaptive"

// CardType identifies a localized card.
type CardType string

const (
	CardIntro          CardType = "intro"
	CardAfterAgreeing  CardType = "after_agreeing"
	CardFeedback       CardType = "feedback"
	CardSelectLanguage CardType = "select_language"
)

// Document keys looked up in the content store.
const (
	KeyAppSettings            = "appsettings"
	KeyDefaultNoAnswer        = "DefaultNoAnswer_MultiLingual"
	KeyFeedbackHelpfulText    = "MessageAfterFeedbackHelpful_MultiLingual"
	KeyFeedbackNotHelpfulText = "MessageAfterFeedbackNotHelpful_MultiLingual"
	KeyCardIntro              = "CardIntro_MultiLingual"
	KeyCardAfterAgreeing      = "CardAfterAgreeing_MultiLingual"
	KeyCardFeedback           = "CardFeedback_MultiLingual"
	KeyCardSelectLanguage     = "CardSelectLanguage"
)

// Attachment is a rich-card payload sent alongside a message activity.
type Attachment struct {
	ContentType string          `json:"contentType"`
	Content     json.RawMessage `json:"content"`
}

// LocalizedValue is one entry of a per-locale content array.
type LocalizedValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Flags are the feature switches carried by the appsettings document.
type Flags struct {
	RequestUserFeedback bool
	SupportMultilingual bool
	LogInteractions     bool
}

// appSettingsDoc is the wire shape of the appsettings document.
type appSettingsDoc struct {
	IsRequestingUserFeedback string `json:"IsRequestingUserFeedback"`
	IsSupportingMultiLingual string `json:"IsSupportingMultiLingual"`
	IsLogging                string `json:"IsLogging"`
}

// ErrUnsupportedLocale reports a card lookup for a locale outside the
// closed display set.
var ErrUnsupportedLocale = errors.New("unsupported display locale")

// LoadError reports a content document that could not be fetched or did
// not match the expected shape. Startup-time only: the affected
// dictionary stays empty, which causes English fallback at read time.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load content %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

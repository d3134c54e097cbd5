package translator

import "fmt"

// detectRequest and translateRequest share the same wire shape.
type textRequest struct {
	Text string `json:"text"`
}

// AltDetection is a lower-ranked detection guess.
type AltDetection struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

// DetectResult is one row of the remote detector's response.
type DetectResult struct {
	Language                   string         `json:"language"`
	Score                      float64        `json:"score"`
	IsTranslationSupported     bool           `json:"isTranslationSupported"`
	IsTransliterationSupported bool           `json:"isTransliterationSupported"`
	Alternatives               []AltDetection `json:"alternatives"`
}

// translationResult is one row of the remote translator's response.
type translationResult struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// ServiceError reports a non-success response from the translation service.
// Callers must propagate it rather than fall back to the untranslated text:
// presenting machine-untranslated text as if translated is worse than a
// visible failure.
type ServiceError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation service %s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("translation service %s returned HTTP status %d", e.Operation, e.StatusCode)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

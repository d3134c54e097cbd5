package bot

import (
	"context"

	"github.com/bellevuewa/chatbot-multilingual/internal/feedback"
)

// AnswerSource is the external knowledge-base boundary. It receives the
// question in the processing locale and returns the authored answer, or
// "" when nothing matched.
type AnswerSource interface {
	Answer(ctx context.Context, question string) (string, error)
}

// FeedbackSink records helpful/not-helpful submissions best-effort.
type FeedbackSink interface {
	Record(ctx context.Context, record feedback.Record)
}

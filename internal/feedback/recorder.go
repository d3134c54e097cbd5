// Package feedback captures helpful/not-helpful signals and interaction
// logs. Both channels are best-effort: a failed write never interrupts
// the conversation.
package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/pipeline"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// partitionKey matches the single-partition layout of the feedback and
// log tables.
const partitionKey = "0"

// Recorder appends feedback records to the store.
type Recorder struct {
	pool *pgxpool.Pool
}

// NewRecorder creates a feedback recorder.
func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// Record appends one immutable feedback row. Every submission produces a
// new row keyed by a generated id; existing rows are never updated.
// Failures are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, record Record) {
	query := `
		INSERT INTO qna_feedback (partition_key, row_key, question, answer, translated_question, translated_answer, helpful, locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		partitionKey, uuid.New().String(),
		record.Question, record.Answer,
		record.TranslatedQuestion, record.TranslatedAnswer,
		record.Helpful, record.Locale,
	)
	if err != nil {
		logger.Error("failed to record feedback",
			zap.String("locale", record.Locale),
			zap.Error(err),
		)
	}
}

// InteractionLogger appends question/answer interaction rows. It is the
// pipeline's logging sink.
type InteractionLogger struct {
	pool *pgxpool.Pool
}

// NewInteractionLogger creates an interaction logger.
func NewInteractionLogger(pool *pgxpool.Pool) *InteractionLogger {
	return &InteractionLogger{pool: pool}
}

// Log appends one interaction row. Failures are logged and swallowed.
func (l *InteractionLogger) Log(ctx context.Context, interaction pipeline.Interaction) {
	query := `
		INSERT INTO qna_logs (partition_key, row_key, user_question, user_answer, translated_question, translated_answer, user_locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := l.pool.Exec(ctx, query,
		partitionKey, uuid.New().String(),
		interaction.Question, interaction.Answer,
		interaction.TranslatedQuestion, interaction.TranslatedAnswer,
		interaction.Locale,
	)
	if err != nil {
		logger.Error("failed to log interaction",
			zap.String("locale", interaction.Locale),
			zap.Error(err),
		)
	}
}

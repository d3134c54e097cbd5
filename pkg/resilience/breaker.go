package resilience

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// ErrCircuitOpen is returned when an operation is rejected because the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker wraps gobreaker with metrics and logging.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker creates a circuit breaker from the given settings.
func NewBreaker(settings Settings) *Breaker {
	name := nextBreakerName(settings.Name)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.SuccessThreshold,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerStateGauge.WithLabelValues(name).Set(breakerStateValue(to))
			breakerStateTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	breakerStateGauge.WithLabelValues(name).Set(breakerStateValue(cb.State()))

	return &Breaker{cb: cb}
}

// Execute runs op through the breaker. An open breaker yields ErrCircuitOpen
// without invoking op.
func (b *Breaker) Execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	breakerRequestsTotal.WithLabelValues(b.cb.Name()).Inc()

	result, err := b.cb.Execute(func() (interface{}, error) {
		return op(ctx)
	})
	if err != nil {
		breakerFailuresTotal.WithLabelValues(b.cb.Name()).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			breakerFallbacksTotal.WithLabelValues(b.cb.Name()).Inc()
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	return result, nil
}

// State exposes the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

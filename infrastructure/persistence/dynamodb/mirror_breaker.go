package dynamodb

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

// BreakerConfig holds configuration for the mirror circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ReadyToTrip function determines when to trip the circuit breaker
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the mirror breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerMirror decorates an EntryMirror with a circuit breaker so a
// struggling external store stops eating latency on every append. While the
// circuit is open calls fail fast with an unavailable error; the in-memory
// journal is unaffected either way.
type BreakerMirror struct {
	inner   ports.EntryMirror
	breaker *gobreaker.CircuitBreaker
}

var _ ports.EntryMirror = (*BreakerMirror)(nil)

// NewBreakerMirror wraps a mirror with a circuit breaker
func NewBreakerMirror(inner ports.EntryMirror, config BreakerConfig, logger *zap.Logger) *BreakerMirror {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Only trip if we have enough requests to make a decision
			if counts.Requests < config.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Mirror circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerMirror{inner: inner, breaker: breaker}
}

// Append writes a single entry through the breaker
func (b *BreakerMirror) Append(ctx context.Context, entry *entities.Entry) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.inner.Append(ctx, entry)
	})
	return b.translate(err)
}

// AppendBatch writes multiple entries through the breaker
func (b *BreakerMirror) AppendBatch(ctx context.Context, entries []*entities.Entry) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.inner.AppendBatch(ctx, entries)
	})
	return b.translate(err)
}

// FetchAll reads the mirrored journal through the breaker
func (b *BreakerMirror) FetchAll(ctx context.Context) ([]*entities.Entry, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		return b.inner.FetchAll(ctx)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return result.([]*entities.Entry), nil
}

// FetchRange reads a timestamp range through the breaker
func (b *BreakerMirror) FetchRange(ctx context.Context, from, to time.Time) ([]*entities.Entry, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		return b.inner.FetchRange(ctx, from, to)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return result.([]*entities.Entry), nil
}

func (b *BreakerMirror) translate(err error) error {
	switch err {
	case nil:
		return nil
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
		return pkgerrors.NewUnavailableError("entry mirror").WithCause(err)
	default:
		return err
	}
}

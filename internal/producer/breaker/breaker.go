// Package breaker wraps an upstream producer with circuit breaker protection.
// When the wrapped producer fails to open streams repeatedly the circuit opens
// and later requests fail fast without reaching the upstream.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

// ErrCircuitOpen is returned while the circuit rejects requests.
var ErrCircuitOpen = errors.New("circuit open")

// Config configures the circuit breaker behavior.
type Config struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32 `env:"BREAKER_MAX_FAILURES" envDefault:"5"`
	// Timeout is how long the circuit stays open before transitioning to half-open.
	Timeout time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
	// Interval is the cyclic period of the closed state for clearing failure counts.
	Interval time.Duration `env:"BREAKER_INTERVAL" envDefault:"60s"`
}

// Producer wraps a domain.Producer with a circuit breaker. Only stream
// opening is guarded; failures reported through fragments do not trip it.
type Producer struct {
	inner   domain.Producer
	breaker *gobreaker.CircuitBreaker[<-chan domain.Fragment]
}

// NewProducer wraps inner with a circuit breaker.
func NewProducer(inner domain.Producer, cfg Config) *Producer {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:        "producer:" + inner.Name(),
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.FromContext(context.Background()).Warn("circuit breaker state change",
				observability.String("breaker", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// Cancellation is not an upstream failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Producer{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[<-chan domain.Fragment](settings),
	}
}

// Produce opens the inner stream through the breaker.
func (p *Producer) Produce(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.Fragment, error) {
	fragments, err := p.breaker.Execute(func() (<-chan domain.Fragment, error) {
		return p.inner.Produce(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("producer %q %w: %w", p.inner.Name(), ErrCircuitOpen, err)
		}
		return nil, err
	}
	return fragments, nil
}

// Name returns the wrapped producer's name.
func (p *Producer) Name() string {
	return p.inner.Name()
}

// IsModelSupported delegates to the wrapped producer.
func (p *Producer) IsModelSupported(ctx context.Context, model string) bool {
	return p.inner.IsModelSupported(ctx, model)
}

// State returns the current circuit breaker state for monitoring.
func (p *Producer) State() gobreaker.State {
	return p.breaker.State()
}

var _ domain.Producer = (*Producer)(nil)

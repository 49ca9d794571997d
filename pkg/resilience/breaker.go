package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned when the breaker rejects an execution.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings tunes a single circuit breaker.
type Settings struct {
	Name             string
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	SuccessThreshold uint32
}

// Breaker wraps gobreaker with prometheus instrumentation and an optional
// fallback for the open state.
type Breaker struct {
	name     string
	cb       *gobreaker.CircuitBreaker
	fallback FallbackFunc
}

// New creates an instrumented circuit breaker. fallback may be nil, in which
// case open-state executions return ErrCircuitOpen.
func New(settings Settings, fallback FallbackFunc) *Breaker {
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
			recordBreakerStateChange(name, from, to)
		},
	})
	recordBreakerState(name, cb.State())

	return &Breaker{name: name, cb: cb, fallback: fallback}
}

// Name returns the breaker's registered name.
func (b *Breaker) Name() string {
	return b.name
}

// Execute runs fn through the breaker. When the breaker is open the fallback
// decides the outcome.
func (b *Breaker) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	recordBreakerRequest(b.name)

	result, err := b.cb.Execute(fn)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		recordBreakerFallback(b.name)
		if b.fallback != nil {
			return b.fallback(ctx, ErrCircuitOpen)
		}
		return nil, ErrCircuitOpen
	}

	recordBreakerFailure(b.name)
	return nil, err
}

// pkg/render/breaker.go
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/logging"
)

// BreakerSettings configures a BreakerSink
type BreakerSettings struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// Cooldown is how long the breaker stays open before probing again.
	Cooldown time.Duration
}

// DefaultBreakerSettings trips after five failed frames and probes every
// two seconds.
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{Name: name, MaxFailures: 5, Cooldown: 2 * time.Second}
}

// BreakerSink isolates a flaky sink. While the breaker is open, frames and
// HUD updates are dropped without reaching the wrapped sink, so a broken
// display or trace file cannot flood the log at tick rate. Summaries always
// go through.
type BreakerSink struct {
	next    engine.Sink
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewBreakerSink wraps next
func NewBreakerSink(next engine.Sink, settings BreakerSettings, logger *logging.Logger) *BreakerSink {
	if logger == nil {
		logger = logging.Discard()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "sink breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BreakerSink{next: next, breaker: breaker, logger: logger}
}

func (b *BreakerSink) execute(deliver func() error) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, deliver()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("sink %s: %w", b.breaker.Name(), err)
	}
	return nil
}

// Frame implements engine.Sink
func (b *BreakerSink) Frame(frame engine.Frame) error {
	return b.execute(func() error { return b.next.Frame(frame) })
}

// HUD implements engine.Sink
func (b *BreakerSink) HUD(hud engine.HUD) error {
	return b.execute(func() error { return b.next.HUD(hud) })
}

// GameOver implements engine.Sink
func (b *BreakerSink) GameOver(summary engine.Summary) error {
	return b.next.GameOver(summary)
}

// State returns the breaker state
func (b *BreakerSink) State() gobreaker.State {
	return b.breaker.State()
}

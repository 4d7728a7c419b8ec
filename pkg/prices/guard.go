package prices

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// BreakerSettings controls when a remote source is skipped
type BreakerSettings struct {
	ConsecutiveFailures uint32
	Cooldown            time.Duration
}

// Guarded wraps a Source with a circuit breaker. While the breaker is open the
// source fails fast and resolution moves on without touching the network.
type Guarded struct {
	source Source
	cb     *gobreaker.CircuitBreaker
}

// Guard wraps src in a breaker
func Guard(src Source, settings BreakerSettings, log zerolog.Logger) *Guarded {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 3
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 60 * time.Second
	}

	st := gobreaker.Settings{
		Name:     src.Name(),
		Interval: settings.Cooldown,
		Timeout:  settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Debug().Str("source", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state changed")
		},
		// cancellation is the caller's doing, not the source's
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &Guarded{source: src, cb: gobreaker.NewCircuitBreaker(st)}
}

func (g *Guarded) Name() string { return g.source.Name() }

func (g *Guarded) Fetch(ctx context.Context, keys []string) (Map, error) {
	res, err := g.cb.Execute(func() (interface{}, error) {
		return g.source.Fetch(ctx, keys)
	})
	if err != nil {
		return nil, err
	}
	return res.(Map), nil
}

// State exposes the breaker state for diagnostics
func (g *Guarded) State() gobreaker.State {
	return g.cb.State()
}

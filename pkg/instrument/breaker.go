package instrument

import (
	"context"

	"github.com/jt828/observation/pkg/observation"
	"github.com/sony/gobreaker/v2"
)

// Breaker observes calls through a circuit breaker. Each Execute runs in a
// "circuitbreaker.execute" observation carrying the breaker name and its
// state after the call; a state transition during the call records a
// "circuitbreaker.state.change" event.
type Breaker[T any] struct {
	cb  *gobreaker.CircuitBreaker[T]
	reg *observation.Registry
}

func NewBreaker[T any](reg *observation.Registry, settings gobreaker.Settings) *Breaker[T] {
	return &Breaker[T]{
		cb:  gobreaker.NewCircuitBreaker[T](settings),
		reg: reg,
	}
}

func (b *Breaker[T]) Execute(ctx context.Context, fn func() (T, error)) (T, error) {
	_, obs := observation.Start(ctx, "circuitbreaker.execute", b.reg,
		observation.WithLowCardinalityKeyValue("circuitbreaker.name", b.cb.Name()),
	)

	before := b.cb.State()
	result, err := b.cb.Execute(fn)
	after := b.cb.State()

	obs.LowCardinalityKeyValue("circuitbreaker.state", after.String())
	if after != before {
		obs.Event(observation.Event{
			Name:           "circuitbreaker.state.change",
			ContextualName: before.String() + " to " + after.String(),
		})
	}
	if err != nil {
		obs.Error(err)
	}
	obs.Stop()
	return result, err
}

func (b *Breaker[T]) State() gobreaker.State { return b.cb.State() }

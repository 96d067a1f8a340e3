package observation_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jt828/observation/pkg/observation"
	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("handlers registered after start miss the running observation", func(t *testing.T) {
		early := &recordingHandler{}
		late := &recordingHandler{}
		reg := observation.NewRegistry()
		reg.RegisterHandler(early)

		_, obs := observation.Start(context.Background(), "op", reg)
		reg.RegisterHandler(late)
		obs.Stop()

		assert.Equal(t, []string{"start", "stop"}, early.calls)
		assert.Empty(t, late.calls)

		_, next := observation.Start(context.Background(), "op", reg)
		next.Stop()
		assert.Equal(t, []string{"start", "stop"}, late.calls)
	})

	t.Run("every predicate must accept", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterPredicate(func(name string, c *observation.Context) bool { return true })
		reg.RegisterPredicate(func(name string, c *observation.Context) bool { return false })

		_, obs := observation.Start(context.Background(), "op", reg)
		assert.True(t, obs.IsNoop())
	})

	t.Run("nil registrations are ignored", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterHandler(nil)
		reg.RegisterPredicate(nil)
		reg.RegisterFilter(nil)
		reg.RegisterConvention(nil)

		_, obs := observation.Start(context.Background(), "op", reg)
		obs.Stop()
		assert.False(t, obs.IsNoop())
	})

	t.Run("concurrent observations do not race", func(t *testing.T) {
		h := &countingHandler{}
		reg := observation.NewRegistry()
		reg.RegisterHandler(h)

		done := make(chan struct{})
		for i := 0; i < 8; i++ {
			go func() {
				defer func() { done <- struct{}{} }()
				for j := 0; j < 100; j++ {
					_, obs := observation.Start(context.Background(), "op", reg)
					obs.Event(observation.NewEvent("tick"))
					obs.Stop()
				}
			}()
		}
		for i := 0; i < 8; i++ {
			<-done
		}

		assert.Equal(t, int64(800), h.starts.Load())
		assert.Equal(t, int64(800), h.stops.Load())
	})
}

type countingHandler struct {
	starts atomic.Int64
	stops  atomic.Int64
}

func (h *countingHandler) Supports(c *observation.Context) bool                { return true }
func (h *countingHandler) OnStart(c *observation.Context)                      { h.starts.Add(1) }
func (h *countingHandler) OnEvent(e observation.Event, c *observation.Context) {}
func (h *countingHandler) OnError(c *observation.Context)                      {}
func (h *countingHandler) OnStop(c *observation.Context)                       { h.stops.Add(1) }

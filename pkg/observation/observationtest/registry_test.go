package observationtest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jt828/observation/pkg/observation"
	"github.com/jt828/observation/pkg/observation/observationtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Records(t *testing.T) {
	t.Run("started and stopped contexts are captured in order", func(t *testing.T) {
		reg := observationtest.NewRegistry()

		octx, outer := observation.Start(context.Background(), "outer", reg.Registry)
		_, inner := observation.Start(octx, "inner", reg.Registry)
		inner.Stop()
		outer.Stop()

		require.Len(t, reg.Started(), 2)
		assert.Equal(t, "outer", reg.Started()[0].Name())
		assert.Equal(t, "inner", reg.Started()[1].Name())

		require.Len(t, reg.Stopped(), 2)
		assert.Equal(t, "inner", reg.Stopped()[0].Name())
		assert.Equal(t, "outer", reg.Stopped()[1].Name())
	})

	t.Run("Finished finds a stopped observation by name", func(t *testing.T) {
		reg := observationtest.NewRegistry()

		boom := errors.New("boom")
		_ = observation.Observe(context.Background(), "user.create", reg.Registry, func(ctx context.Context) error {
			observation.FromContext(ctx).LowCardinalityKeyValue("user.type", "internal")
			return boom
		})

		c := reg.Finished("user.create")
		require.NotNil(t, c)
		assert.ErrorIs(t, c.Error(), boom)
		assert.Contains(t, c.LowCardinalityKeyValues(), observation.KV("user.type", "internal"))

		assert.Nil(t, reg.Finished("absent"))
	})

	t.Run("events are recorded per observation name", func(t *testing.T) {
		reg := observationtest.NewRegistry()

		_, obs := observation.Start(context.Background(), "op", reg.Registry)
		obs.Event(observation.NewEvent("first"))
		obs.Event(observation.NewEvent("second"))
		obs.Stop()

		events := reg.Events("op")
		require.Len(t, events, 2)
		assert.Equal(t, "first", events[0].Name)
		assert.Equal(t, "second", events[1].Name)
	})

	t.Run("production handlers still run alongside the recorder", func(t *testing.T) {
		reg := observationtest.NewRegistry()
		stopped := false
		reg.RegisterHandler(stopFunc(func(c *observation.Context) { stopped = true }))

		_, obs := observation.Start(context.Background(), "op", reg.Registry)
		obs.Stop()

		assert.True(t, stopped)
		assert.Len(t, reg.Stopped(), 1)
	})

	t.Run("Reset clears every record", func(t *testing.T) {
		reg := observationtest.NewRegistry()

		_, obs := observation.Start(context.Background(), "op", reg.Registry)
		obs.Event(observation.NewEvent("e"))
		obs.Stop()
		reg.Reset()

		assert.Empty(t, reg.Started())
		assert.Empty(t, reg.Stopped())
		assert.Empty(t, reg.Events("op"))
	})
}

type stopFunc func(c *observation.Context)

func (stopFunc) Supports(c *observation.Context) bool                { return true }
func (stopFunc) OnStart(c *observation.Context)                      {}
func (stopFunc) OnEvent(e observation.Event, c *observation.Context) {}
func (stopFunc) OnError(c *observation.Context)                      {}
func (f stopFunc) OnStop(c *observation.Context)                     { f(c) }

package bridge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jt828/observation/pkg/observability/implementation"
	"github.com/jt828/observation/pkg/observation"
	"github.com/jt828/observation/pkg/observation/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*observer.ObservedLogs, *bridge.LoggingHandler) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logs, bridge.NewLoggingHandler(implementation.NewZapLoggerFrom(zap.New(core)))
}

func TestLoggingHandler(t *testing.T) {
	t.Run("logs every lifecycle point", func(t *testing.T) {
		logs, h := newObservedLogger()
		reg := observation.NewRegistry()
		reg.RegisterHandler(h)

		_, obs := observation.Start(context.Background(), "user.create", reg)
		obs.Event(observation.NewEvent("validation"))
		obs.Error(errors.New("boom"))
		obs.Stop()

		assert.Equal(t, 1, logs.FilterMessage("observation started").Len())
		assert.Equal(t, 1, logs.FilterMessage("observation event").Len())
		assert.Equal(t, 1, logs.FilterMessage("observation error").Len())
		assert.Equal(t, 1, logs.FilterMessage("observation stopped").Len())
	})

	t.Run("stop line carries duration, key-values and error", func(t *testing.T) {
		logs, h := newObservedLogger()
		reg := observation.NewRegistry()
		reg.RegisterHandler(h)

		_, obs := observation.Start(context.Background(), "user.create", reg,
			observation.WithLowCardinalityKeyValue("user.type", "internal"),
			observation.WithHighCardinalityKeyValue("user.id", "42"),
		)
		obs.Error(errors.New("boom"))
		obs.Stop()

		stopped := logs.FilterMessage("observation stopped").All()
		require.Len(t, stopped, 1)

		fields := stopped[0].ContextMap()
		assert.Equal(t, "user.create", fields["observation"])
		assert.Equal(t, "internal", fields["user.type"])
		assert.Equal(t, "42", fields["user.id"])
		assert.Contains(t, fields, "duration")
		assert.Contains(t, fields, "error")
	})

	t.Run("start and event lines are debug level", func(t *testing.T) {
		logs, h := newObservedLogger()
		reg := observation.NewRegistry()
		reg.RegisterHandler(h)

		_, obs := observation.Start(context.Background(), "op", reg)
		obs.Event(observation.NewEvent("e"))
		obs.Stop()

		for _, entry := range logs.FilterMessage("observation started").All() {
			assert.Equal(t, zapcore.DebugLevel, entry.Level)
		}
		for _, entry := range logs.FilterMessage("observation stopped").All() {
			assert.Equal(t, zapcore.InfoLevel, entry.Level)
		}
	})
}

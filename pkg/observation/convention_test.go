package observation_test

import (
	"context"
	"testing"

	"github.com/jt828/observation/pkg/observation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpConvention struct {
	observation.DefaultConvention
}

func (httpConvention) Supports(c *observation.Context) bool {
	return c.Name() == "http.server.requests"
}

func (httpConvention) ContextualName(c *observation.Context) string {
	return "handling request"
}

func (httpConvention) LowCardinalityKeyValues(c *observation.Context) []observation.KeyValue {
	return []observation.KeyValue{observation.KV("protocol", "http")}
}

type renamingConvention struct {
	observation.DefaultConvention
	name string
}

func (r renamingConvention) Name() string { return r.name }

func TestConventions(t *testing.T) {
	t.Run("matching registry convention enriches the context on stop", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterConvention(httpConvention{})

		_, obs := observation.Start(context.Background(), "http.server.requests", reg)
		obs.Stop()

		c := obs.Context()
		assert.Equal(t, "handling request", c.ContextualName())
		assert.Contains(t, c.LowCardinalityKeyValues(), observation.KV("protocol", "http"))
	})

	t.Run("non-matching registry convention is ignored", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterConvention(httpConvention{})

		_, obs := observation.Start(context.Background(), "db.sql.query", reg)
		obs.Stop()

		c := obs.Context()
		assert.Equal(t, "db.sql.query", c.ContextualName())
		assert.Empty(t, c.LowCardinalityKeyValues())
	})

	t.Run("explicit convention wins over registry conventions", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterConvention(httpConvention{})

		_, obs := observation.Start(context.Background(), "http.server.requests", reg,
			observation.WithConvention(renamingConvention{name: "http.requests.custom"}))
		obs.Stop()

		c := obs.Context()
		assert.Equal(t, "http.requests.custom", c.Name())
		assert.Empty(t, c.LowCardinalityKeyValues())
	})

	t.Run("convention sees values added during the observation", func(t *testing.T) {
		var captured string
		conv := funcConvention{low: func(c *observation.Context) []observation.KeyValue {
			v, ok := c.Get("status")
			require.True(t, ok)
			captured = v.(string)
			return nil
		}}
		reg := observation.NewRegistry()
		reg.RegisterConvention(conv)

		_, obs := observation.Start(context.Background(), "op", reg)
		obs.Context().Put("status", "200")
		obs.Stop()

		assert.Equal(t, "200", captured)
	})

	t.Run("default convention base changes nothing", func(t *testing.T) {
		reg := observation.NewRegistry()
		reg.RegisterConvention(observation.DefaultConvention{})

		_, obs := observation.Start(context.Background(), "op", reg)
		obs.Stop()

		assert.Equal(t, "op", obs.Context().Name())
		assert.Empty(t, obs.Context().AllKeyValues())
	})
}

type funcConvention struct {
	observation.DefaultConvention
	low func(c *observation.Context) []observation.KeyValue
}

func (f funcConvention) LowCardinalityKeyValues(c *observation.Context) []observation.KeyValue {
	return f.low(c)
}

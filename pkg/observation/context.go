package observation

import (
	"context"
	"time"
)

// Context holds the mutable state of a single observation. Handlers read
// and extend it at every lifecycle callback; Put/Get lets a handler stash
// its own state (a span, a timer) between callbacks.
//
// Context is not safe for concurrent use on its own; Observation serializes
// access for the lifecycle methods.
type Context struct {
	name           string
	contextualName string
	err            error

	low  []KeyValue
	high []KeyValue

	values map[any]any

	parent *Context

	reqCtx    context.Context
	startTime time.Time
	duration  time.Duration

	convention Convention
}

func (c *Context) Name() string { return c.name }

// ContextualName is the human-readable, per-invocation name. Falls back to
// Name when unset.
func (c *Context) ContextualName() string {
	if c.contextualName == "" {
		return c.name
	}
	return c.contextualName
}

func (c *Context) SetContextualName(name string) { c.contextualName = name }

func (c *Context) Error() error         { return c.err }
func (c *Context) SetError(err error)   { c.err = err }
func (c *Context) Parent() *Context     { return c.parent }
func (c *Context) StartTime() time.Time { return c.startTime }

// Duration is zero until the observation stops.
func (c *Context) Duration() time.Duration { return c.duration }

// RequestContext is the context.Context the observation runs under.
// Handlers may replace it on start (the tracing bridge injects the span
// context) so that downstream work sees their contribution.
func (c *Context) RequestContext() context.Context {
	if c.reqCtx == nil {
		return context.Background()
	}
	return c.reqCtx
}

func (c *Context) SetRequestContext(ctx context.Context) { c.reqCtx = ctx }

func (c *Context) AddLowCardinalityKeyValue(kv KeyValue) {
	c.low = appendKeyValue(c.low, kv)
}

func (c *Context) AddHighCardinalityKeyValue(kv KeyValue) {
	c.high = appendKeyValue(c.high, kv)
}

// LowCardinalityKeyValues returns the pairs in insertion order. The slice
// is shared; callers must not mutate it.
func (c *Context) LowCardinalityKeyValues() []KeyValue { return c.low }

func (c *Context) HighCardinalityKeyValues() []KeyValue { return c.high }

// AllKeyValues returns low followed by high cardinality pairs.
func (c *Context) AllKeyValues() []KeyValue {
	out := make([]KeyValue, 0, len(c.low)+len(c.high))
	out = append(out, c.low...)
	return append(out, c.high...)
}

// Put stores an arbitrary typed value under key. Use an unexported struct
// type as the key, as with context.Context values.
func (c *Context) Put(key, value any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = value
}

func (c *Context) Get(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

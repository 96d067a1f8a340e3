package observation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Observation is a single named unit of work in flight. Mutators return
// the observation for chaining. All methods are safe for concurrent use
// and safe on the no-op observation.
type Observation interface {
	// Context exposes the mutable state handlers see.
	Context() *Context

	ContextualName(name string) Observation
	LowCardinalityKeyValue(key, value string) Observation
	HighCardinalityKeyValue(key, value string) Observation

	// Event records a point-in-time annotation on the running observation.
	Event(e Event) Observation

	// Error captures err into the context and notifies handlers. The last
	// captured error is the one OnStop sees.
	Error(err error) Observation

	// Stop ends the observation: conventions and filters are applied, then
	// OnStop fires. Stop is idempotent.
	Stop()

	IsNoop() bool
}

// Option configures the context before predicates and handlers see it.
type Option func(c *Context)

func WithContextualName(name string) Option {
	return func(c *Context) { c.contextualName = name }
}

func WithLowCardinalityKeyValue(key, value string) Option {
	return func(c *Context) { c.AddLowCardinalityKeyValue(KV(key, value)) }
}

func WithHighCardinalityKeyValue(key, value string) Option {
	return func(c *Context) { c.AddHighCardinalityKeyValue(KV(key, value)) }
}

// WithConvention pins an explicit convention, overriding any convention
// registered on the registry.
func WithConvention(conv Convention) Option {
	return func(c *Context) { c.convention = conv }
}

type ctxKey struct{}

// FromContext returns the observation carried by ctx, or the no-op
// observation.
func FromContext(ctx context.Context) Observation {
	if ctx != nil {
		if o, ok := ctx.Value(ctxKey{}).(Observation); ok {
			return o
		}
	}
	return Noop()
}

// Start creates and starts an observation against reg. The returned
// context carries the observation: pass it to downstream work so nested
// observations pick up their parent and bridge handlers can nest spans.
//
// A nil registry, or any registry predicate returning false, yields a
// no-op observation. The returned context carries the no-op, so
// downstream FromContext calls resolve to it rather than to a parent
// observation higher up the chain.
func Start(ctx context.Context, name string, reg *Registry, opts ...Option) (context.Context, Observation) {
	if ctx == nil {
		ctx = context.Background()
	}
	if reg == nil {
		return context.WithValue(ctx, ctxKey{}, Noop()), Noop()
	}

	c := &Context{name: name}
	for _, opt := range opts {
		opt(c)
	}
	if parent := FromContext(ctx); !parent.IsNoop() {
		c.parent = parent.Context()
	}
	if !reg.accepts(name, c) {
		return context.WithValue(ctx, ctxKey{}, Noop()), Noop()
	}

	o := &observation{
		reg:      reg,
		ctx:      c,
		handlers: reg.handlerSnapshot(),
	}

	c.reqCtx = ctx
	c.startTime = time.Now()
	for _, h := range o.handlers {
		if h.Supports(c) {
			h.OnStart(c)
		}
	}

	// Handlers may have swapped the request context on start; attach the
	// observation on top of whatever they left.
	octx := context.WithValue(c.RequestContext(), ctxKey{}, Observation(o))
	c.reqCtx = octx
	return octx, o
}

// Observe runs fn inside an observation: the returned error is captured,
// then the observation stops. A panic in fn is captured as an error, the
// observation stopped, and the panic re-raised.
func Observe(ctx context.Context, name string, reg *Registry, fn func(ctx context.Context) error, opts ...Option) (err error) {
	octx, obs := Start(ctx, name, reg, opts...)
	defer func() {
		if r := recover(); r != nil {
			obs.Error(fmt.Errorf("panic: %v", r))
			obs.Stop()
			panic(r)
		}
		if err != nil {
			obs.Error(err)
		}
		obs.Stop()
	}()
	return fn(octx)
}

type observation struct {
	mu       sync.Mutex
	reg      *Registry
	ctx      *Context
	handlers []Handler
	stopped  bool
}

func (o *observation) Context() *Context { return o.ctx }
func (o *observation) IsNoop() bool      { return false }

func (o *observation) ContextualName(name string) Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx.contextualName = name
	return o
}

func (o *observation) LowCardinalityKeyValue(key, value string) Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx.AddLowCardinalityKeyValue(KV(key, value))
	return o
}

func (o *observation) HighCardinalityKeyValue(key, value string) Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx.AddHighCardinalityKeyValue(KV(key, value))
	return o
}

func (o *observation) Event(e Event) Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return o
	}
	for _, h := range o.handlers {
		if h.Supports(o.ctx) {
			h.OnEvent(e, o.ctx)
		}
	}
	return o
}

func (o *observation) Error(err error) Observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return o
	}
	o.ctx.err = err
	for _, h := range o.handlers {
		if h.Supports(o.ctx) {
			h.OnError(o.ctx)
		}
	}
	return o
}

func (o *observation) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	o.stopped = true
	o.ctx.duration = time.Since(o.ctx.startTime)

	conv := o.ctx.convention
	if conv == nil {
		conv = o.reg.conventionFor(o.ctx)
	}
	applyConvention(conv, o.ctx)

	for _, f := range o.reg.filterSnapshot() {
		f(o.ctx)
	}
	for _, h := range o.handlers {
		if h.Supports(o.ctx) {
			h.OnStop(o.ctx)
		}
	}
}

// Package observationtest provides a recording registry for asserting on
// observations in unit tests.
package observationtest

import (
	"sync"

	"github.com/jt828/observation/pkg/observation"
)

// Registry is an observation.Registry that records every lifecycle call.
// Register production handlers on it as usual; the recorder always runs.
//
//	reg := observationtest.NewRegistry()
//	svc := NewService(reg.Registry)
//	svc.Do(ctx)
//	c := reg.Finished("user.create")
//	require.NotNil(t, c)
//	assert.Equal(t, "internal", keyValue(c, "user.type"))
type Registry struct {
	*observation.Registry

	rec *recorder
}

func NewRegistry() *Registry {
	reg := observation.NewRegistry()
	rec := newRecorder()
	reg.RegisterHandler(rec)
	return &Registry{Registry: reg, rec: rec}
}

// Started returns the contexts of every observation started so far, in
// start order.
func (r *Registry) Started() []*observation.Context { return r.rec.started() }

// Stopped returns the contexts of every observation stopped so far, in
// stop order.
func (r *Registry) Stopped() []*observation.Context { return r.rec.stopped() }

// Finished returns the context of the first stopped observation with the
// given name, or nil.
func (r *Registry) Finished(name string) *observation.Context {
	for _, c := range r.rec.stopped() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Events returns every event recorded for the named observation.
func (r *Registry) Events(name string) []observation.Event {
	return r.rec.eventsFor(name)
}

func (r *Registry) Reset() { r.rec.reset() }

type recorder struct {
	mu     sync.Mutex
	starts []*observation.Context
	stops  []*observation.Context
	events map[string][]observation.Event
}

func newRecorder() *recorder {
	return &recorder{events: make(map[string][]observation.Event)}
}

func (r *recorder) Supports(c *observation.Context) bool { return true }

func (r *recorder) OnStart(c *observation.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, c)
}

func (r *recorder) OnEvent(e observation.Event, c *observation.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[c.Name()] = append(r.events[c.Name()], e)
}

func (r *recorder) OnError(c *observation.Context) {}

func (r *recorder) OnStop(c *observation.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = append(r.stops, c)
}

func (r *recorder) started() []*observation.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*observation.Context, len(r.starts))
	copy(out, r.starts)
	return out
}

func (r *recorder) stopped() []*observation.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*observation.Context, len(r.stops))
	copy(out, r.stops)
	return out
}

func (r *recorder) eventsFor(name string) []observation.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]observation.Event, len(r.events[name]))
	copy(out, r.events[name])
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = nil
	r.stops = nil
	r.events = make(map[string][]observation.Event)
}

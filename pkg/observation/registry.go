package observation

import "sync"

// Predicate decides whether an observation should run at all. If any
// registered predicate returns false the observation is a no-op and no
// handler ever sees it.
type Predicate func(name string, c *Context) bool

// Filter mutates the context right before OnStop handlers fire, e.g. to
// scrub a key-value or stamp a deployment-wide one.
type Filter func(c *Context)

// Registry holds the handlers, predicates, filters and conventions shared
// by the observations created against it. All methods are safe for
// concurrent use; registration usually happens once at startup.
type Registry struct {
	mu          sync.RWMutex
	handlers    []Handler
	predicates  []Predicate
	filters     []Filter
	conventions []Convention
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterHandler(h Handler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

func (r *Registry) RegisterPredicate(p Predicate) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates = append(r.predicates, p)
}

func (r *Registry) RegisterFilter(f Filter) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, f)
}

func (r *Registry) RegisterConvention(c Convention) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conventions = append(r.conventions, c)
}

func (r *Registry) accepts(name string, c *Context) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.predicates {
		if !p(name, c) {
			return false
		}
	}
	return true
}

// handlerSnapshot pins the handler set for the lifetime of one
// observation, so late registrations cannot see half a lifecycle.
func (r *Registry) handlerSnapshot() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.handlers) == 0 {
		return nil
	}
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

func (r *Registry) filterSnapshot() []Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.filters) == 0 {
		return nil
	}
	out := make([]Filter, len(r.filters))
	copy(out, r.filters)
	return out
}

// conventionFor returns the first registered convention that supports the
// context, or nil.
func (r *Registry) conventionFor(c *Context) Convention {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, conv := range r.conventions {
		if conv.Supports(c) {
			return conv
		}
	}
	return nil
}

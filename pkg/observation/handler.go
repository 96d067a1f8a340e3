package observation

// Handler receives lifecycle callbacks from observations created on a
// Registry. Supports is consulted before every callback with the current
// context, so a handler can restrict itself to the observations it
// understands.
//
// Handlers run inline on the observed goroutine in registration order;
// keep them cheap.
type Handler interface {
	Supports(c *Context) bool
	OnStart(c *Context)
	OnEvent(e Event, c *Context)
	OnError(c *Context)
	OnStop(c *Context)
}

// -------------------- FirstMatchingHandler --------------------

// FirstMatchingHandler delegates each callback to the first sub-handler
// whose Supports returns true.
type FirstMatchingHandler struct {
	handlers []Handler
}

func NewFirstMatchingHandler(handlers ...Handler) *FirstMatchingHandler {
	return &FirstMatchingHandler{handlers: handlers}
}

func (h *FirstMatchingHandler) first(c *Context) Handler {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			return sub
		}
	}
	return nil
}

func (h *FirstMatchingHandler) Supports(c *Context) bool {
	return h.first(c) != nil
}

func (h *FirstMatchingHandler) OnStart(c *Context) {
	if sub := h.first(c); sub != nil {
		sub.OnStart(c)
	}
}

func (h *FirstMatchingHandler) OnEvent(e Event, c *Context) {
	if sub := h.first(c); sub != nil {
		sub.OnEvent(e, c)
	}
}

func (h *FirstMatchingHandler) OnError(c *Context) {
	if sub := h.first(c); sub != nil {
		sub.OnError(c)
	}
}

func (h *FirstMatchingHandler) OnStop(c *Context) {
	if sub := h.first(c); sub != nil {
		sub.OnStop(c)
	}
}

// -------------------- AllMatchingHandler --------------------

// AllMatchingHandler delegates each callback to every sub-handler whose
// Supports returns true.
type AllMatchingHandler struct {
	handlers []Handler
}

func NewAllMatchingHandler(handlers ...Handler) *AllMatchingHandler {
	return &AllMatchingHandler{handlers: handlers}
}

func (h *AllMatchingHandler) Supports(c *Context) bool {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			return true
		}
	}
	return false
}

func (h *AllMatchingHandler) OnStart(c *Context) {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			sub.OnStart(c)
		}
	}
}

func (h *AllMatchingHandler) OnEvent(e Event, c *Context) {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			sub.OnEvent(e, c)
		}
	}
}

func (h *AllMatchingHandler) OnError(c *Context) {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			sub.OnError(c)
		}
	}
}

func (h *AllMatchingHandler) OnStop(c *Context) {
	for _, sub := range h.handlers {
		if sub.Supports(c) {
			sub.OnStop(c)
		}
	}
}

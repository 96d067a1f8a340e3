package observation

// noop discards every call with zero side effects.
type noop struct{}

// Noop returns the shared no-op observation.
func Noop() Observation { return noop{} }

func (noop) Context() *Context                               { return &Context{} }
func (noop) ContextualName(string) Observation               { return noop{} }
func (noop) LowCardinalityKeyValue(_, _ string) Observation  { return noop{} }
func (noop) HighCardinalityKeyValue(_, _ string) Observation { return noop{} }
func (noop) Event(Event) Observation                         { return noop{} }
func (noop) Error(error) Observation                         { return noop{} }
func (noop) Stop()                                           {}
func (noop) IsNoop() bool                                    { return true }

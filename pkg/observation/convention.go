package observation

// Convention derives names and key-values from an observation context, so
// that every observation of one kind reports uniformly regardless of call
// site. A convention registered on the Registry applies to every
// observation it Supports; a convention passed via WithConvention applies
// unconditionally and wins over registry conventions.
//
// Name and ContextualName may return "" to leave the current value alone.
// Conventions are resolved when the observation stops, so they see the
// fully populated context.
type Convention interface {
	Supports(c *Context) bool
	Name() string
	ContextualName(c *Context) string
	LowCardinalityKeyValues(c *Context) []KeyValue
	HighCardinalityKeyValues(c *Context) []KeyValue
}

// DefaultConvention is a convenient base for conventions that only
// override part of the interface. The zero value supports everything and
// changes nothing.
type DefaultConvention struct{}

func (DefaultConvention) Supports(*Context) bool                       { return true }
func (DefaultConvention) Name() string                                 { return "" }
func (DefaultConvention) ContextualName(*Context) string               { return "" }
func (DefaultConvention) LowCardinalityKeyValues(*Context) []KeyValue  { return nil }
func (DefaultConvention) HighCardinalityKeyValues(*Context) []KeyValue { return nil }

func applyConvention(conv Convention, c *Context) {
	if conv == nil {
		return
	}
	if n := conv.Name(); n != "" {
		c.name = n
	}
	if cn := conv.ContextualName(c); cn != "" {
		c.contextualName = cn
	}
	for _, kv := range conv.LowCardinalityKeyValues(c) {
		c.AddLowCardinalityKeyValue(kv)
	}
	for _, kv := range conv.HighCardinalityKeyValues(c) {
		c.AddHighCardinalityKeyValue(kv)
	}
}

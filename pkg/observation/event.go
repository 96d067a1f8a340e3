package observation

// Event is a named point-in-time annotation recorded on a running
// observation, e.g. a retry attempt or a cache miss.
type Event struct {
	Name           string
	ContextualName string
}

func NewEvent(name string) Event {
	return Event{Name: name}
}

func (e Event) String() string {
	if e.ContextualName != "" {
		return e.ContextualName
	}
	return e.Name
}

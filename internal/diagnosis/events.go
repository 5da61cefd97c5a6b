package diagnosis

// Event describes one served prediction.
type Event struct {
	Name   string
	Kind   Kind
	Label  Label
	Fields map[string]any
}

// EventPublisher receives events from the service. Implementations should be
// lightweight and non-blocking. A panicking Publish is recovered and ignored.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

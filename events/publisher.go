package events

// Publisher is an interface for async events.
type Publisher interface {
	Publish(e Event)
	Reconnect() bool
}

// ConfirmedPublisher is a Publisher that can also block until the queue acknowledges
// an event, for callers that must not lose messages. Close flushes anything still
// buffered from the async path.
type ConfirmedPublisher interface {
	Publisher
	PublishConfirm(e Event) error
	Close() error
}

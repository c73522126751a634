package kafka

import (
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/events"
)

// FakeAsyncProducer is an events.ConfirmedPublisher implementation that records
// published events instead of sending them anywhere.
type FakeAsyncProducer struct {
	logger *zap.Logger
	// Published collects every event handed to Publish or PublishConfirm, in order.
	Published []events.Event
	// Err, when set, makes PublishConfirm report failed delivery without recording
	// the event.
	Err error
}

var _ events.ConfirmedPublisher = (*FakeAsyncProducer)(nil)

// NewFakeAsyncProducer returns a recording Kafka events.Publisher implementation.
func NewFakeAsyncProducer(logger *zap.Logger) *FakeAsyncProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("using fakeasyncproducer")
	return &FakeAsyncProducer{logger: logger}
}

// Publish implements the events.Publisher interface.
func (fake *FakeAsyncProducer) Publish(e events.Event) {
	fake.Published = append(fake.Published, e)
}

// PublishConfirm implements the events.ConfirmedPublisher interface.
func (fake *FakeAsyncProducer) PublishConfirm(e events.Event) error {
	if fake.Err != nil {
		return fake.Err
	}
	fake.Published = append(fake.Published, e)
	return nil
}

// Reconnect implements the events.Publisher interface.
func (fake *FakeAsyncProducer) Reconnect() bool {
	return false
}

// Close implements the events.ConfirmedPublisher interface.
func (fake *FakeAsyncProducer) Close() error {
	return nil
}

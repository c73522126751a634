package kafka

import (
	"sync"
	"sync/atomic"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/events"
)

const defaultTopic = "glpi-event"

// AsyncProducer is an events.ConfirmedPublisher implementation for Kafka queues.
type AsyncProducer struct {
	producer       sarama.AsyncProducer
	logger         *zap.Logger
	topic          string
	reconnect      atomic.Bool
	wg             sync.WaitGroup
	successActions []string
	failureActions []string
}

var _ events.ConfirmedPublisher = (*AsyncProducer)(nil)

// Publish implements the events.Publisher interface. Delivery is fire and forget;
// failures surface on the logger only.
func (ap *AsyncProducer) Publish(e events.Event) {
	if !ap.shouldPublish(e) {
		return
	}

	msg := sarama.ProducerMessage{
		Topic: ap.topic,
		Value: sarama.ByteEncoder(e.Yield()),
	}

	ap.producer.Input() <- &msg
}

// PublishConfirm publishes e and blocks until the brokers acknowledge the message or
// its delivery fails. The action filters apply to Publish only; a caller asking for
// confirmation always publishes.
func (ap *AsyncProducer) PublishConfirm(e events.Event) error {
	done := make(chan error, 1)
	msg := sarama.ProducerMessage{
		Topic:    ap.topic,
		Value:    sarama.ByteEncoder(e.Yield()),
		Metadata: done,
	}

	ap.producer.Input() <- &msg
	return <-done
}

func (ap *AsyncProducer) shouldPublish(e events.Event) bool {
	actions := ap.successActions
	if !e.IsSuccessful() {
		actions = ap.failureActions
	}
	return stringInSlice("*", actions) || stringInSlice(e.EventAction(), actions)
}

func stringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// Reconnect implements the events.Publisher interface.
func (ap *AsyncProducer) Reconnect() bool {
	return ap.reconnect.Load()
}

// Close flushes buffered messages and waits for the delivery goroutines to drain.
func (ap *AsyncProducer) Close() error {
	ap.producer.AsyncClose()
	ap.wg.Wait()
	return nil
}

// Opt sets an option on an AsyncProducer.
type Opt func(*AsyncProducer)

// WithLogger sets a custom logger on an AsyncProducer.
func WithLogger(logger *zap.Logger) Opt {
	return func(ap *AsyncProducer) {
		ap.logger = logger
	}
}

// WithTopic sets the topic events are published to.
func WithTopic(topic string) Opt {
	return func(ap *AsyncProducer) {
		if topic != "" {
			ap.topic = topic
		}
	}
}

// WithPublishActions sets success and failure actions that should be published on an
// AsyncProducer. Empty slices keep the default of publishing everything.
func WithPublishActions(successActions []string, failureActions []string) Opt {
	return func(ap *AsyncProducer) {
		if len(successActions) > 0 {
			ap.successActions = successActions
		}
		if len(failureActions) > 0 {
			ap.failureActions = failureActions
		}
	}
}

// NewAsyncProducer constructs an AsyncProducer with internal defaults and supplied options.
func NewAsyncProducer(brokerList []string, opts ...Opt) (*AsyncProducer, error) {
	conf := sarama.NewConfig()
	// Successes must flow back so PublishConfirm can correlate acknowledgements.
	conf.Producer.Return.Successes = true

	producer, err := sarama.NewAsyncProducer(brokerList, conf)
	if err != nil {
		return nil, err
	}
	ap := AsyncProducer{producer: producer}
	defaults(&ap)
	for _, opt := range opts {
		opt(&ap)
	}
	ap.start()

	return &ap, nil
}

func defaults(ap *AsyncProducer) {
	ap.logger = zap.NewNop()
	ap.topic = defaultTopic
	ap.successActions = []string{"*"}
	ap.failureActions = []string{"*"}
}

// start drains the producer's feedback channels. Messages published through
// PublishConfirm carry their result channel as metadata and are answered here;
// fire-and-forget messages have nil metadata.
func (ap *AsyncProducer) start() {
	ap.wg.Add(2)
	go func() {
		defer ap.wg.Done()
		for msg := range ap.producer.Successes() {
			if done, ok := msg.Metadata.(chan error); ok {
				done <- nil
			}
		}
	}()
	go func() {
		defer ap.wg.Done()
		defer ap.reconnect.Store(true)
		for err := range ap.producer.Errors() {
			ap.logger.Error("kafka produce error", zap.Error(err))
			if requiresReconnect(err) {
				ap.reconnect.Store(true)
			}
			if done, ok := err.Msg.Metadata.(chan error); ok {
				done <- err.Err
			}
		}
	}()
}

func requiresReconnect(err error) bool {
	// ProducerError is the type of error generated when the producer fails to deliver
	// a message. It contains the original ProducerMessage as well as the actual error.
	pe, ok := err.(*sarama.ProducerError)
	if !ok {
		return false
	}

	if v, ok := pe.Err.(sarama.KError); ok {
		switch v {
		case sarama.ErrUnknown,
			sarama.ErrClosedClient,
			sarama.ErrInvalidMessage,
			sarama.ErrUnknownTopicOrPartition,
			sarama.ErrInvalidMessageSize,
			sarama.ErrLeaderNotAvailable,
			sarama.ErrNotLeaderForPartition,
			sarama.ErrBrokerNotAvailable,
			sarama.ErrMessageSizeTooLarge,
			sarama.ErrNetworkException,
			sarama.ErrInvalidTopic,
			sarama.ErrMessageSetSizeTooLarge,
			sarama.ErrNotEnoughReplicas,
			sarama.ErrNotEnoughReplicasAfterAppend,
			sarama.ErrInvalidRequiredAcks,
			sarama.ErrTopicAuthorizationFailed,
			sarama.ErrClusterAuthorizationFailed,
			sarama.ErrUnsupportedSASLMechanism,
			sarama.ErrIllegalSASLState,
			sarama.ErrUnsupportedVersion:
			return true
		case sarama.ErrRequestTimedOut,
			sarama.ErrReplicaNotAvailable,
			sarama.ErrNoError:
			return false
		}
	}

	return false
}

package kafka

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceloslacerda/glpigo/events"
)

func testProducer(opts ...Opt) *AsyncProducer {
	ap := &AsyncProducer{}
	defaults(ap)
	for _, opt := range opts {
		opt(ap)
	}
	return ap
}

func TestShouldPublishDefaultsToEverything(t *testing.T) {
	ap := testProducer()

	assert.True(t, ap.shouldPublish(events.Notification{}))
	assert.True(t, ap.shouldPublish(events.Notification{Failed: true}))
	assert.True(t, ap.shouldPublish(events.ItemChange{Action: "update"}))
}

func TestShouldPublishFiltersOnAction(t *testing.T) {
	ap := testProducer(WithPublishActions(
		[]string{"notification.send"},
		[]string{"*"},
	))

	assert.True(t, ap.shouldPublish(events.Notification{}))
	assert.False(t, ap.shouldPublish(events.ItemChange{Action: "update"}))
	// failures still publish everything
	assert.True(t, ap.shouldPublish(events.ItemChange{Action: "update", Failed: true}))
}

func TestWithTopicAndEmptyActionsKeepDefaults(t *testing.T) {
	ap := testProducer(WithTopic(""), WithPublishActions(nil, nil))

	assert.Equal(t, defaultTopic, ap.topic)
	assert.Equal(t, []string{"*"}, ap.successActions)

	WithTopic("glpi-test")(ap)
	assert.Equal(t, "glpi-test", ap.topic)
}

func TestNotificationYield(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := events.Notification{
		ID:         7,
		ItemType:   "Ticket",
		ItemsID:    12,
		Recipient:  "tech@example.com",
		Subject:    "[GLPI] New ticket",
		Mode:       "mailing",
		CreateTime: created,
	}

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(n.Yield(), &decoded))
	assert.Equal(t, float64(7), decoded["id"])
	assert.Equal(t, "Ticket", decoded["itemtype"])
	assert.Equal(t, "tech@example.com", decoded["recipient"])
	assert.Equal(t, "notification.send", n.EventAction())
	assert.True(t, n.IsSuccessful())
}

func TestFakeAsyncProducerRecords(t *testing.T) {
	fake := NewFakeAsyncProducer(nil)

	fake.Publish(events.Notification{ID: 1})
	fake.Publish(events.Notification{ID: 2})

	require.Len(t, fake.Published, 2)
	assert.False(t, fake.Reconnect())
}

func TestFakeAsyncProducerConfirm(t *testing.T) {
	fake := NewFakeAsyncProducer(nil)

	require.NoError(t, fake.PublishConfirm(events.Notification{ID: 1}))
	require.Len(t, fake.Published, 1)

	fake.Err = errors.New("broker unreachable")
	require.Error(t, fake.PublishConfirm(events.Notification{ID: 2}))
	// failed deliveries are not recorded
	require.Len(t, fake.Published, 1)
}

// mockProducer wires an AsyncProducer around the sarama mock so the confirm flow can
// run without a broker.
func mockProducer(t *testing.T) (*AsyncProducer, *mocks.AsyncProducer) {
	t.Helper()
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true
	mock := mocks.NewAsyncProducer(t, conf)

	ap := &AsyncProducer{producer: mock}
	defaults(ap)
	ap.start()
	return ap, mock
}

func TestPublishConfirmAcknowledged(t *testing.T) {
	ap, mock := mockProducer(t)
	mock.ExpectInputAndSucceed()

	require.NoError(t, ap.PublishConfirm(events.Notification{ID: 7}))
	require.NoError(t, ap.Close())
}

func TestPublishConfirmFailedDelivery(t *testing.T) {
	ap, mock := mockProducer(t)
	brokerErr := errors.New("leader not available")
	mock.ExpectInputAndFail(brokerErr)

	err := ap.PublishConfirm(events.Notification{ID: 7})
	require.Error(t, err)
	assert.Equal(t, brokerErr, err)

	require.NoError(t, ap.Close())
	// the feedback channels are closed once Close returns
	assert.True(t, ap.Reconnect())
}

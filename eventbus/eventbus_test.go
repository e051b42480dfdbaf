package eventbus

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/events"
)

type captureBus struct {
	topic  string
	events []Event
}

func (c *captureBus) Publish(ctx context.Context, topic string, event Event) error {
	c.topic = topic
	c.events = append(c.events, event)
	return nil
}

func (c *captureBus) Close() {}

func TestNewJSONEventGeneratesID(t *testing.T) {
	evt, err := NewJSONEvent("", "test", "k1", map[string]int{"n": 3})
	require.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "k1", evt.Key)
	assert.JSONEq(t, `{"n":3}`, string(evt.Payload))

	_, err = NewJSONEvent("", "test", "k1", make(chan int))
	assert.Error(t, err)
}

func TestPublishDomainEvent(t *testing.T) {
	bus := &captureBus{}
	userID := primitive.NewObjectID()
	domainEvent := events.UserDeletedEvent{
		BaseEvent:        events.NewBaseEvent(events.UserDeleted),
		UserID:           userID,
		DeletedSummaries: 4,
	}

	err := PublishDomainEvent(context.Background(), bus, DefaultTopic, userID.Hex(), domainEvent)
	require.NoError(t, err)
	require.Len(t, bus.events, 1)
	assert.Equal(t, DefaultTopic, bus.topic)
	assert.Equal(t, domainEvent.ID, bus.events[0].ID)
	assert.Equal(t, string(events.UserDeleted), bus.events[0].Type)
	assert.Equal(t, userID.Hex(), bus.events[0].Key)

	var decoded events.UserDeletedEvent
	require.NoError(t, json.Unmarshal(bus.events[0].Payload, &decoded))
	assert.Equal(t, int64(4), decoded.DeletedSummaries)
	assert.Equal(t, userID, decoded.UserID)
}

func TestPublishDomainEventRejectsUnknownEvent(t *testing.T) {
	bus := &captureBus{}
	err := PublishDomainEvent(context.Background(), bus, DefaultTopic, "k", map[string]string{"type": "x"})
	assert.Error(t, err)
	assert.Empty(t, bus.events)
}

func TestNoopBus(t *testing.T) {
	var bus Publisher = NoopBus{}
	assert.NoError(t, bus.Publish(context.Background(), DefaultTopic, Event{}))
	bus.Close()
}

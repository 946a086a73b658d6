package eventbus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful-chat/events"
)

type recordingBus struct {
	topics []string
	events []Event
}

func (b *recordingBus) Publish(ctx context.Context, topic string, event Event) error {
	b.topics = append(b.topics, topic)
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Close() {}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "mindful-chat.chat.events", TopicChatEvents.Base())
	assert.Equal(t, "mindful-chat.chat.events.dlq", TopicChatEvents.DLQ())
}

func TestTopicSpecs(t *testing.T) {
	specs := topicSpecs(TopicChatEvents, 0)

	require.Len(t, specs, 2)
	assert.Equal(t, TopicChatEvents.Base(), specs[0].Topic)
	assert.Equal(t, 1, specs[0].NumPartitions)
	assert.Equal(t, TopicChatEvents.DLQ(), specs[1].Topic)
}

func TestNewJSONEventGeneratesID(t *testing.T) {
	evt, err := NewJSONEvent("", "test.event", map[string]string{"k": "v"})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "test.event", evt.Type)
	assert.JSONEq(t, `{"k":"v"}`, string(evt.Payload))
}

func TestTurnPublisher(t *testing.T) {
	bus := &recordingBus{}
	p := NewTurnPublisher(bus, TopicChatEvents)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	turn := events.NewChatTurnCompleted(events.ChatTurnCompletedEvent{
		SessionID:          "s1",
		UserMessageID:      "u1",
		AssistantMessageID: "a1",
		Tier:               "matched",
	}, now)
	require.NoError(t, p.PublishTurnCompleted(context.Background(), turn))

	require.Len(t, bus.events, 1)
	assert.Equal(t, TopicChatEvents.Base(), bus.topics[0])
	assert.Equal(t, "a1", bus.events[0].ID)
	assert.Equal(t, string(events.ChatTurnCompleted), bus.events[0].Type)

	var decoded events.ChatTurnCompletedEvent
	require.NoError(t, json.Unmarshal(bus.events[0].Payload, &decoded))
	assert.Equal(t, "s1", decoded.SessionID)
	assert.Equal(t, "matched", decoded.Tier)
	assert.True(t, now.Equal(decoded.Timestamp))
}

func TestNopEventBus(t *testing.T) {
	p := NewTurnPublisher(nil, TopicChatEvents)
	assert.NoError(t, p.PublishTurnCompleted(context.Background(), events.ChatTurnCompletedEvent{}))
}

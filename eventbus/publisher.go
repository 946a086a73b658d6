package eventbus

import (
	"context"

	"mindful-chat/events"
)

// TurnPublisher 는 완료된 대화 턴을 채팅 이벤트 토픽으로 보낸다.
type TurnPublisher struct {
	bus   EventBus
	topic Topic
}

func NewTurnPublisher(bus EventBus, topic Topic) *TurnPublisher {
	if bus == nil {
		bus = NopEventBus{}
	}
	return &TurnPublisher{bus: bus, topic: topic}
}

func (p *TurnPublisher) PublishTurnCompleted(ctx context.Context, evt events.ChatTurnCompletedEvent) error {
	msg, err := NewJSONEvent(evt.ID, string(evt.Type), evt)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, p.topic.Base(), msg)
}

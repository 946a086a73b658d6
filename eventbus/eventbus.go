package eventbus

import (
	"context"
	"encoding/json"
)

// Topic 은 기본 토픽 이름과 DLQ 토픽 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ는 DLQ 토픽 이름을 반환합니다 (예: mindful-chat.chat.events.dlq).
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	LastError string          `json:"last_error,omitempty"`
}

// EventBus 는 이벤트 발행의 추상화입니다. 채팅 서버는 발행만 하고 구독은 하지 않습니다.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NopEventBus 는 Kafka 가 설정되지 않은 환경에서 사용하는 빈 구현입니다.
type NopEventBus struct{}

func (NopEventBus) Publish(ctx context.Context, topic string, event Event) error { return nil }
func (NopEventBus) Close()                                                       {}

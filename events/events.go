package events

import (
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	ChatTurnCompleted EventType = "chat.turn_completed"
)

const (
	SourceAPI    = "api"
	EventVersion = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// ChatTurnCompletedEvent 사용자 메시지와 답변이 모두 저장된 뒤 발행되는 이벤트
//
// 본문 대신 길이만 싣는다. 대화 내용은 messages 컬렉션에만 남긴다.
type ChatTurnCompletedEvent struct {
	BaseEvent
	SessionID          string `json:"session_id"`
	UserMessageID      string `json:"user_message_id"`
	AssistantMessageID string `json:"assistant_message_id"`
	Tier               string `json:"tier"`
	NewSession         bool   `json:"new_session"`
	UserChars          int    `json:"user_chars"`
	ReplyChars         int    `json:"reply_chars"`
}

// NewChatTurnCompleted 는 BaseEvent 를 채운 이벤트를 만든다. ID 는 어시스턴트 메시지 ID 를 쓴다.
func NewChatTurnCompleted(e ChatTurnCompletedEvent, at time.Time) ChatTurnCompletedEvent {
	e.BaseEvent = BaseEvent{
		ID:        e.AssistantMessageID,
		Type:      ChatTurnCompleted,
		Timestamp: at,
		Source:    SourceAPI,
		Version:   EventVersion,
	}
	return e
}

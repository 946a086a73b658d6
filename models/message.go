package models

import "time"

// Role 는 메시지 발화자이다. user 또는 assistant 중 하나만 허용한다.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one immutable entry of a session log
// Collection: messages
//
// ID 는 UUIDv7 이라 같은 timestamp(ms) 안에서도 생성 순서대로 정렬된다.
type Message struct {
	ID        string    `bson:"_id" json:"id"`
	SessionID string    `bson:"session_id" json:"session_id"`
	Role      Role      `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

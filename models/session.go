package models

import "time"

const (
	DefaultSessionTitle = "New Chat"
	AnonymousUserID     = "anonymous"
)

// Session is a conversation thread
// Collection: sessions
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Title     string    `bson:"title" json:"title"`
	UserID    string    `bson:"user_id" json:"user_id"`
}

package dto

import (
	"time"

	"mindful-chat/models"
)

type ChatRequestDTO struct {
	Message string `json:"message" example:"I feel a bit stressed about tomorrow"`
	// SessionID 가 비어 있거나 존재하지 않는 세션이면 새 세션이 만들어진다.
	SessionID string `json:"session_id,omitempty" example:"4f7c2a8e-7d0b-4d55-9d0c-0c5f3c8d2a11"`
}

type ChatResponseDTO struct {
	Message   string    `json:"message"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageDTO is one entry of a session history.
type MessageDTO struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role" example:"assistant"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessageDTO(m models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

type SessionDTO struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `json:"title" example:"New Chat"`
	UserID    string    `json:"user_id" example:"anonymous"`
}

func NewSessionDTO(s models.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Title:     s.Title,
		UserID:    s.UserID,
	}
}

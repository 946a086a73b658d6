package dto

import (
	"time"

	"mindful-chat/models"
)

type StatusCheckCreateDTO struct {
	ClientName string `json:"client_name" example:"mobile-app"`
}

type StatusCheckDTO struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewStatusCheckDTO(s models.StatusCheck) StatusCheckDTO {
	return StatusCheckDTO{ID: s.ID, ClientName: s.ClientName, Timestamp: s.Timestamp}
}

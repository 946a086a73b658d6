package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NewJSONEvent 생성: payload를 JSON으로 인코딩하여 Event를 구성합니다.
// id가 빈 문자열이면 UUIDv7 을 생성합니다.
func NewJSONEvent(id, eventType string, payload any) (Event, error) {
	if id == "" {
		v7, err := uuid.NewV7()
		if err != nil {
			return Event{}, fmt.Errorf("event id 생성 실패: %w", err)
		}
		id = v7.String()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("payload marshal 실패: %w", err)
	}
	return Event{
		ID:      id,
		Type:    eventType,
		Payload: b,
	}, nil
}

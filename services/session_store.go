package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindful-chat/config"
	"mindful-chat/metrics"
	"mindful-chat/models"
)

type SessionRepository interface {
	Insert(ctx context.Context, s *models.Session) error
	Touch(ctx context.Context, id string, at time.Time) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]models.Session, error)
}

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) error
	ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Message, error)
}

// SessionStore 는 세션과 메시지 로그에 대한 유일한 진입점이다.
// 캐시 없이 매 호출마다 저장소를 조회한다.
type SessionStore struct {
	sessions  SessionRepository
	messages  MessageRepository
	opTimeout time.Duration
	now       func() time.Time
}

func NewSessionStore(sessions SessionRepository, messages MessageRepository, opTimeout time.Duration) *SessionStore {
	if opTimeout <= 0 {
		opTimeout = config.DefaultOperationTimeout
	}
	return &SessionStore{
		sessions:  sessions,
		messages:  messages,
		opTimeout: opTimeout,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// timestamp 는 BSON datetime 정밀도(ms)에 맞춘 현재 시각이다.
func (s *SessionStore) timestamp() time.Time {
	return s.now().Truncate(time.Millisecond)
}

// ResolveOrCreate 는 sessionID 가 가리키는 세션의 updated_at 을 갱신하고 그 id 를 돌려준다.
// sessionID 가 비었거나 저장소에 없으면 새 id 로 세션을 만들고 created 를 true 로 돌려준다.
func (s *SessionStore) ResolveOrCreate(ctx context.Context, sessionID string) (id string, created bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	now := s.timestamp()
	sessionID = strings.TrimSpace(sessionID)
	if sessionID != "" {
		found, err := s.sessions.Touch(ctx, sessionID, now)
		if err != nil {
			return "", false, s.fail("touch_session", err)
		}
		if found {
			return sessionID, false, nil
		}
		config.DebugWithFields("unknown session id, creating a new session", config.Fields{"requested_session_id": sessionID})
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     models.DefaultSessionTitle,
		UserID:    models.AnonymousUserID,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return "", false, s.fail("insert_session", err)
	}
	return session.ID, true, nil
}

// AppendMessage 는 세션 로그 끝에 메시지를 추가한다.
func (s *SessionStore) AppendMessage(ctx context.Context, sessionID string, role models.Role, text string) (models.Message, error) {
	return s.append(ctx, sessionID, role, text, time.Time{})
}

// AppendReply 는 어시스턴트 메시지를 추가하되 timestamp 가 notBefore 보다 앞서지 않게 한다.
func (s *SessionStore) AppendReply(ctx context.Context, sessionID, text string, notBefore time.Time) (models.Message, error) {
	return s.append(ctx, sessionID, models.RoleAssistant, text, notBefore)
}

func (s *SessionStore) append(ctx context.Context, sessionID string, role models.Role, text string, notBefore time.Time) (models.Message, error) {
	if !role.Valid() {
		return models.Message{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if sessionID == "" {
		return models.Message{}, fmt.Errorf("%w: session id is required", ErrValidation)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Message{}, fmt.Errorf("generate message id: %w", err)
	}
	ts := s.timestamp()
	if ts.Before(notBefore) {
		ts = notBefore
	}

	msg := models.Message{
		ID:        id.String(),
		SessionID: sessionID,
		Role:      role,
		Content:   text,
		Timestamp: ts,
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.messages.Insert(ctx, &msg); err != nil {
		return models.Message{}, s.fail("insert_message", err)
	}
	return msg, nil
}

// RecentContext 는 세션의 최근 limit 개 메시지를 오래된 순으로 돌려준다.
func (s *SessionStore) RecentContext(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = config.DefaultContextLimit
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	msgs, err := s.messages.ListRecent(ctx, sessionID, limit)
	if err != nil {
		return nil, s.fail("recent_context", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// History 는 세션의 전체 메시지 로그다. 모르는 세션이면 빈 슬라이스다.
func (s *SessionStore) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	msgs, err := s.messages.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, s.fail("history", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// ListSessions returns up to limit sessions, most recently updated first.
// limit is capped at config.DefaultSessionListLimit.
func (s *SessionStore) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 || limit > config.DefaultSessionListLimit {
		limit = config.DefaultSessionListLimit
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	sessions, err := s.sessions.ListRecent(ctx, limit)
	if err != nil {
		return nil, s.fail("list_sessions", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, nil
}

// fail 은 저장소 오류를 ErrPersistence 로 감싼다. 요청 취소는 그대로 전달한다.
func (s *SessionStore) fail(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.PersistenceErrorsTotal.WithLabelValues(op).Inc()
	config.ErrorWithFields("session store operation failed", config.Fields{"operation": op, "error": err.Error()})
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

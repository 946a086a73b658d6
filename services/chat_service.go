package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"mindful-chat/config"
	"mindful-chat/dto"
	"mindful-chat/events"
	"mindful-chat/metrics"
	"mindful-chat/models"
	"mindful-chat/responder"
)

const publishTimeout = 5 * time.Second

// ReplyGenerator 는 응답 체인이다. *responder.Responder 가 구현한다.
type ReplyGenerator interface {
	Generate(ctx context.Context, sessionID, text string, history []models.Message) (responder.Reply, error)
}

// TurnPublisher 는 완료된 턴을 외부로 알린다. 실패해도 턴 결과에는 영향이 없다.
type TurnPublisher interface {
	PublishTurnCompleted(ctx context.Context, evt events.ChatTurnCompletedEvent) error
}

type ChatService struct {
	store            *SessionStore
	replies          ReplyGenerator
	publisher        TurnPublisher
	contextLimit     int
	sessionListLimit int
}

type ChatServiceOptions struct {
	ContextLimit     int
	SessionListLimit int
	// Publisher 가 nil 이면 턴 이벤트를 발행하지 않는다.
	Publisher TurnPublisher
}

func NewChatService(store *SessionStore, replies ReplyGenerator, opts ChatServiceOptions) *ChatService {
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = config.DefaultContextLimit
	}
	if opts.SessionListLimit <= 0 || opts.SessionListLimit > config.DefaultSessionListLimit {
		opts.SessionListLimit = config.DefaultSessionListLimit
	}
	return &ChatService{
		store:            store,
		replies:          replies,
		publisher:        opts.Publisher,
		contextLimit:     opts.ContextLimit,
		sessionListLimit: opts.SessionListLimit,
	}
}

// HandleMessage 는 한 턴을 처리한다.
// 사용자 메시지는 답변 생성 전에 저장되며, 이후 단계가 실패해도 되돌리지 않는다.
func (s *ChatService) HandleMessage(ctx context.Context, in dto.ChatRequestDTO) (dto.ChatResponseDTO, *ServiceError) {
	if strings.TrimSpace(in.Message) == "" {
		return dto.ChatResponseDTO{}, validationError("message must not be empty")
	}

	sessionID, created, err := s.store.ResolveOrCreate(ctx, in.SessionID)
	if err != nil {
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	userMsg, err := s.store.AppendMessage(ctx, sessionID, models.RoleUser, in.Message)
	if err != nil {
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	history, err := s.store.RecentContext(ctx, sessionID, s.contextLimit)
	if err != nil {
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	reply, err := s.replies.Generate(ctx, sessionID, in.Message, history)
	if err != nil {
		config.ErrorWithFields("reply generation failed", config.Fields{"session_id": sessionID, "error": err.Error()})
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	// 클라이언트가 이미 떠났으면 답변을 버린다. 사용자 메시지는 남는다.
	if err := ctx.Err(); err != nil {
		config.InfoWithFields("client went away, reply abandoned", config.Fields{"session_id": sessionID, "tier": string(reply.Tier)})
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	assistantMsg, err := s.store.AppendReply(ctx, sessionID, reply.Text, userMsg.Timestamp)
	if err != nil {
		return dto.ChatResponseDTO{}, toServiceError(err)
	}

	config.DebugWithFields("chat turn completed", config.Fields{
		"session_id":  sessionID,
		"new_session": created,
		"tier":        string(reply.Tier),
		"context_len": len(history),
	})
	s.publishTurn(ctx, events.ChatTurnCompletedEvent{
		SessionID:          sessionID,
		UserMessageID:      userMsg.ID,
		AssistantMessageID: assistantMsg.ID,
		Tier:               string(reply.Tier),
		NewSession:         created,
		UserChars:          utf8.RuneCountInString(userMsg.Content),
		ReplyChars:         utf8.RuneCountInString(assistantMsg.Content),
	}, assistantMsg.Timestamp)

	return dto.ChatResponseDTO{
		Message:   assistantMsg.Content,
		SessionID: sessionID,
		Timestamp: assistantMsg.Timestamp,
	}, nil
}

// publishTurn 은 응답을 막지 않도록 별도 고루틴에서 발행한다.
func (s *ChatService) publishTurn(ctx context.Context, evt events.ChatTurnCompletedEvent, at time.Time) {
	if s.publisher == nil {
		return
	}
	evt = events.NewChatTurnCompleted(evt, at)
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	go func() {
		defer cancel()
		if err := s.publisher.PublishTurnCompleted(pubCtx, evt); err != nil {
			metrics.EventPublishFailuresTotal.Inc()
			config.WarnWithFields("failed to publish chat turn event", config.Fields{"session_id": evt.SessionID, "error": err.Error()})
		}
	}()
}

// History 는 세션의 모든 메시지를 시간순으로 돌려준다.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]dto.MessageDTO, *ServiceError) {
	msgs, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, toServiceError(err)
	}
	out := make([]dto.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.NewMessageDTO(m))
	}
	return out, nil
}

func (s *ChatService) ListSessions(ctx context.Context) ([]dto.SessionDTO, *ServiceError) {
	sessions, err := s.store.ListSessions(ctx, s.sessionListLimit)
	if err != nil {
		return nil, toServiceError(err)
	}
	out := make([]dto.SessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, dto.NewSessionDTO(sess))
	}
	return out, nil
}

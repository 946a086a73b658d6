package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"mindful-chat/events"
	"mindful-chat/generator"
	"mindful-chat/models"
)

type memSessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]models.Session
	insertErr error
	touchErr  error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]models.Session{}}
}

func (r *memSessionRepo) Insert(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *memSessionRepo) Touch(ctx context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return false, r.touchErr
	}
	s, ok := r.sessions[id]
	if !ok {
		return false, nil
	}
	s.UpdatedAt = at
	r.sessions[id] = s
	return true, nil
}

func (r *memSessionRepo) ListRecent(ctx context.Context, limit int) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type memMessageRepo struct {
	mu        sync.Mutex
	messages  []models.Message
	insertErr error
	// failOnInsert 번째 Insert 호출부터 insertErr 를 돌려준다 (1-based, 0 이면 항상).
	failOnInsert int
	inserts      int
}

func (r *memMessageRepo) Insert(ctx context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	if r.insertErr != nil && r.inserts >= r.failOnInsert {
		return r.insertErr
	}
	r.messages = append(r.messages, *m)
	return nil
}

func (r *memMessageRepo) sorted(sessionID string) []models.Message {
	out := []models.Message{}
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memMessageRepo) ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(sessionID)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(sessionID), nil
}

func (r *memMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	history []models.Message
	calls   int
}

func (g *stubGenerator) Provider() string { return "stub" }

func (g *stubGenerator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.history = req.History
	if g.err != nil {
		return nil, g.err
	}
	return &generator.Result{Text: g.reply}, nil
}

type chanPublisher struct {
	ch  chan events.ChatTurnCompletedEvent
	err error
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{ch: make(chan events.ChatTurnCompletedEvent, 8)}
}

func (p *chanPublisher) PublishTurnCompleted(ctx context.Context, evt events.ChatTurnCompletedEvent) error {
	p.ch <- evt
	return p.err
}

type memStatusRepo struct {
	checks    []models.StatusCheck
	insertErr error
}

func (r *memStatusRepo) Insert(ctx context.Context, s *models.StatusCheck) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.checks = append([]models.StatusCheck{*s}, r.checks...)
	return nil
}

func (r *memStatusRepo) List(ctx context.Context) ([]models.StatusCheck, error) {
	return r.checks, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful-chat/dto"
	"mindful-chat/services"
)

type fakeChatService struct {
	lastReq   dto.ChatRequestDTO
	resp      dto.ChatResponseDTO
	history   []dto.MessageDTO
	sessions  []dto.SessionDTO
	svcErr    *services.ServiceError
	historyID string
}

func (f *fakeChatService) HandleMessage(ctx context.Context, in dto.ChatRequestDTO) (dto.ChatResponseDTO, *services.ServiceError) {
	f.lastReq = in
	if f.svcErr != nil {
		return dto.ChatResponseDTO{}, f.svcErr
	}
	return f.resp, nil
}

func (f *fakeChatService) History(ctx context.Context, sessionID string) ([]dto.MessageDTO, *services.ServiceError) {
	f.historyID = sessionID
	if f.svcErr != nil {
		return nil, f.svcErr
	}
	return f.history, nil
}

func (f *fakeChatService) ListSessions(ctx context.Context) ([]dto.SessionDTO, *services.ServiceError) {
	if f.svcErr != nil {
		return nil, f.svcErr
	}
	return f.sessions, nil
}

type fakeStatusService struct {
	created []dto.StatusCheckCreateDTO
	svcErr  *services.ServiceError
}

func (f *fakeStatusService) Create(ctx context.Context, in dto.StatusCheckCreateDTO) (dto.StatusCheckDTO, *services.ServiceError) {
	if f.svcErr != nil {
		return dto.StatusCheckDTO{}, f.svcErr
	}
	f.created = append(f.created, in)
	return dto.StatusCheckDTO{ID: "c1", ClientName: in.ClientName}, nil
}

func (f *fakeStatusService) List(ctx context.Context) ([]dto.StatusCheckDTO, *services.ServiceError) {
	return []dto.StatusCheckDTO{}, nil
}

func setupRouter(chat ChatService, status StatusService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/", RootHandler())
	api.POST("/chat", ChatHandler(chat))
	api.GET("/chat/history/:session_id", ChatHistoryHandler(chat))
	api.GET("/chat/sessions", ListSessionsHandler(chat))
	api.POST("/status", CreateStatusCheckHandler(status))
	api.GET("/status", ListStatusChecksHandler(status))
	return r
}

func TestChatHandler(t *testing.T) {
	ts := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	chat := &fakeChatService{resp: dto.ChatResponseDTO{Message: "reply", SessionID: "s1", Timestamp: ts}}
	r := setupRouter(chat, &fakeStatusService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello","session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ChatRequestDTO{Message: "hello", SessionID: "s1"}, chat.lastReq)

	var body dto.ChatResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "reply", body.Message)
	assert.Equal(t, "s1", body.SessionID)
	assert.True(t, ts.Equal(body.Timestamp))
}

func TestChatHandlerErrors(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		svcErr     *services.ServiceError
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed json",
			body:       `{"message":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid_request"}`,
		},
		{
			name: "validation",
			body: `{"message":"   "}`,
			svcErr: &services.ServiceError{
				StatusCode: http.StatusUnprocessableEntity,
				ErrorCode:  "validation_error",
				Detail:     "message must not be empty",
				Cause:      services.ErrValidation,
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"validation_error","detail":"message must not be empty"}`,
		},
		{
			name: "configuration",
			body: `{"message":"hi"}`,
			svcErr: &services.ServiceError{
				StatusCode: http.StatusServiceUnavailable,
				ErrorCode:  "service_unavailable",
				Cause:      errors.New("GEMINI_API_KEY environment variable is not set"),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"service_unavailable"}`,
		},
		{
			name: "persistence",
			body: `{"message":"hi"}`,
			svcErr: &services.ServiceError{
				StatusCode: http.StatusInternalServerError,
				ErrorCode:  "internal_error",
				Cause:      services.ErrPersistence,
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal_error"}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := setupRouter(&fakeChatService{svcErr: testCase.svcErr}, &fakeStatusService{})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantStatus, w.Code)
			assert.JSONEq(t, testCase.wantBody, w.Body.String())
		})
	}
}

func TestChatHistoryHandler(t *testing.T) {
	chat := &fakeChatService{history: []dto.MessageDTO{}}
	r := setupRouter(chat, &fakeStatusService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/history/unknown-session", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unknown-session", chat.historyID)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListSessionsHandler(t *testing.T) {
	chat := &fakeChatService{sessions: []dto.SessionDTO{{ID: "s2", Title: "New Chat"}, {ID: "s1", Title: "New Chat"}}}
	r := setupRouter(chat, &fakeStatusService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/sessions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.SessionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "s2", body[0].ID)
}

func TestRootAndStatusHandlers(t *testing.T) {
	status := &fakeStatusService{}
	r := setupRouter(&fakeChatService{}, status)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/status", strings.NewReader(`{"client_name":"web"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, status.created, 1)
	assert.Equal(t, "web", status.created[0].ClientName)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		ping       func(ctx context.Context) error
		wantStatus int
	}{
		{name: "up", ping: func(ctx context.Context) error { return nil }, wantStatus: http.StatusOK},
		{name: "down", ping: func(ctx context.Context) error { return errors.New("no primary") }, wantStatus: http.StatusServiceUnavailable},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", HealthHandler(testCase.ping))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, testCase.wantStatus, w.Code)
		})
	}
}

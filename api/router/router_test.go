package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful-chat/dto"
	"mindful-chat/services"
)

type stubChat struct{}

func (stubChat) HandleMessage(ctx context.Context, in dto.ChatRequestDTO) (dto.ChatResponseDTO, *services.ServiceError) {
	return dto.ChatResponseDTO{Message: "ok", SessionID: "s1"}, nil
}

func (stubChat) History(ctx context.Context, sessionID string) ([]dto.MessageDTO, *services.ServiceError) {
	return []dto.MessageDTO{}, nil
}

func (stubChat) ListSessions(ctx context.Context) ([]dto.SessionDTO, *services.ServiceError) {
	return []dto.SessionDTO{}, nil
}

type stubStatus struct{}

func (stubStatus) Create(ctx context.Context, in dto.StatusCheckCreateDTO) (dto.StatusCheckDTO, *services.ServiceError) {
	return dto.StatusCheckDTO{ID: "1", ClientName: in.ClientName}, nil
}

func (stubStatus) List(ctx context.Context) ([]dto.StatusCheckDTO, *services.ServiceError) {
	return []dto.StatusCheckDTO{}, nil
}

func newTestHandler(origins []string) http.Handler {
	gin.SetMode(gin.TestMode)
	engine := New(Deps{
		Chat:   stubChat{},
		Status: stubStatus{},
		Ping:   func(ctx context.Context) error { return nil },
	})
	return Handler(engine, origins)
}

func TestRoutes(t *testing.T) {
	h := newTestHandler([]string{"*"})

	testCases := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/health"},
		{method: http.MethodGet, path: "/metrics"},
		{method: http.MethodGet, path: "/api/"},
		{method: http.MethodGet, path: "/api/status"},
		{method: http.MethodPost, path: "/api/status", body: `{"client_name":"web"}`},
		{method: http.MethodPost, path: "/api/chat", body: `{"message":"hi"}`},
		{method: http.MethodGet, path: "/api/chat/history/s1"},
		{method: http.MethodGet, path: "/api/chat/sessions"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.method+" "+testCase.path, func(t *testing.T) {
			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(testCase.body))
			if testCase.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestCORSWildcardReflectsOrigin(t *testing.T) {
	h := newTestHandler([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h := newTestHandler([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

// Package httpclient builds the http.Client used for outbound generation backend calls.
package httpclient

import (
	"net/http"
	"time"

	"mindful-chat/config"
	"mindful-chat/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"

	defaultTimeout = 30 * time.Second
)

// Config는 HTTP 클라이언트 공통 설정을 캡슐화한다.
type Config struct {
	Timeout time.Duration
	// Transport 가 nil 이면 http.DefaultTransport 를 쓴다.
	Transport http.RoundTripper
}

// loggingRoundTripper는 모든 아웃바운드 HTTP 호출에 대해 공통 로깅과
// X-Request-Id / X-Span-Id 헤더 전파를 수행한다.
// 요청 바디는 사용자 대화 내용이라 로그에 남기지 않는다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx := req.Context()
	requestID := trace.RequestIDFromContext(ctx)
	spanID := trace.CurrentSpanID(ctx)

	// RoundTripper 는 원본 요청을 수정하면 안 된다.
	if requestID != "" {
		req = req.Clone(ctx)
		req.Header.Set(headerRequestID, requestID)
		req.Header.Set(headerSpanID, spanID)
	}

	resp, err := l.inner.RoundTrip(req)
	fields := config.Fields{
		"method":     req.Method,
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"duration":   time.Since(start).String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if err != nil {
		fields["error"] = err.Error()
		config.ErrorWithFields("httpclient request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	config.DebugWithFields("httpclient request completed", fields)
	return resp, nil
}

// New는 주어진 설정으로 http.Client를 생성한다.
// Timeout이 0이면 기본값 30초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}

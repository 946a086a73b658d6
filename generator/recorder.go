package generator

import (
	"context"
	"errors"
	"time"

	"mindful-chat/config"
	"mindful-chat/metrics"
	"mindful-chat/models"
	"mindful-chat/trace"
)

const (
	logWriteTimeout = 3 * time.Second
	excerptLimit    = 200
)

// AILogWriter stores one audit entry per generation call.
type AILogWriter interface {
	Insert(ctx context.Context, log models.AILog) error
}

// Recorder 는 모든 생성 호출의 소요 시간을 메트릭으로 남기고 ai_logs 에 기록한다.
// 기록 실패는 로그만 남기며 생성 결과에 영향을 주지 않는다.
type Recorder struct {
	next Generator
	logs AILogWriter
}

func WithRecorder(next Generator, logs AILogWriter) *Recorder {
	return &Recorder{next: next, logs: logs}
}

func (r *Recorder) Provider() string { return r.next.Provider() }

func (r *Recorder) Generate(ctx context.Context, req Request) (*Result, error) {
	requestID, spanID := trace.NextSpanID(ctx)
	start := time.Now()
	res, err := r.next.Generate(ctx, req)
	completed := time.Now()

	outcome := "success"
	switch {
	case errors.Is(err, ErrConfiguration):
		outcome = "misconfigured"
	case err != nil:
		outcome = "unavailable"
	}
	metrics.GenerationDuration.WithLabelValues(r.next.Provider(), outcome).Observe(completed.Sub(start).Seconds())

	if r.logs != nil {
		entry := models.AILog{
			SessionID:   req.SessionID,
			RequestID:   requestID,
			SpanID:      spanID,
			Provider:    r.next.Provider(),
			DurationMs:  completed.Sub(start).Milliseconds(),
			Success:     err == nil,
			InputPrompt: req.Text,
			RequestedAt: start,
			CompletedAt: completed,
		}
		if res != nil {
			entry.ModelName = res.ModelName
			entry.ModelVersion = res.ModelVersion
			entry.InputTokens = res.InputTokens
			entry.OutputTokens = res.OutputTokens
			entry.TotalTokens = res.TotalTokens
			entry.OutputResponse = truncate(res.Text, excerptLimit)
			if res.Prompt != "" {
				entry.InputPrompt = res.Prompt
			}
		}
		if err != nil {
			msg := err.Error()
			entry.ErrorMessage = &msg
		}

		// 클라이언트가 끊겨도 감사 로그는 남긴다.
		logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logWriteTimeout)
		if werr := r.logs.Insert(logCtx, entry); werr != nil {
			config.Logger.Warnf("failed to insert ai_log (session=%s): %v", req.SessionID, werr)
		}
		cancel()
	}

	return res, err
}

// truncate returns s truncated to max runes.
func truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}

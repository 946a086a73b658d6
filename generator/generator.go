// Package generator produces free-form assistant replies from a language model.
//
// 두 가지 백엔드를 제공한다.
//   - GeminiGenerator: 원격 Gemini API. 페르소나 시스템 지시문과 대화 맥락을 함께 보낸다.
//   - LocalGenerator: OpenAI 호환 로컬 추론 서버. 최신 사용자 메시지만 보낸다.
//
// 호출자는 어떤 백엔드가 선택됐는지 알 필요 없이 Generator 인터페이스만 사용한다.
package generator

import (
	"context"
	"errors"
	"fmt"

	"mindful-chat/models"
)

var (
	// ErrUnavailable 은 타임아웃, 호출 실패, 빈 응답 등 일시적인 생성 실패다.
	// 응답 체인은 이 오류를 기본 답변으로 흡수한다.
	ErrUnavailable = errors.New("generation unavailable")

	// ErrConfiguration 은 자격 증명/모델 누락 같은 배포 결함이다. 흡수하지 않고 호출자에게 전달한다.
	ErrConfiguration = errors.New("generation backend misconfigured")
)

// Request is one generation call.
type Request struct {
	SessionID string
	Text      string
	// History 는 세션의 최근 메시지(오래된 순)이며 방금 저장한 사용자 메시지를 포함할 수 있다.
	History []models.Message
}

// Result carries the reply plus usage details for the audit log.
type Result struct {
	Text         string
	Prompt       string
	ModelName    string
	ModelVersion string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
	// Provider 는 로그/메트릭 라벨로 쓰이는 백엔드 이름이다.
	Provider() string
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

func misconfigured(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

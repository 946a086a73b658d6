package generator

import (
	"context"
	"errors"

	"mindful-chat/config"
)

// New 는 설정된 provider 의 백엔드를 만든다. 알 수 없는 provider 나 누락된 자격 증명은
// ErrConfiguration 이므로 시작 단계에서 실패해야 한다.
func New(ctx context.Context, cfg config.AppConfig) (Generator, error) {
	gcfg := cfg.Chat.Generator
	switch gcfg.Provider {
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg.Env.GeminiAPIKey, gcfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderLocal:
		g, err := NewLocalGenerator(cfg.Env.LocalLLMBaseURL, cfg.Env.LocalLLMAPIKey, gcfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, misconfigured("unsupported generator provider: %q", gcfg.Provider)
	}
}

// brokenGenerator 는 백엔드를 만들 수 없을 때 대신 쓰인다.
// 모든 호출이 처음의 설정 오류를 돌려주므로 키워드 답변은 계속 동작하고 나머지 요청은 서비스 오류가 된다.
type brokenGenerator struct {
	provider string
	err      error
}

func Broken(provider string, err error) Generator {
	if err == nil || !errors.Is(err, ErrConfiguration) {
		err = misconfigured("%v", err)
	}
	return &brokenGenerator{provider: provider, err: err}
}

func (g *brokenGenerator) Provider() string { return g.provider }

func (g *brokenGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	return nil, g.err
}

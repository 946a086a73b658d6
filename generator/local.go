package generator

import (
	"context"
	"math"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"mindful-chat/config"
	"mindful-chat/httpclient"
)

// specialTokenPattern 은 디코딩 후에도 남는 모델 특수 토큰(<|endoftext|>, </s> 등)이다.
var specialTokenPattern = regexp.MustCompile(`<\|[^|>]*\|>|</?s>|<pad>|<unk>`)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LocalGenerator 는 OpenAI 호환 로컬 추론 서버(llama.cpp, vLLM, TGI 등)에 올린
// 인스트럭션 모델을 호출한다. 대화 맥락 없이 최신 사용자 메시지만 보낸다.
type LocalGenerator struct {
	client       chatCompleter
	modelName    string
	maxNewTokens int
	temperature  float32
	topP         float32
}

func NewLocalGenerator(baseURL, apiKey string, cfg config.GeneratorConfig) (*LocalGenerator, error) {
	if baseURL == "" {
		return nil, misconfigured("LOCAL_LLM_BASE_URL environment variable is not set")
	}
	if cfg.ModelName == "" {
		return nil, misconfigured("local model name is not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	clientCfg.HTTPClient = httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	return newLocalGenerator(openai.NewClientWithConfig(clientCfg), cfg), nil
}

func newLocalGenerator(client chatCompleter, cfg config.GeneratorConfig) *LocalGenerator {
	return &LocalGenerator{
		client:       client,
		modelName:    cfg.ModelName,
		maxNewTokens: cfg.MaxNewTokens,
		temperature:  requestTemperature(cfg.Temperature),
		topP:         cfg.TopP,
	}
}

// requestTemperature 는 0 을 보낼 수 있게 한다. go-openai 는 0 인 temperature 를 요청에서 생략한다.
func requestTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func (g *LocalGenerator) Provider() string { return config.ProviderLocal }

func (g *LocalGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		MaxTokens:   g.maxNewTokens,
		Temperature: g.temperature,
		TopP:        g.topP,
	})
	if err != nil {
		return nil, unavailable("local inference: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, unavailable("local inference returned no choices")
	}

	text := cleanGenerated(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, unavailable("local inference returned a degenerate reply")
	}

	return &Result{
		Text:         text,
		Prompt:       req.Text,
		ModelName:    g.modelName,
		ModelVersion: resp.Model,
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
		TotalTokens:  int64(resp.Usage.TotalTokens),
	}, nil
}

// cleanGenerated 는 특수 토큰을 지우고 공백을 정리한다.
func cleanGenerated(s string) string {
	return strings.TrimSpace(specialTokenPattern.ReplaceAllString(s, ""))
}

package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mindful-chat/config"
	"mindful-chat/httpclient"
	"mindful-chat/models"
)

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

// contentGenerator 는 *genai.Models 가 만족하는 최소 인터페이스다.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiGenerator struct {
	models    contentGenerator
	modelName string
	genConfig *genai.GenerateContentConfig
}

// NewGeminiGenerator 는 API 키와 모델명이 모두 있어야 한다. 없으면 ErrConfiguration 을 반환한다.
func NewGeminiGenerator(ctx context.Context, apiKey string, cfg config.GeneratorConfig) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, misconfigured("GEMINI_API_KEY environment variable is not set")
	}
	if cfg.ModelName == "" {
		return nil, misconfigured("gemini model name is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpclient.New(httpclient.Config{Timeout: cfg.Timeout}),
	})
	if err != nil {
		return nil, misconfigured("create gemini client: %v", err)
	}
	return newGeminiGenerator(client.Models, cfg), nil
}

func newGeminiGenerator(m contentGenerator, cfg config.GeneratorConfig) *GeminiGenerator {
	return &GeminiGenerator{
		models:    m,
		modelName: cfg.ModelName,
		genConfig: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr(cfg.Temperature),
			TopP:              genai.Ptr(cfg.TopP),
		},
	}
}

func (g *GeminiGenerator) Provider() string { return config.ProviderGemini }

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	contents := buildGeminiContents(req.Text, req.History)

	resp, err := g.models.GenerateContent(ctx, g.modelName, contents, g.genConfig)
	if err != nil {
		return nil, unavailable("gemini generate content: %v", err)
	}
	if resp == nil {
		return nil, unavailable("gemini returned no response")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, unavailable("gemini returned an empty reply")
	}

	out := &Result{
		Text:         text,
		Prompt:       fmt.Sprintf("%s\n\n%s", SYSTEM_INSTRUCTION, req.Text),
		ModelName:    g.modelName,
		ModelVersion: resp.ModelVersion,
	}
	if resp.UsageMetadata != nil {
		out.InputTokens = int64(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
		out.TotalTokens = int64(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// buildGeminiContents 는 대화 맥락을 Gemini 의 user/model 턴으로 옮기고 마지막에 text 를 붙인다.
// 맥락의 마지막 메시지가 방금 저장된 같은 사용자 메시지라면 중복으로 보내지 않는다.
func buildGeminiContents(text string, history []models.Message) []*genai.Content {
	if n := len(history); n > 0 {
		last := history[n-1]
		if last.Role == models.RoleUser && last.Content == text {
			history = history[:n-1]
		}
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := geminiRoleUser
		if m.Role == models.RoleAssistant {
			role = geminiRoleModel
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}})
	}
	return append(contents, &genai.Content{Role: geminiRoleUser, Parts: []*genai.Part{{Text: text}}})
}

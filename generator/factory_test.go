package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful-chat/config"
)

func TestNewSelectsProvider(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Chat.Generator = localConfig()
	cfg.Env.LocalLLMBaseURL = "http://localhost:8080/v1"

	g, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderLocal, g.Provider())
}

func TestNewConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name     string
		provider string
	}{
		{name: "gemini without key", provider: config.ProviderGemini},
		{name: "unknown provider", provider: "openai-cloud"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := config.AppConfig{}
			cfg.Chat.Generator = testGeneratorConfig()
			cfg.Chat.Generator.Provider = testCase.provider

			g, err := New(context.Background(), cfg)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestBrokenGeneratorAlwaysReportsConfiguration(t *testing.T) {
	g := Broken(config.ProviderGemini, misconfigured("GEMINI_API_KEY environment variable is not set"))

	res, err := g.Generate(context.Background(), Request{Text: "hi"})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Equal(t, config.ProviderGemini, g.Provider())

	wrapped := Broken(config.ProviderLocal, errors.New("dial failed"))
	_, err = wrapped.Generate(context.Background(), Request{Text: "hi"})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

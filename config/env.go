package config

import (
	"github.com/caarlos0/env/v10"
)

// EnvConfig 는 배포 환경마다 달라지는 접속 정보/비밀값이다.
// config.yaml 에는 넣지 않고 환경변수(.env 포함)로만 주입한다.
type EnvConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`
	LogLevel string `env:"LOG_LEVEL"`

	MongoURL string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME" envDefault:"mindful_chat"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	LocalLLMBaseURL string `env:"LOCAL_LLM_BASE_URL" envDefault:"http://localhost:8080/v1"`
	LocalLLMAPIKey  string `env:"LOCAL_LLM_API_KEY"`

	KafkaBootstrapServers string `env:"KAFKA_BOOTSTRAP_SERVERS"`
}

// LoadEnv 는 현재 프로세스 환경변수에서 EnvConfig 를 읽는다.
func LoadEnv() (EnvConfig, error) {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return EnvConfig{}, err
	}
	return e, nil
}

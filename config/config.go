package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultContextLimit      = 50
	DefaultSessionListLimit  = 20
	DefaultGenerationTimeout = 20 * time.Second
	DefaultOperationTimeout  = 5 * time.Second
	DefaultMongoMaxRetries   = 2
	DefaultMaxNewTokens      = 150
	DefaultTemperature       = 0.7
	DefaultTopP              = 0.9
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultLocalModel        = "tiiuae/falcon-7b-instruct"
	ProviderGemini           = "gemini"
	ProviderLocal            = "local"
	minGenerationTimeout     = 10 * time.Second
	maxGenerationTimeout     = 30 * time.Second
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Chat    ChatConfig    `yaml:"chat"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Events  EventsConfig  `yaml:"events"`

	// Env 는 config.yaml 이 아닌 환경변수에서 읽어 온 값이다.
	Env EnvConfig `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ChatConfig 는 응답 생성 파이프라인과 세션 조회 한도를 정의한다.
type ChatConfig struct {
	Generator        GeneratorConfig `yaml:"generator"`
	ContextLimit     int             `yaml:"context_limit"`
	SessionListLimit int             `yaml:"session_list_limit"`
	Quota            QuotaConfig     `yaml:"quota"`
}

type GeneratorConfig struct {
	// Provider 는 "gemini" 또는 "local" 이다.
	Provider     string        `yaml:"provider"`
	ModelName    string        `yaml:"model_name"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxNewTokens int           `yaml:"max_new_tokens"`
	Temperature  float32       `yaml:"temperature"`
	TopP         float32       `yaml:"top_p"`
}

// QuotaConfig 는 생성 백엔드 호출에 대한 속도/일일 한도를 정의한다.
type QuotaConfig struct {
	// RequestsPerMinute 는 분당 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 일일 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

type MongoConfig struct {
	OperationTimeout time.Duration `yaml:"operation_timeout"`
	MaxRetries       int           `yaml:"max_retries"`
}

type EventsConfig struct {
	Enabled    bool `yaml:"enabled"`
	Partitions int  `yaml:"partitions"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse 는 yaml 본문과 현재 프로세스 환경변수로 AppConfig 를 구성한다.
// 비어 있는 값은 기본값으로 채운다. 0 이 유효한 값인 temperature, max_retries 는
// 키가 없을 때만 기본값을 쓴다.
func Parse(data []byte) (*AppConfig, error) {
	c := AppConfig{
		Chat:  ChatConfig{Generator: GeneratorConfig{Temperature: DefaultTemperature}},
		Mongo: MongoConfig{MaxRetries: DefaultMongoMaxRetries},
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	c.Env = env
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Env.LogLevel != "" {
		c.Logging.Level = c.Env.LogLevel
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	g := &c.Chat.Generator
	if g.Provider == "" {
		g.Provider = ProviderGemini
	}
	if g.ModelName == "" {
		if g.Provider == ProviderLocal {
			g.ModelName = DefaultLocalModel
		} else {
			g.ModelName = DefaultGeminiModel
		}
	}
	switch {
	case g.Timeout <= 0:
		g.Timeout = DefaultGenerationTimeout
	case g.Timeout < minGenerationTimeout:
		g.Timeout = minGenerationTimeout
	case g.Timeout > maxGenerationTimeout:
		g.Timeout = maxGenerationTimeout
	}
	if g.MaxNewTokens <= 0 {
		g.MaxNewTokens = DefaultMaxNewTokens
	}
	if g.Temperature < 0 {
		g.Temperature = DefaultTemperature
	}
	if g.TopP <= 0 || g.TopP > 1 {
		g.TopP = DefaultTopP
	}

	if c.Chat.ContextLimit <= 0 {
		c.Chat.ContextLimit = DefaultContextLimit
	}
	// 세션 목록은 최대 DefaultSessionListLimit 개까지만 돌려준다.
	if c.Chat.SessionListLimit <= 0 || c.Chat.SessionListLimit > DefaultSessionListLimit {
		c.Chat.SessionListLimit = DefaultSessionListLimit
	}

	if c.Mongo.OperationTimeout <= 0 {
		c.Mongo.OperationTimeout = DefaultOperationTimeout
	}
	if c.Mongo.MaxRetries < 0 {
		c.Mongo.MaxRetries = 0
	}

	if c.Events.Partitions <= 0 {
		c.Events.Partitions = 3
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

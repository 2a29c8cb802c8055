package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	LLM      LLMConfig
	Ollama   OllamaConfig
	Provider ProviderConfig
	Search   SearchConfig
	Cache    CacheConfig
	Stream   StreamConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port            int
	APIToken        string
	MaxProfileBytes int
}

type LogConfig struct {
	Level string
}

// LLMConfig selects the text-generation backend. An empty Backend picks
// OpenRouter when an API key is set and Ollama otherwise. An empty
// ReasoningModel reuses the chat model.
type LLMConfig struct {
	Backend          string
	Model            string
	ReasoningModel   string
	OpenRouterAPIKey string
	OpenRouterURL    string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type ProviderConfig struct {
	AdzunaAppID       string
	AdzunaAppKey      string
	AdzunaBaseURL     string
	RequestsPerSecond float64
	ResultsPerPage    int
}

type SearchConfig struct {
	AllowSynthetic bool
	CacheTTL       time.Duration
}

type CacheConfig struct {
	RedisURL string
}

type StreamConfig struct {
	TokenDelay    time.Duration
	ProfileBudget int
	HistoryTurns  int
}

type StorageConfig struct {
	DataDir string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            4000,
			MaxProfileBytes: 64 << 10,
		},
		Log: LogConfig{Level: "info"},
		LLM: LLMConfig{
			Model: "openai/gpt-4o-mini",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
		},
		Provider: ProviderConfig{
			AdzunaBaseURL:     "https://api.adzuna.com/v1/api/jobs",
			RequestsPerSecond: 1,
			ResultsPerPage:    20,
		},
		Search: SearchConfig{
			CacheTTL: 15 * time.Minute,
		},
		Stream: StreamConfig{
			TokenDelay:    30 * time.Millisecond,
			ProfileBudget: 8000,
			HistoryTurns:  10,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/hirekit/config.json, then applies HIREKIT_* environment
// overrides, then fills secrets that are still empty from
// $XDG_DATA_HOME/hirekit/secrets.json.
//
// Missing credentials are not an error: the components that need them
// degrade at runtime.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()), fileSecrets{path: secretsFilePath()})
}

// secretReader abstracts the secrets store for testing.
type secretReader interface {
	Get(account string) (string, error)
}

func loadWith(b ConfigBackend, secrets secretReader) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)
	applySecrets(&cfg, secrets)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LLM.Backend {
	case "", "openrouter", "ollama":
	default:
		return fmt.Errorf("invalid llm.backend %q: want openrouter or ollama", c.LLM.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}

// ChatModel returns the model used for chat and letters on the configured
// backend.
func (c Config) ChatModel(backend string) string {
	if backend == "ollama" {
		return c.Ollama.Model
	}
	return c.LLM.Model
}

// ReasoningModelFor returns the model used for search-parameter reasoning.
func (c Config) ReasoningModelFor(backend string) string {
	if c.LLM.ReasoningModel != "" {
		return c.LLM.ReasoningModel
	}
	return c.ChatModel(backend)
}

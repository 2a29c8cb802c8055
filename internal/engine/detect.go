package engine

import (
	"fmt"
	"strings"
)

// Backend names accepted by Detect.
const (
	BackendOpenRouter = "openrouter"
	BackendOllama     = "ollama"
)

// DetectConfig holds parameters for backend selection.
type DetectConfig struct {
	Backend          string
	OllamaBaseURL    string
	OpenRouterAPIKey string
	OpenRouterURL    string
}

// Resolve returns the backend name cfg selects. An empty backend selects
// OpenRouter when an API key is present and Ollama otherwise.
func (cfg DetectConfig) Resolve() string {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend != "" {
		return backend
	}
	if cfg.OpenRouterAPIKey != "" {
		return BackendOpenRouter
	}
	return BackendOllama
}

// Detect returns the Engine for the backend cfg resolves to.
func Detect(cfg DetectConfig) (Engine, error) {
	switch cfg.Resolve() {
	case BackendOpenRouter:
		if cfg.OpenRouterURL != "" {
			return NewOpenRouterEngineWithBaseURL(cfg.OpenRouterAPIKey, cfg.OpenRouterURL), nil
		}
		return NewOpenRouterEngine(cfg.OpenRouterAPIKey), nil
	case BackendOllama:
		return NewOllamaEngine(cfg.OllamaBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/proxy"
)

// ErrMissingCredentials is returned by the hosted backend when no API key
// is configured.
var ErrMissingCredentials = proxy.ErrMissingAPIKey

// OpenRouterEngine adapts proxy.Client to the Engine interface.
type OpenRouterEngine struct {
	client *proxy.Client
}

// NewOpenRouterEngine creates an engine calling the hosted OpenRouter API.
func NewOpenRouterEngine(apiKey string) *OpenRouterEngine {
	return &OpenRouterEngine{client: proxy.NewClient(apiKey)}
}

// NewOpenRouterEngineWithBaseURL points the engine at a custom
// OpenAI-compatible endpoint.
func NewOpenRouterEngineWithBaseURL(apiKey, baseURL string) *OpenRouterEngine {
	return &OpenRouterEngine{client: proxy.NewClientWithBaseURL(apiKey, baseURL)}
}

func (e *OpenRouterEngine) Chat(ctx context.Context, model string, messages []Message, jsonSchema *Schema) (string, error) {
	req, err := buildRequest(model, messages)
	if err != nil {
		return "", err
	}
	if jsonSchema != nil {
		req = req.WithJSONResponse()
	}
	return e.client.Complete(ctx, req)
}

func (e *OpenRouterEngine) Stream(ctx context.Context, model string, messages []Message, onFragment func(string) error) error {
	req, err := buildRequest(model, messages)
	if err != nil {
		return err
	}
	return e.client.StreamContent(ctx, req, onFragment)
}

// IsRunning reports whether the API key is accepted by the model listing
// endpoint.
func (e *OpenRouterEngine) IsRunning(ctx context.Context) bool {
	if !e.client.HasCredentials() {
		return false
	}
	_, err := e.client.ListModels(ctx)
	return err == nil
}

func buildRequest(model string, messages []Message) (proxy.ChatRequest, error) {
	raw, err := json.Marshal(messages)
	if err != nil {
		return proxy.ChatRequest{}, fmt.Errorf("marshaling messages: %w", err)
	}
	return proxy.ChatRequest{Model: model, Messages: raw}, nil
}

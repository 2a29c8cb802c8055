// Package ollama is a minimal client for the local Ollama HTTP API: model
// listing and pulling, plain and schema-constrained chat, and streamed chat.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrModelNotFound is returned when Ollama reports the requested model is
// not installed.
var ErrModelNotFound = errors.New("ollama: model not found")

// Message is a chat turn in Ollama's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Schema constrains a chat reply to a JSON object. It is sent as the
// request's format field.
type Schema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

type SchemaProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// PullProgress is one line of a streamed model download.
type PullProgress struct {
	Status    string `json:"status"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// Client talks to one Ollama server. Generation calls carry no client-side
// timeout; callers bound them through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Format   *Schema   `json:"format,omitempty"`
}

// chatChunk is a whole non-streamed reply or one line of a streamed one.
type chatChunk struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error,omitempty"`
}

type pullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// IsRunning reports whether the server answers the tags endpoint.
func (c *Client) IsRunning(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := c.send(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// ListModels returns the installed model names, tags included.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := c.send(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// HasModel reports whether name is installed. A name without a tag matches
// any tag of that model.
func (c *Client) HasModel(ctx context.Context, name string) bool {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false
	}
	for _, m := range models {
		if m == name || strings.HasPrefix(m, name+":") {
			return true
		}
	}
	return false
}

// PullModel downloads name and passes each progress line to onProgress,
// which may be nil.
func (c *Client) PullModel(ctx context.Context, name string, onProgress func(PullProgress)) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/pull", pullRequest{Name: name, Stream: true})
	if err != nil {
		return fmt.Errorf("pulling %s: %w", name, err)
	}
	defer resp.Body.Close()

	return decodeLines(resp.Body, func(p PullProgress) (bool, error) {
		if onProgress != nil {
			onProgress(p)
		}
		return false, nil
	})
}

// Chat returns the complete reply of model. A non-nil schema requests a
// JSON object of that shape.
func (c *Client) Chat(ctx context.Context, model string, messages []Message, schema *Schema) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/chat", chatRequest{Model: model, Messages: messages, Format: schema})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()

	var reply chatChunk
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("decoding chat reply: %w", err)
	}
	if reply.Error != "" {
		return "", fmt.Errorf("chat: %s", reply.Error)
	}
	return reply.Message.Content, nil
}

// ChatStream streams the reply of model, calling onFragment with every
// non-empty content fragment in order. An error from onFragment stops the
// stream and is returned.
func (c *Client) ChatStream(ctx context.Context, model string, messages []Message, onFragment func(string) error) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/chat", chatRequest{Model: model, Messages: messages, Stream: true})
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()

	return decodeLines(resp.Body, func(chunk chatChunk) (bool, error) {
		if chunk.Error != "" {
			return true, fmt.Errorf("chat: %s", chunk.Error)
		}
		if chunk.Message.Content != "" {
			if err := onFragment(chunk.Message.Content); err != nil {
				return true, err
			}
		}
		return chunk.Done, nil
	})
}

// send issues a request with an optional JSON body. Non-200 answers are
// turned into errors carrying Ollama's error text.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	var apiErr struct {
		Error string `json:"error"`
	}
	json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
	if resp.StatusCode == http.StatusNotFound && strings.Contains(apiErr.Error, "not found") {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, apiErr.Error)
	}
	if apiErr.Error != "" {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Error)
	}
	return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
}

// decodeLines reads newline-delimited JSON values of type T until EOF or
// until fn reports it is done.
func decodeLines[T any](r io.Reader, fn func(T) (done bool, err error)) error {
	dec := json.NewDecoder(r)
	for {
		var v T
		if err := dec.Decode(&v); errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("reading stream: %w", err)
		}
		done, err := fn(v)
		if err != nil || done {
			return err
		}
	}
}

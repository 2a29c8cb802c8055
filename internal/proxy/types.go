package proxy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ChatRequest is the OpenAI-compatible chat completion request.
// Fields not explicitly modeled are carried in Extra.
type ChatRequest struct {
	Model    string                     `json:"model"`
	Messages json.RawMessage            `json:"messages"`
	Stream   bool                       `json:"stream,omitempty"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// WithJSONResponse asks the upstream model for a JSON object reply.
func (r ChatRequest) WithJSONResponse() ChatRequest {
	extra := make(map[string]json.RawMessage, len(r.Extra)+1)
	for k, v := range r.Extra {
		extra[k] = v
	}
	extra["response_format"] = json.RawMessage(`{"type":"json_object"}`)
	r.Extra = extra
	return r
}

func (r ChatRequest) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage)
	for k, v := range r.Extra {
		m[k] = v
	}
	if r.Model != "" {
		b, _ := json.Marshal(r.Model)
		m["model"] = b
	}
	if r.Messages != nil {
		m["messages"] = r.Messages
	}
	if r.Stream {
		m["stream"] = json.RawMessage(`true`)
	}
	return json.Marshal(m)
}

func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["model"]; ok {
		json.Unmarshal(v, &r.Model)
		delete(raw, "model")
	}
	if v, ok := raw["messages"]; ok {
		r.Messages = v
		delete(raw, "messages")
	}
	if v, ok := raw["stream"]; ok {
		json.Unmarshal(v, &r.Stream)
		delete(raw, "stream")
	}
	r.Extra = raw
	return nil
}

// ChatCompletion is a non-streaming completion response.
type ChatCompletion struct {
	ID      string         `json:"id"`
	Choices []Choice       `json:"choices"`
	Error   *UpstreamError `json:"error,omitempty"`
}

// Choice is one completion alternative.
type Choice struct {
	Message ChoiceMessage `json:"message"`
}

// ChoiceMessage is the assistant message of a Choice.
type ChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChunk is one server-sent event of a streaming completion.
type ChatChunk struct {
	ID      string         `json:"id"`
	Choices []ChunkChoice  `json:"choices"`
	Error   *UpstreamError `json:"error,omitempty"`
}

// ChunkChoice carries an incremental content delta.
type ChunkChoice struct {
	Delta        ChoiceMessage `json:"delta"`
	FinishReason *string       `json:"finish_reason,omitempty"`
}

// UpstreamError is the error object OpenRouter embeds in a 200 response.
type UpstreamError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

const maxSSELine = 1 << 20

// ReadStream decodes an OpenAI-style SSE body, calling fn for every data
// event until the [DONE] sentinel or EOF. Comment lines and blank lines
// are skipped.
func ReadStream(r io.Reader, fn func(ChatChunk) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxSSELine)

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ':' {
			continue
		}
		data, ok := bytes.CutPrefix(line, []byte("data:"))
		if !ok {
			continue
		}
		data = bytes.TrimSpace(data)
		if string(data) == "[DONE]" {
			return nil
		}

		var chunk ChatChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			return fmt.Errorf("decoding stream chunk: %w", err)
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	return nil
}

// Model represents a model entry returned by the /v1/models endpoint.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ModelList is the response from /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

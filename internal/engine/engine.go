package engine

import "context"

// Engine abstracts the language-model backend behind the assistant. Intent
// extraction, letter drafting and open chat depend on this interface
// instead of a concrete client.
type Engine interface {
	// Chat sends messages to the given model and returns the complete reply.
	// When jsonSchema is non-nil a JSON object reply is requested.
	Chat(ctx context.Context, model string, messages []Message, jsonSchema *Schema) (string, error)

	// Stream sends messages to the given model and calls onFragment with each
	// text fragment in arrival order. An error from onFragment stops the stream.
	Stream(ctx context.Context, model string, messages []Message, onFragment func(string) error) error

	// IsRunning reports whether the backend is reachable.
	IsRunning(ctx context.Context) bool
}

// Provisioner is implemented by backends that host models locally and can
// download missing ones.
type Provisioner interface {
	Engine

	// HasModel reports whether the given model name is available locally.
	HasModel(ctx context.Context, name string) bool

	// PullModel downloads a model. The optional callback receives progress updates.
	PullModel(ctx context.Context, name string, onProgress func(PullProgress)) error
}

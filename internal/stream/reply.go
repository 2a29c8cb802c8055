package stream

import (
	"github.com/LadFoxTom/hirekit-app-sub001/internal/payload"
)

// ParseReply splits a generated reply into the user-facing text and any
// CV updates. A reply without a decodable object holding a string
// "response" field is returned verbatim.
func ParseReply(raw string) (string, *Updates) {
	var obj map[string]any
	if err := payload.Decode(raw, &obj); err != nil {
		return raw, nil
	}
	response, ok := obj["response"].(string)
	if !ok {
		return raw, nil
	}
	var updates *Updates
	if m, ok := obj["updates"].(map[string]any); ok {
		updates = NormalizeUpdates(m)
	}
	return response, updates
}

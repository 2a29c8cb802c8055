// Package payload extracts structured JSON objects from free-form model
// replies that mix prose, code fences and JSON.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoStructuredPayload is returned when a reply holds no decodable object.
var ErrNoStructuredPayload = errors.New("no structured payload")

// StripFences removes a leading ```lang fence and a trailing ``` fence.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractObject returns the first balanced-brace region of raw, starting at
// the first '{'. Braces inside JSON strings are ignored.
func ExtractObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", ErrNoStructuredPayload
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", ErrNoStructuredPayload
}

// Decode strips fences, extracts the first object from raw and unmarshals it
// into v. Every failure wraps ErrNoStructuredPayload.
func Decode(raw string, v any) error {
	obj, err := ExtractObject(StripFences(raw))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("%w: %v", ErrNoStructuredPayload, err)
	}
	return nil
}

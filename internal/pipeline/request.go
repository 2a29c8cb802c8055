package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

// DefaultMaxProfileBytes caps the raw candidate profile of a request.
const DefaultMaxProfileBytes = 64 << 10

var (
	ErrEmptyMessage        = errors.New("message is required")
	ErrProfileTooLarge     = errors.New("candidate profile is too large")
	ErrInvalidProfile      = errors.New("candidate profile is malformed")
	ErrUnsupportedLanguage = errors.New("unsupported language preference")
)

// ChatRequest is the inbound wire shape of every assistant request.
type ChatRequest struct {
	Message             string           `json:"message"`
	CandidateProfile    json.RawMessage  `json:"candidateProfile,omitempty"`
	ConversationHistory []engine.Message `json:"conversationHistory,omitempty"`
	LanguagePreference  string           `json:"languagePreference,omitempty"`
}

// Request is a validated ChatRequest.
type Request struct {
	Message  string
	Profile  *profile.CandidateProfile
	History  []engine.Message
	Language locale.Language
}

// ParseRequest validates in. The profile is rejected before decoding when
// its raw size exceeds maxProfileBytes (zero uses DefaultMaxProfileBytes).
// An empty language preference means the base language.
func ParseRequest(in ChatRequest, maxProfileBytes int) (Request, error) {
	if maxProfileBytes <= 0 {
		maxProfileBytes = DefaultMaxProfileBytes
	}

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return Request{}, ErrEmptyMessage
	}

	lang := locale.Base
	if in.LanguagePreference != "" {
		l, ok := locale.Parse(in.LanguagePreference)
		if !ok {
			return Request{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, in.LanguagePreference)
		}
		lang = l
	}

	p, err := parseProfile(in.CandidateProfile, maxProfileBytes)
	if err != nil {
		return Request{}, err
	}

	var history []engine.Message
	for _, m := range in.ConversationHistory {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		history = append(history, m)
	}

	return Request{Message: msg, Profile: p, History: history, Language: lang}, nil
}

func parseProfile(raw json.RawMessage, maxBytes int) (*profile.CandidateProfile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if len(trimmed) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrProfileTooLarge, len(trimmed), maxBytes)
	}

	var p profile.CandidateProfile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if p.IsEmpty() {
		return nil, nil
	}
	return &p, nil
}

package pipeline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(ChatRequest{
		Message:            "  Find nurse jobs in Utrecht  ",
		CandidateProfile:   json.RawMessage(`{"fullName":"Jan Jansen","skills":["triage"]}`),
		LanguagePreference: "NL",
		ConversationHistory: []engine.Message{
			{Role: "system", Content: "ignored"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, "Find nurse jobs in Utrecht", req.Message)
	assert.Equal(t, locale.Dutch, req.Language)
	require.NotNil(t, req.Profile)
	assert.Equal(t, "Jan Jansen", req.Profile.FullName)
	assert.Len(t, req.History, 2)
}

func TestParseRequest_Defaults(t *testing.T) {
	req, err := ParseRequest(ChatRequest{Message: "hello", CandidateProfile: json.RawMessage("null")}, 0)
	require.NoError(t, err)

	assert.Equal(t, locale.Base, req.Language)
	assert.Nil(t, req.Profile)
}

func TestParseRequest_EmptyProfileIsNil(t *testing.T) {
	req, err := ParseRequest(ChatRequest{Message: "hello", CandidateProfile: json.RawMessage("{}")}, 0)
	require.NoError(t, err)
	assert.Nil(t, req.Profile)
}

func TestParseRequest_Rejections(t *testing.T) {
	big := `{"summary":"` + strings.Repeat("x", 200) + `"}`

	tests := []struct {
		name string
		in   ChatRequest
		max  int
		want error
	}{
		{"empty message", ChatRequest{Message: "   "}, 0, ErrEmptyMessage},
		{"profile too large", ChatRequest{Message: "hi", CandidateProfile: json.RawMessage(big)}, 100, ErrProfileTooLarge},
		{"malformed profile", ChatRequest{Message: "hi", CandidateProfile: json.RawMessage(`{"skills":"go"}`)}, 0, ErrInvalidProfile},
		{"unknown language", ChatRequest{Message: "hi", LanguagePreference: "it"}, 0, ErrUnsupportedLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(tt.in, tt.max)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

package composer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

func TestCompose_NoProfileNoHistory(t *testing.T) {
	c := New(0, 0, 0)
	msgs := c.Compose("be helpful", nil, nil, "hello")

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "be helpful" {
		t.Errorf("system message = %+v", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[1].Content != "hello" {
		t.Errorf("user message = %+v", msgs[1])
	}
}

func TestCompose_InjectsProfile(t *testing.T) {
	c := New(0, 0, 0)
	p := &profile.CandidateProfile{FullName: "Ada", Skills: []string{"Go"}}
	msgs := c.Compose("be helpful", p, nil, "hi")

	sys := msgs[0].Content
	if !strings.Contains(sys, "[Candidate Profile]") {
		t.Error("system message missing profile header")
	}
	if !strings.Contains(sys, `"fullName": "Ada"`) {
		t.Errorf("system message missing profile body: %s", sys)
	}
}

func TestCompose_TruncatesLargeProfile(t *testing.T) {
	c := New(200, 0, 0)
	p := &profile.CandidateProfile{Summary: strings.Repeat("long summary ", 100)}
	msgs := c.Compose("x", p, nil, "hi")

	if !strings.HasSuffix(msgs[0].Content, profile.TruncationMarker) {
		t.Error("expected truncation marker at end of system message")
	}
}

func TestCompose_HistoryWindow(t *testing.T) {
	c := New(0, 10, 0)
	var history []engine.Message
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, engine.Message{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	history = append(history, engine.Message{Role: "system", Content: "ignored"}, engine.Message{Role: "user", Content: "  "})

	msgs := c.Compose("x", nil, history, "now")

	if len(msgs) != 12 {
		t.Fatalf("expected 12 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "turn 4" {
		t.Errorf("oldest kept turn = %q, want %q", msgs[1].Content, "turn 4")
	}
	if msgs[10].Content != "turn 13" {
		t.Errorf("newest kept turn = %q, want %q", msgs[10].Content, "turn 13")
	}
}

func TestCompose_HistoryTokenBudget(t *testing.T) {
	c := New(0, 10, 30)
	history := []engine.Message{
		{Role: "user", Content: strings.Repeat("a", 100)},
		{Role: "assistant", Content: strings.Repeat("b", 60)},
		{Role: "user", Content: strings.Repeat("c", 40)},
	}
	msgs := c.Compose("x", nil, history, "now")

	// 25 + 15 + 10 tokens: the oldest turn must go, the rest fit in 30.
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[1].Content[0] != 'b' {
		t.Errorf("first kept turn starts with %q, want 'b'", msgs[1].Content[0])
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.input); got != tt.want {
			t.Errorf("EstimateTokens(%d chars) = %d, want %d", len(tt.input), got, tt.want)
		}
	}
}

func TestChatInstructions(t *testing.T) {
	got := ChatInstructions(locale.German)
	if !strings.Contains(got, "Reply in German.") {
		t.Errorf("instructions missing language: %s", got)
	}
	if !strings.Contains(got, `"updates"`) {
		t.Error("instructions missing updates contract")
	}
}

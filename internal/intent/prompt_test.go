package intent

import (
	"strings"
	"testing"
)

func TestPromptContainsInstructions(t *testing.T) {
	messages := BuildPrompt("nurse jobs in Breda", "")

	system := messages[0].Content
	for _, want := range []string{"searchQueries", "useCandidateProfile", "hasEnoughInfo", "ONLY a single valid JSON object"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if strings.Contains(system, "[Candidate Summary]") {
		t.Error("empty digest should not add a candidate section")
	}
}

func TestPromptInjectsDigest(t *testing.T) {
	messages := BuildPrompt("jobs please", "Most recent role: Nurse at UMC.")

	if !strings.Contains(messages[0].Content, "Most recent role: Nurse at UMC.") {
		t.Error("system prompt does not contain candidate digest")
	}
}

func TestPromptMessageOrder(t *testing.T) {
	messages := BuildPrompt("find me a job", "")

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("messages[0].Role = %q, want %q", messages[0].Role, "system")
	}
	if messages[1].Role != "user" || messages[1].Content != "find me a job" {
		t.Errorf("messages[1] = %+v, want user message", messages[1])
	}
}

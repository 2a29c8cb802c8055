package composer

import (
	"fmt"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

const (
	defaultHistoryTurns     = 10
	defaultMaxHistoryTokens = 4000
)

// Composer assembles the message list of an open-chat turn from the
// instruction set, the candidate profile, the recent conversation and the
// new message.
type Composer struct {
	ProfileBytes     int
	HistoryTurns     int
	MaxHistoryTokens int
}

// New creates a Composer. Zero or negative limits use the defaults: the
// profile.DefaultContextBytes budget, 10 turns and 4000 history tokens.
func New(profileBytes, historyTurns, maxHistoryTokens int) *Composer {
	if profileBytes <= 0 {
		profileBytes = profile.DefaultContextBytes
	}
	if historyTurns <= 0 {
		historyTurns = defaultHistoryTurns
	}
	if maxHistoryTokens <= 0 {
		maxHistoryTokens = defaultMaxHistoryTokens
	}
	return &Composer{ProfileBytes: profileBytes, HistoryTurns: historyTurns, MaxHistoryTokens: maxHistoryTokens}
}

// Compose returns the system message, the kept history and the user
// message, in that order. History keeps only user and assistant turns with
// content, at most HistoryTurns of the most recent ones, and drops the
// oldest while their estimated size exceeds MaxHistoryTokens.
func (c *Composer) Compose(instructions string, p *profile.CandidateProfile, history []engine.Message, message string) []engine.Message {
	var sb strings.Builder
	sb.WriteString(instructions)
	if ctx := p.Context(c.ProfileBytes); ctx != "" {
		sb.WriteString("\n\n[Candidate Profile]\n")
		sb.WriteString(ctx)
	}

	msgs := []engine.Message{{Role: "system", Content: sb.String()}}
	msgs = append(msgs, c.window(history)...)
	msgs = append(msgs, engine.Message{Role: "user", Content: message})
	return msgs
}

func (c *Composer) window(history []engine.Message) []engine.Message {
	var turns []engine.Message
	for _, m := range history {
		if (m.Role == "user" || m.Role == "assistant") && strings.TrimSpace(m.Content) != "" {
			turns = append(turns, m)
		}
	}
	if len(turns) > c.HistoryTurns {
		turns = turns[len(turns)-c.HistoryTurns:]
	}

	total := 0
	for _, m := range turns {
		total += EstimateTokens(m.Content)
	}
	for len(turns) > 0 && total > c.MaxHistoryTokens {
		total -= EstimateTokens(turns[0].Content)
		turns = turns[1:]
	}
	return turns
}

// EstimateTokens provides a rough token count using 4 chars per token heuristic.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

const chatInstructions = `You are a career assistant that helps the user improve their CV and answers career questions. Reply in %s.

Your output must be a single JSON object:
{"response": "<your message to the user>", "updates": {<only the CV fields you changed>}}

Rules:
- response is plain text for the user. Keep it short and concrete.
- updates holds only fields you changed, using the shape {"summary": "", "skills": [], "experience": [{"title": "", "company": "", "startDate": "", "endDate": "", "description": "", "achievements": []}], "education": [{"degree": "", "institution": "", "year": ""}]}.
- Omit updates entirely when nothing in the CV changes.
- Never invent employers, dates, degrees or numbers that are not in the profile or the conversation.`

// ChatInstructions returns the open-chat instruction set for lang.
func ChatInstructions(lang locale.Language) string {
	return fmt.Sprintf(chatInstructions, locale.Name(lang))
}

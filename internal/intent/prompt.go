package intent

import (
	"fmt"
	"strings"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
)

const reasoningPrompt = `You turn a job seeker's request into job-search parameters. Your output must be ONLY a single valid JSON object with these fields. Do not include any other text, prose, or markdown.

{"jobTitle": string, "location": string, "skills": [string], "searchQueries": [string, string, string], "reasoning": string, "useCandidateProfile": boolean, "hasEnoughInfo": boolean}

Rules:
- jobTitle is the role the user asks for. If the request names no role, use the candidate's most recent role and set useCandidateProfile to true.
- location is the city or country the user mentions last; leave it empty when none is given. Never invent one.
- searchQueries holds exactly three queries: the exact title, a common synonym, and a broader variant.
- skills lists skills from the request or, when useCandidateProfile is true, from the candidate summary.
- hasEnoughInfo is false only when neither the request nor the candidate summary names a role or skill.`

// BuildPrompt constructs the chat messages for search-parameter reasoning.
// profileDigest is the one-paragraph candidate summary, possibly empty.
func BuildPrompt(message, profileDigest string) []engine.Message {
	var sb strings.Builder
	sb.WriteString(reasoningPrompt)

	if profileDigest != "" {
		fmt.Fprintf(&sb, "\n\n[Candidate Summary]\n%s", profileDigest)
	}

	return []engine.Message{
		{Role: "system", Content: sb.String()},
		{Role: "user", Content: message},
	}
}

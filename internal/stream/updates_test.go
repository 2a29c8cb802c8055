package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

func decodeMap(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalizeUpdates_Variants(t *testing.T) {
	raw := decodeMap(t, `{
		"about": "  Designer with 8 years of experience. ",
		"technologies": "Figma, Sketch , ",
		"workExperience": [
			{"position": "Lead Designer", "employer": "Acme", "from": "2020", "to": "now",
			 "highlights": ["Grew team to 6", "- Shipped design system"]},
			{"role": "Designer", "organization": "Initech", "content": [{"text": "Ran research"}]},
			{"unrelated": true}
		],
		"schooling": {"qualification": "BA Design", "school": "KABK", "graduationYear": 2014},
		"spokenLanguages": [{"language": "Dutch"}, "English"]
	}`)

	got := NormalizeUpdates(raw)
	require.NotNil(t, got)

	assert.Equal(t, "Designer with 8 years of experience.", got.Summary)
	assert.Equal(t, []string{"Figma", "Sketch"}, got.Skills)
	assert.Equal(t, []profile.Experience{
		{Title: "Lead Designer", Company: "Acme", StartDate: "2020", EndDate: "now",
			Achievements: []string{"Grew team to 6", "Shipped design system"}},
		{Title: "Designer", Company: "Initech", Achievements: []string{"Ran research"}},
	}, got.Experience)
	assert.Equal(t, []profile.Education{{Degree: "BA Design", Institution: "KABK", Year: "2014"}}, got.Education)
	assert.Equal(t, []string{"Dutch", "English"}, got.Languages)
	assert.Empty(t, got.Title)
}

func TestNormalizeUpdates_CanonicalWins(t *testing.T) {
	got := NormalizeUpdates(decodeMap(t, `{"summary":"canonical","about":"variant","headline":"Staff Engineer"}`))
	require.NotNil(t, got)
	assert.Equal(t, "canonical", got.Summary)
	assert.Equal(t, "Staff Engineer", got.Title)
}

func TestNormalizeUpdates_OmitsAbsent(t *testing.T) {
	got := NormalizeUpdates(decodeMap(t, `{"skills":["Go"]}`))
	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills":["Go"]}`, string(b))
}

func TestNormalizeUpdates_Nothing(t *testing.T) {
	assert.Nil(t, NormalizeUpdates(nil))
	assert.Nil(t, NormalizeUpdates(map[string]any{"color": "blue"}))
	assert.Nil(t, NormalizeUpdates(decodeMap(t, `{"experience":[{"foo":"bar"}],"skills":[]}`)))
}

func TestParseReply(t *testing.T) {
	text, updates := ParseReply("```json\n{\"response\":\"Updated your summary.\",\"updates\":{\"profile\":\"Short and sharp.\"}}\n```")
	assert.Equal(t, "Updated your summary.", text)
	require.NotNil(t, updates)
	assert.Equal(t, "Short and sharp.", updates.Summary)

	text, updates = ParseReply(`Sure thing! {"response":"No changes needed."}`)
	assert.Equal(t, "No changes needed.", text)
	assert.Nil(t, updates)
}

func TestParseReply_Verbatim(t *testing.T) {
	for _, raw := range []string{
		"Just a plain answer.",
		`{"message":"no response field"}`,
		`{"response": 42}`,
		`{"response": "unterminated`,
	} {
		text, updates := ParseReply(raw)
		assert.Equal(t, raw, text)
		assert.Nil(t, updates)
	}
}

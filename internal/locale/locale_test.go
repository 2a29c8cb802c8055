package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Language
		matched bool
	}{
		{"dutch letter request", "Schrijf een motivatiebrief voor mij", Dutch, true},
		{"german letter request", "Bitte schreibe ein Anschreiben für mich", German, true},
		{"french letter request", "Écris une lettre de motivation pour moi", French, true},
		{"spanish letter request", "Escribe una carta de presentación para mí", Spanish, true},
		{"english falls back to base", "Write a cover letter for me", English, false},
		{"empty text", "", English, false},
		{"cue inside a longer word does not count", "I am a paralegal with a diet plan", English, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := DetectLanguage(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestDetectLanguage_FixedPriority(t *testing.T) {
	// Contains both a Dutch and a Spanish cue; Dutch is checked first.
	got, _ := DetectLanguage("ik quiero")
	assert.Equal(t, Dutch, got)
}

func TestMatch_IntentKeywordsAreSubstrings(t *testing.T) {
	assert.True(t, Contains("Find software developer jobs in Amsterdam", JobSearchIntent))
	assert.True(t, Contains("Zijn er vacatures in Utrecht?", JobSearchIntent))
	assert.True(t, Contains("Ich brauche ein Bewerbungsschreiben", CoverLetterIntent))
	assert.False(t, Contains("Make my summary shorter", JobSearchIntent))
	assert.False(t, Contains("Make my summary shorter", CoverLetterIntent))
}

func TestMatch_ReturnsLocale(t *testing.T) {
	lang, ok := Match("Necesito una carta de motivación", CoverLetterIntent)
	assert.True(t, ok)
	assert.Equal(t, Spanish, lang)
}

func TestTryCueIsWordBounded(t *testing.T) {
	assert.True(t, Contains("Let's try Rotterdam", TryCue))
	assert.False(t, Contains("I work in the poetry industry", TryCue))
}

func TestWorkModeAndJobNounCues(t *testing.T) {
	assert.True(t, Contains("try remote roles", WorkModeCue))
	assert.True(t, Contains("try remote roles", JobNounCue))
	assert.True(t, Contains("probeer eens thuiswerk vacatures", JobNounCue))
	assert.False(t, Contains("highlight my remote work experience", JobNounCue))
	assert.False(t, Contains("my summary is jobless", JobNounCue))
	assert.False(t, Contains("try remote roles", SearchCue))
}

func TestParseAndName(t *testing.T) {
	l, ok := Parse(" NL ")
	assert.True(t, ok)
	assert.Equal(t, Dutch, l)
	assert.Equal(t, "Dutch", Name(l))

	_, ok = Parse("it")
	assert.False(t, ok)
	assert.Equal(t, "English", Name("it"))
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []Language{English, Dutch, German, French, Spanish}, Supported())
}

// Package letter drafts cover letters in the request's language, falling
// back to static per-language drafts when generation fails.
package letter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/payload"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

const generationTimeout = 60 * time.Second

// Chatter is the slice of engine.Engine the drafter needs.
type Chatter interface {
	Chat(ctx context.Context, model string, messages []engine.Message, jsonSchema *engine.Schema) (string, error)
}

// Draft is a cover letter. Opening, Body, Closing and Signature are never
// empty in a draft returned by Drafter.
type Draft struct {
	RecipientName  string          `json:"recipientName,omitempty"`
	RecipientTitle string          `json:"recipientTitle,omitempty"`
	CompanyName    string          `json:"companyName,omitempty"`
	CompanyAddress string          `json:"companyAddress,omitempty"`
	JobTitle       string          `json:"jobTitle,omitempty"`
	Opening        string          `json:"opening"`
	Body           string          `json:"body"`
	Closing        string          `json:"closing"`
	Signature      string          `json:"signature"`
	Language       locale.Language `json:"language"`

	// Fallback reports that the static draft was used.
	Fallback bool `json:"-"`
}

// Drafter generates cover letters.
type Drafter struct {
	client       Chatter
	model        string
	profileBytes int
}

// NewDrafter creates a Drafter. profileBytes caps the serialized profile in
// the prompt; zero uses profile.DefaultContextBytes. A nil client always
// produces the fallback draft.
func NewDrafter(client Chatter, model string, profileBytes int) *Drafter {
	return &Drafter{client: client, model: model, profileBytes: profileBytes}
}

// DetectLanguage returns the language of message. When no cue matches the
// supported preferred language is used, else the base language.
func DetectLanguage(message string, preferred locale.Language) locale.Language {
	if l, ok := locale.DetectLanguage(message); ok {
		return l
	}
	if l, ok := locale.Parse(string(preferred)); ok {
		return l
	}
	return locale.Base
}

// Draft writes a letter for message. It never fails: generation errors and
// unusable replies yield the fallback draft for the detected language.
func (d *Drafter) Draft(ctx context.Context, message string, p *profile.CandidateProfile, preferred locale.Language) Draft {
	lang := DetectLanguage(message, preferred)
	draft, err := d.generate(ctx, message, p, lang)
	if err != nil {
		slog.Warn("letter generation failed, using fallback draft", "language", lang, "error", err)
		draft = Fallback(lang, p)
	}
	draft.Language = lang
	draft.Signature = signature(draft.Signature, p, lang)
	return draft
}

func (d *Drafter) generate(ctx context.Context, message string, p *profile.CandidateProfile, lang locale.Language) (Draft, error) {
	if d.client == nil {
		return Draft{}, fmt.Errorf("no generation backend configured")
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	raw, err := d.client.Chat(ctx, d.model, BuildPrompt(message, p, lang, d.profileBytes), &engine.Schema{Type: "object"})
	if err != nil {
		return Draft{}, fmt.Errorf("generating letter: %w", err)
	}

	var draft Draft
	if err := payload.Decode(raw, &draft); err != nil {
		return Draft{}, err
	}

	draft.Opening = paragraphs(draft.Opening)
	draft.Body = paragraphs(draft.Body)
	draft.Closing = paragraphs(draft.Closing)
	draft.Signature = strings.TrimSpace(draft.Signature)
	if draft.Opening == "" || draft.Body == "" || draft.Closing == "" {
		return Draft{}, fmt.Errorf("letter reply is missing opening, body or closing")
	}
	return draft, nil
}

// BuildPrompt constructs the generation messages for lang.
func BuildPrompt(message string, p *profile.CandidateProfile, lang locale.Language, profileBytes int) []engine.Message {
	ctx := p.Context(profileBytes)
	if ctx == "" {
		ctx = "No profile provided."
	}
	name := ""
	if p != nil && strings.TrimSpace(p.FullName) != "" {
		name = fmt.Sprintf(" (%s)", strings.TrimSpace(p.FullName))
	}
	return []engine.Message{
		{Role: "system", Content: fmt.Sprintf(instructions, styleFor(lang).directive, name, message, ctx)},
		{Role: "user", Content: message},
	}
}

// Fallback returns the static draft for lang with the candidate's title and
// most recent role filled in.
func Fallback(lang locale.Language, p *profile.CandidateProfile) Draft {
	s := styleFor(lang)

	role := p.LatestRole()
	title := ""
	if p != nil {
		title = strings.TrimSpace(p.Title)
	}
	if title == "" {
		title = role
	}
	if title == "" {
		title = s.genericRole
	}
	if role == "" {
		role = title
	}

	return Draft{
		Opening:   fmt.Sprintf(s.opening, title, role),
		Body:      fmt.Sprintf(s.body, title, role),
		Closing:   s.closing,
		Signature: signature("", p, lang),
		Language:  lang,
		Fallback:  true,
	}
}

// signature returns parsed when set, else the candidate's name, else the
// language placeholder.
func signature(parsed string, p *profile.CandidateProfile, lang locale.Language) string {
	if s := strings.TrimSpace(parsed); s != "" {
		return s
	}
	if p != nil {
		if name := strings.TrimSpace(p.FullName); name != "" {
			return name
		}
	}
	return styleFor(lang).placeholder
}

// paragraphs trims text and separates paragraphs with one blank line.
func paragraphs(text string) string {
	var parts []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Package pipeline routes an assistant request to job search, letter
// drafting or open chat and records the outcome.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/composer"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/intent"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/jobsearch"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/letter"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/locale"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/ranking"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/stream"
)

// ReplyType discriminates the structured replies.
type ReplyType string

const (
	ReplyJobSearch     ReplyType = "job_search"
	ReplyCoverLetter   ReplyType = "cover_letter"
	ReplyClarification ReplyType = "clarification"
)

// SearchReply answers a job search. Jobs is never nil.
type SearchReply struct {
	Type       ReplyType                  `json:"type"`
	Response   string                     `json:"response"`
	Jobs       []ranking.RankedJobListing `json:"jobs"`
	Parameters intent.SearchParameters    `json:"parameters"`
	Synthetic  bool                       `json:"synthetic,omitempty"`
}

// LetterReply answers a cover letter request.
type LetterReply struct {
	Type          ReplyType    `json:"type"`
	Response      string       `json:"response"`
	LetterUpdates letter.Draft `json:"letterUpdates"`
}

// InteractionRecorder persists handled requests.
type InteractionRecorder interface {
	SaveInteraction(i storage.Interaction) error
}

// Deps wires the assistant. Recorder is optional.
type Deps struct {
	Extractor *intent.Extractor
	Search    *jobsearch.Client
	Drafter   *letter.Drafter
	Assembler *stream.Assembler
	Composer  *composer.Composer
	Recorder  InteractionRecorder

	// AllowSynthetic enables placeholder listings when live search is empty.
	AllowSynthetic bool
}

// Assistant handles validated requests.
type Assistant struct {
	deps Deps
	now  func() time.Time
}

// NewAssistant creates an Assistant. A nil Composer uses the defaults.
func NewAssistant(deps Deps) *Assistant {
	if deps.Composer == nil {
		deps.Composer = composer.New(0, 0, 0)
	}
	return &Assistant{deps: deps, now: time.Now}
}

// Route classifies the request message.
func (a *Assistant) Route(req Request) intent.Intent {
	return intent.Classify(req.Message)
}

// SearchJobs extracts search parameters, runs the search waterfall and ranks
// the listings against the profile. Without enough information it asks a
// clarifying question instead of searching.
func (a *Assistant) SearchJobs(ctx context.Context, req Request) SearchReply {
	start := a.now()
	lang := letter.DetectLanguage(req.Message, req.Language)
	text := textFor(lang)

	params := a.deps.Extractor.Extract(ctx, req.Message, req.Profile)
	if !params.HasEnoughInfo {
		reply := SearchReply{
			Type:       ReplyClarification,
			Response:   text.clarify,
			Jobs:       []ranking.RankedJobListing{},
			Parameters: params,
		}
		a.record(req, intent.JobSearch, lang, reply.Response, "clarification", 0, start)
		return reply
	}

	result := a.deps.Search.Search(ctx, jobsearch.SearchRequest{
		Queries:        params.SearchQueries,
		Location:       params.Location,
		PrimaryRole:    params.JobTitle,
		AllowSynthetic: a.deps.AllowSynthetic,
	})
	jobs := ranking.Rank(result.Listings, req.Profile)

	slog.Debug("job search complete",
		"queries", params.SearchQueries,
		"location", params.Location,
		"attempts", result.Attempts,
		"results", len(jobs),
		"synthetic", result.Synthetic,
	)

	reply := SearchReply{
		Type:       ReplyJobSearch,
		Response:   text.searchSummary(len(jobs), displayQuery(params), params.Location, result.Synthetic),
		Jobs:       jobs,
		Parameters: params,
		Synthetic:  result.Synthetic,
	}
	a.record(req, intent.JobSearch, lang, reply.Response, "completed", len(jobs), start)
	return reply
}

// DraftLetter writes a cover letter. Generation failures yield the static
// draft for the detected language.
func (a *Assistant) DraftLetter(ctx context.Context, req Request) LetterReply {
	start := a.now()
	draft := a.deps.Drafter.Draft(ctx, req.Message, req.Profile, req.Language)
	text := textFor(draft.Language)

	reply := LetterReply{Type: ReplyCoverLetter, Response: text.letter, LetterUpdates: draft}
	status := "completed"
	if draft.Fallback {
		reply.Response = text.letterFallback
		status = "fallback"
	}
	a.record(req, intent.CoverLetter, draft.Language, reply.Response, status, 0, start)
	return reply
}

// StreamChat answers an open-chat message as a sequence of events on sink.
func (a *Assistant) StreamChat(ctx context.Context, req Request, sink stream.Sink) stream.Outcome {
	start := a.now()
	lang := letter.DetectLanguage(req.Message, req.Language)
	messages := a.deps.Composer.Compose(composer.ChatInstructions(lang), req.Profile, req.History, req.Message)

	out := a.deps.Assembler.Run(ctx, messages, sink)
	if out.Err != nil {
		slog.Warn("chat stream ended early", "status", out.Status, "error", out.Err)
	}
	a.record(req, intent.OpenChat, lang, out.Response, string(out.Status), 0, start)
	return out
}

func (a *Assistant) record(req Request, kind intent.Intent, lang locale.Language, response, status string, results int, start time.Time) {
	if a.deps.Recorder == nil {
		return
	}
	err := a.deps.Recorder.SaveInteraction(storage.Interaction{
		ID:          uuid.New().String(),
		CreatedAt:   start.UTC(),
		Intent:      string(kind),
		Language:    string(lang),
		UserQuery:   req.Message,
		Response:    response,
		Status:      status,
		DurationMs:  a.now().Sub(start).Milliseconds(),
		ResultCount: results,
	})
	if err != nil {
		slog.Warn("failed to record interaction", "intent", kind, "error", err)
	}
}

func displayQuery(p intent.SearchParameters) string {
	if p.JobTitle != "" {
		return p.JobTitle
	}
	if len(p.SearchQueries) > 0 {
		return p.SearchQueries[0]
	}
	return intent.GenericRole
}

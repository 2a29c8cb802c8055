package intent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/engine"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/payload"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/profile"
)

const (
	reasoningTimeout = 10 * time.Second
	maxQueries       = 3
)

// Chatter is the slice of engine.Engine the extractor needs.
type Chatter interface {
	Chat(ctx context.Context, model string, messages []engine.Message, jsonSchema *engine.Schema) (string, error)
}

// SearchParameters is the structured form of a job-search request.
type SearchParameters struct {
	JobTitle            string   `json:"jobTitle,omitempty"`
	Location            string   `json:"location,omitempty"`
	Skills              []string `json:"skills"`
	SearchQueries       []string `json:"searchQueries"`
	Reasoning           string   `json:"reasoning,omitempty"`
	UseCandidateProfile bool     `json:"useCandidateProfile"`
	HasEnoughInfo       bool     `json:"hasEnoughInfo"`
}

// Extractor turns a message into SearchParameters with a reasoning call,
// falling back to pattern heuristics.
type Extractor struct {
	client Chatter
	model  string
}

// NewExtractor creates an Extractor. A nil client disables the reasoning
// call and always uses the heuristics.
func NewExtractor(client Chatter, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// Extract never fails: a reasoning error, timeout or unusable reply falls
// back to the heuristics. HasEnoughInfo is false when neither path nor the
// profile yields a query.
func (e *Extractor) Extract(ctx context.Context, message string, p *profile.CandidateProfile) SearchParameters {
	if params, ok := e.reason(ctx, message, p); ok {
		return params
	}
	return Heuristic(message, p)
}

func (e *Extractor) reason(ctx context.Context, message string, p *profile.CandidateProfile) (SearchParameters, bool) {
	if e.client == nil || strings.TrimSpace(message) == "" {
		return SearchParameters{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, reasoningTimeout)
	defer cancel()

	raw, err := e.client.Chat(ctx, e.model, BuildPrompt(message, p.Digest()), searchSchema())
	if err != nil {
		slog.Warn("search parameter reasoning failed, using heuristics", "error", err)
		return SearchParameters{}, false
	}

	var params SearchParameters
	if err := payload.Decode(raw, &params); err != nil {
		slog.Warn("search parameter reply unusable, using heuristics", "error", err)
		return SearchParameters{}, false
	}

	params.JobTitle = strings.TrimSpace(params.JobTitle)
	params.Location = strings.TrimSpace(params.Location)
	params.Skills = dedupe(params.Skills, 0)
	if params.JobTitle == "" && len(params.Skills) == 0 {
		slog.Debug("search parameter reply has no title or skills", "reply", raw)
		return SearchParameters{}, false
	}

	params.SearchQueries = dedupe(params.SearchQueries, maxQueries)
	if len(params.SearchQueries) == 0 {
		if params.JobTitle != "" {
			params.SearchQueries = []string{params.JobTitle}
		} else {
			params.SearchQueries = dedupe(params.Skills, maxQueries)
		}
	}
	params.HasEnoughInfo = len(params.SearchQueries) > 0
	return params, true
}

// dedupe trims values, drops blanks and case-insensitive duplicates, and
// keeps at most limit entries (limit <= 0 keeps all). It never returns nil.
func dedupe(values []string, limit int) []string {
	out := []string{}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// searchSchema describes the reasoning reply for backends that accept one.
func searchSchema() *engine.Schema {
	return &engine.Schema{
		Type: "object",
		Properties: map[string]engine.SchemaProperty{
			"jobTitle":            {Type: "string", Description: "Role the user is looking for"},
			"location":            {Type: "string", Description: "City or country, empty when not given"},
			"skills":              {Type: "array", Description: "Relevant skills"},
			"searchQueries":       {Type: "array", Description: "Three search queries, most specific first"},
			"reasoning":           {Type: "string", Description: "Short explanation of the choices"},
			"useCandidateProfile": {Type: "boolean", Description: "Whether the profile filled in missing details"},
			"hasEnoughInfo":       {Type: "boolean", Description: "Whether a search can run"},
		},
		Required: []string{"jobTitle", "location", "skills", "searchQueries", "useCandidateProfile", "hasEnoughInfo"},
	}
}

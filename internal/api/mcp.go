package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/intent"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/pipeline"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
)

// MCPDeps holds dependencies for the MCP server. Store is optional; without
// it the recent-interactions resource is not registered.
type MCPDeps struct {
	Assistant       *pipeline.Assistant
	Store           *storage.Store
	MaxProfileBytes int
}

// NewMCPServer creates an MCP server exposing the assistant's tasks as tools.
func NewMCPServer(deps MCPDeps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"hirekit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("hirekit: job search, cover letter drafting and request routing for a candidate profile."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_jobs",
			mcp.WithDescription("Search job listings for a free-text request and rank them against an optional candidate profile."),
			mcp.WithString("message", mcp.Description("What the user is looking for, e.g. \"nurse jobs in Utrecht\""), mcp.Required()),
			mcp.WithString("profile", mcp.Description("Candidate profile as a JSON object")),
			mcp.WithString("language", mcp.Description("Reply language: en, nl, de, fr or es")),
		),
		mcpSearchJobs(deps),
	)

	s.AddTool(
		mcp.NewTool("draft_cover_letter",
			mcp.WithDescription("Draft a cover letter in the language of the request."),
			mcp.WithString("message", mcp.Description("The letter request, including the target company and role"), mcp.Required()),
			mcp.WithString("profile", mcp.Description("Candidate profile as a JSON object")),
			mcp.WithString("language", mcp.Description("Preferred language when the request has no language cues")),
		),
		mcpDraftCoverLetter(deps),
	)

	s.AddTool(
		mcp.NewTool("classify_intent",
			mcp.WithDescription("Classify a message as job_search, cover_letter or open_chat."),
			mcp.WithString("message", mcp.Description("Message to classify"), mcp.Required()),
		),
		mcpClassifyIntent(),
	)

	if deps.Store != nil {
		s.AddResource(
			mcp.NewResource(
				"hirekit://interactions/recent",
				"Recent Interactions",
				mcp.WithResourceDescription("Last 10 handled requests"),
				mcp.WithMIMEType("application/json"),
			),
			mcpResourceRecent(deps),
		)
	}

	return s
}

func mcpRequest(deps MCPDeps, req mcp.CallToolRequest) (pipeline.Request, *mcp.CallToolResult) {
	message, err := req.RequireString("message")
	if err != nil {
		return pipeline.Request{}, mcpError("message is required")
	}

	parsed, err := pipeline.ParseRequest(pipeline.ChatRequest{
		Message:            message,
		CandidateProfile:   json.RawMessage(req.GetString("profile", "")),
		LanguagePreference: req.GetString("language", ""),
	}, deps.MaxProfileBytes)
	if err != nil {
		return pipeline.Request{}, mcpError(err.Error())
	}
	return parsed, nil
}

func mcpSearchJobs(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parsed, errResult := mcpRequest(deps, req)
		if errResult != nil {
			return errResult, nil
		}
		return mcpJSON(deps.Assistant.SearchJobs(ctx, parsed)), nil
	}
}

func mcpDraftCoverLetter(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		parsed, errResult := mcpRequest(deps, req)
		if errResult != nil {
			return errResult, nil
		}
		return mcpJSON(deps.Assistant.DraftLetter(ctx, parsed)), nil
	}
}

func mcpClassifyIntent() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		return mcpText(string(intent.Classify(message))), nil
	}
}

func mcpResourceRecent(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		interactions, err := deps.Store.GetRecentInteractions(10)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent interactions: %w", err)
		}

		type interactionSummary struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Intent    string `json:"intent"`
			Query     string `json:"query"`
			Status    string `json:"status"`
		}

		summaries := make([]interactionSummary, len(interactions))
		for i, ix := range interactions {
			query := ix.UserQuery
			if utf8.RuneCountInString(query) > 200 {
				runes := []rune(query)
				query = string(runes[:200]) + "..."
			}
			summaries[i] = interactionSummary{
				ID:        ix.ID,
				CreatedAt: ix.CreatedAt.Format(time.RFC3339),
				Intent:    ix.Intent,
				Query:     query,
				Status:    ix.Status,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal interactions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpJSON(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err))
	}
	return mcpText(string(b))
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

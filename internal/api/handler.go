package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/LadFoxTom/hirekit-app-sub001/internal/intent"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/pipeline"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/storage"
	"github.com/LadFoxTom/hirekit-app-sub001/internal/stream"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps wires the HTTP handler. Store is optional; without it the
// interaction routes are not mounted. When Token is set those routes
// require it as a bearer token.
type Deps struct {
	Assistant       *pipeline.Assistant
	Store           *storage.Store
	Token           string
	MaxProfileBytes int
}

// NewHandler returns the assistant's HTTP API.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Post("/v1/assistant/chat", handleChat(deps))
	r.Post("/v1/jobs/search", handleSearchJobs(deps))
	r.Post("/v1/letters/draft", handleDraftLetter(deps))

	if deps.Store != nil {
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.Token))
			r.Get("/interactions", handleListInteractions(deps))
			r.Get("/interactions/{id}", handleGetInteraction(deps))
			r.Delete("/interactions/{id}", handleDeleteInteraction(deps))
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleChat routes the message and answers with a JSON reply for job
// search and letters, or an event stream for open chat.
func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r, deps.MaxProfileBytes)
		if !ok {
			return
		}

		switch deps.Assistant.Route(req) {
		case intent.JobSearch:
			writeJSON(w, deps.Assistant.SearchJobs(r.Context(), req))
		case intent.CoverLetter:
			writeJSON(w, deps.Assistant.DraftLetter(r.Context(), req))
		default:
			sse, err := stream.NewSSEWriter(w)
			if err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
				return
			}
			deps.Assistant.StreamChat(r.Context(), req, sse)
		}
	}
}

func handleSearchJobs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r, deps.MaxProfileBytes)
		if !ok {
			return
		}
		writeJSON(w, deps.Assistant.SearchJobs(r.Context(), req))
	}
}

func handleDraftLetter(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest(w, r, deps.MaxProfileBytes)
		if !ok {
			return
		}
		writeJSON(w, deps.Assistant.DraftLetter(r.Context(), req))
	}
}

// decodeRequest reads and validates the request body. It writes the error
// response itself and reports whether handling should continue.
func decodeRequest(w http.ResponseWriter, r *http.Request, maxProfileBytes int) (pipeline.Request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var in pipeline.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "request body exceeds %d bytes", tooLarge.Limit)
			return pipeline.Request{}, false
		}
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return pipeline.Request{}, false
	}

	req, err := pipeline.ParseRequest(in, maxProfileBytes)
	if errors.Is(err, pipeline.ErrProfileTooLarge) {
		httpError(w, http.StatusRequestEntityTooLarge, "invalid_request_error", "%v", err)
		return pipeline.Request{}, false
	}
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return pipeline.Request{}, false
	}
	return req, true
}

func handleListInteractions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)
		offset := parseIntParam(r, "offset", 0, 0)

		interactions, err := deps.Store.ListInteractions(r.URL.Query().Get("intent"), limit, offset)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list interactions: %v", err)
			return
		}
		writeJSON(w, interactions)
	}
}

func handleGetInteraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		interaction, err := deps.Store.GetInteraction(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "interaction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get interaction: %v", err)
			return
		}
		writeJSON(w, interaction)
	}
}

func handleDeleteInteraction(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Store.DeleteInteraction(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "interaction not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete interaction: %v", err)
			return
		}
		writeJSON(w, map[string]string{"status": "deleted"})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

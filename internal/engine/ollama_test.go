package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func tagsJSON(names ...string) []byte {
	type entry struct {
		Name string `json:"name"`
	}
	type resp struct {
		Models []entry `json:"models"`
	}
	r := resp{}
	for _, n := range names {
		r.Models = append(r.Models, entry{Name: n})
	}
	b, _ := json.Marshal(r)
	return b
}

func TestOllamaEngine_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "happy to help with your search"},
		})
	}))
	defer srv.Close()

	e := NewOllamaEngine(srv.URL)
	result, err := e.Chat(context.Background(), "llama3.2", []Message{
		{Role: "user", Content: "hi"},
	}, nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result != "happy to help with your search" {
		t.Errorf("got %q, want %q", result, "happy to help with your search")
	}
}

func TestOllamaEngine_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		enc := json.NewEncoder(w)
		enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": "Dear "}})
		enc.Encode(map[string]any{"message": map[string]string{"role": "assistant", "content": "hiring team"}})
		enc.Encode(map[string]any{"done": true})
	}))
	defer srv.Close()

	e := NewOllamaEngine(srv.URL)
	var got strings.Builder
	err := e.Stream(context.Background(), "llama3.2", []Message{{Role: "user", Content: "draft"}}, func(s string) error {
		got.WriteString(s)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if got.String() != "Dear hiring team" {
		t.Errorf("streamed %q, want %q", got.String(), "Dear hiring team")
	}
}

func TestOllamaEngine_IsRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(tagsJSON("llama3.2:latest"))
	}))
	defer srv.Close()

	e := NewOllamaEngine(srv.URL)
	if !e.IsRunning(context.Background()) {
		t.Error("IsRunning() = false, want true")
	}
}

func TestOllamaEngine_IsRunning_Down(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	e := NewOllamaEngine(srv.URL)
	if e.IsRunning(context.Background()) {
		t.Error("IsRunning() = true, want false")
	}
}

func TestOllamaEngine_HasModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(tagsJSON("llama3.2:latest", "qwen2.5:latest"))
	}))
	defer srv.Close()

	e := NewOllamaEngine(srv.URL)
	if !e.HasModel(context.Background(), "llama3.2") {
		t.Error("HasModel(llama3.2) = false, want true")
	}
	if e.HasModel(context.Background(), "llama3") {
		t.Error("HasModel(llama3) = true, want false")
	}
}

func TestOllamaEngine_PullModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pull" {
			http.NotFound(w, r)
			return
		}
		enc := json.NewEncoder(w)
		enc.Encode(map[string]any{"status": "downloading", "total": 1000, "completed": 500})
		enc.Encode(map[string]any{"status": "downloading", "total": 1000, "completed": 1000})
		enc.Encode(map[string]any{"status": "success"})
	}))
	defer srv.Close()

	e := NewOllamaEngine(srv.URL)
	var progressCount int
	err := e.PullModel(context.Background(), "llama3.2", func(p PullProgress) {
		progressCount++
	})
	if err != nil {
		t.Fatalf("PullModel: %v", err)
	}
	if progressCount != 3 {
		t.Errorf("received %d progress updates, want 3", progressCount)
	}
}

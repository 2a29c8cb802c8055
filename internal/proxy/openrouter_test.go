package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testMessages(t *testing.T) json.RawMessage {
	t.Helper()
	msgs, err := json.Marshal([]map[string]string{{"role": "user", "content": "Summarize my CV"}})
	if err != nil {
		t.Fatal(err)
	}
	return msgs
}

func TestChat_PassesBodyThrough(t *testing.T) {
	cases := []struct {
		name        string
		stream      bool
		contentType string
		body        string
	}{
		{
			name:        "streaming",
			stream:      true,
			contentType: "text/event-stream",
			body: "data: {\"id\":\"gen-1\",\"choices\":[{\"delta\":{\"content\":\"Your CV\"}}]}\n\n" +
				"data: {\"id\":\"gen-1\",\"choices\":[{\"delta\":{\"content\":\" looks strong.\"}}]}\n\ndata: [DONE]\n\n",
		},
		{
			name:        "non-streaming",
			contentType: "application/json",
			body:        `{"id":"gen-2","choices":[{"message":{"role":"assistant","content":"Dear Hiring Manager,"}}]}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sent ChatRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&sent)
				w.Header().Set("Content-Type", tc.contentType)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			c := NewClientWithBaseURL("test-key", srv.URL)
			rc, err := c.Chat(context.Background(), ChatRequest{
				Model:    "openai/gpt-4o-mini",
				Messages: testMessages(t),
				Stream:   tc.stream,
			})
			if err != nil {
				t.Fatalf("Chat: %v", err)
			}
			defer rc.Close()

			body, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("reading body: %v", err)
			}
			if string(body) != tc.body {
				t.Errorf("body = %q, want %q", string(body), tc.body)
			}
			if sent.Stream != tc.stream || sent.Model != "openai/gpt-4o-mini" {
				t.Errorf("sent request = %+v", sent)
			}
		})
	}
}

func TestChat_Headers(t *testing.T) {
	var got http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","choices":[]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	rc, err := c.Chat(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	rc.Close()

	if got.Get("Authorization") != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", got.Get("Authorization"))
	}
	if got.Get("X-Title") != "hirekit" {
		t.Errorf("X-Title = %q, want hirekit", got.Get("X-Title"))
	}
	if got.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got.Get("Content-Type"))
	}
}

func TestChat_RateLimit_Retry(t *testing.T) {
	var attempt atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempt.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","choices":[]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	rc, err := c.Chat(context.Background(), ChatRequest{
		Model:    "test",
		Messages: testMessages(t),
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	rc.Close()

	if got := attempt.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestChat_RateLimit_Exhausted(t *testing.T) {
	var attempt atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempt.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Chat(context.Background(), ChatRequest{
		Model:    "test",
		Messages: testMessages(t),
	})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}

	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "rate limited")
	}

	if got := attempt.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestChat_ContextCancellation(t *testing.T) {
	handlerStarted := make(chan struct{})
	handlerDone := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(handlerStarted)
		// Write headers but delay the body to simulate a slow response.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		// Block until test signals us to stop (after client cancel verified).
		<-handlerDone
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		c := NewClientWithBaseURL("test-key", srv.URL)
		rc, err := c.Chat(ctx, ChatRequest{
			Model:    "test",
			Messages: testMessages(t),
			Stream:   true,
		})
		if err != nil {
			done <- err
			return
		}
		// For streaming, Chat returns immediately with body. Reading should fail on cancel.
		_, err = io.ReadAll(rc)
		rc.Close()
		done <- err
	}()

	// Wait for the handler to start, then cancel the client context.
	<-handlerStarted
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after context cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Chat did not return promptly after context cancellation")
	}

	// Unblock the server handler so it can close cleanly.
	close(handlerDone)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		list := ModelList{
			Object: "list",
			Data: []Model{
				{ID: "anthropic/claude-opus-4", Object: "model"},
				{ID: "openai/gpt-4o", Object: "model"},
				{ID: "meta/llama-3-70b", Object: "model"},
			},
		}
		json.NewEncoder(w).Encode(list)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	if len(models) != 3 {
		t.Fatalf("got %d models, want 3", len(models))
	}

	want := []string{"anthropic/claude-opus-4", "openai/gpt-4o", "meta/llama-3-70b"}
	for i, w := range want {
		if models[i].ID != w {
			t.Errorf("models[%d].ID = %q, want %q", i, models[i].ID, w)
		}
	}
}

func TestListModels_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list := ModelList{Object: "list", Data: nil}
		json.NewEncoder(w).Encode(list)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}

	if len(models) != 0 {
		t.Errorf("got %d models, want 0", len(models))
	}
}

func TestChat_MissingAPIKey(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("", srv.URL)
	_, err := c.Chat(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if called.Load() {
		t.Error("upstream was called without credentials")
	}
}

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, `{"id":"gen-1","choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	req := ChatRequest{Model: "test", Messages: testMessages(t)}.WithJSONResponse()
	got, err := c.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("content = %q, want %q", got, `{"ok":true}`)
	}
	if string(gotBody["response_format"]) != `{"type":"json_object"}` {
		t.Errorf("response_format = %s, want json_object", gotBody["response_format"])
	}
	if _, ok := gotBody["stream"]; ok {
		t.Error("non-streaming request should omit stream")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"gen-1","choices":[]}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := c.Complete(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestStreamContent_Deltas(t *testing.T) {
	sseData := ": keep-alive\n\n" +
		"data: {\"choices\":[{\"delta\":{\"role\":\"assistant\",\"content\":\"\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n" +
		"data: [DONE]\n\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseData)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	var parts []string
	err := c.StreamContent(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)}, func(s string) error {
		parts = append(parts, s)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamContent: %v", err)
	}
	if strings.Join(parts, "|") != "Hello| world" {
		t.Errorf("deltas = %q, want [Hello, world]", parts)
	}
}

func TestStreamContent_CallbackErrorStops(t *testing.T) {
	sseData := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sseData)
	}))
	defer srv.Close()

	stop := errors.New("stop")
	calls := 0
	c := NewClientWithBaseURL("test-key", srv.URL)
	err := c.StreamContent(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)}, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReadStream_MalformedChunk(t *testing.T) {
	err := ReadStream(strings.NewReader("data: {not json}\n\n"), func(ChatChunk) error { return nil })
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestReadStream_UpstreamErrorChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"overloaded\"}}\n\n")
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	err := c.StreamContent(context.Background(), ChatRequest{Model: "test", Messages: testMessages(t)}, func(string) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "overloaded") {
		t.Fatalf("err = %v, want upstream overloaded error", err)
	}
}

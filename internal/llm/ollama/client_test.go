package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/fairhire/biasprobe/internal/llm"
)

func newTestServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("streaming must be disabled")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
}

func TestSubmitReturnsResponseText(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, generateResponse{Response: "the score is 77"})
	defer srv.Close()

	client := New(srv.URL, "test-model", zap.NewNop())
	resp, err := client.Submit(context.Background(), llm.Request{Prompt: "score this resume"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "the score is 77" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}

func TestSubmitClassifiesServerErrorsTransient(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTooManyRequests} {
		srv := newTestServer(t, status, generateResponse{Error: "busy"})
		client := New(srv.URL, "test-model", zap.NewNop())

		_, err := client.Submit(context.Background(), llm.Request{Prompt: "x"})
		srv.Close()

		if !llm.IsTransient(err) {
			t.Fatalf("status %d: expected transient error, got %v", status, err)
		}
	}
}

func TestSubmitClassifiesClientErrorsFatal(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound} {
		srv := newTestServer(t, status, generateResponse{Error: "model not found"})
		client := New(srv.URL, "test-model", zap.NewNop())

		_, err := client.Submit(context.Background(), llm.Request{Prompt: "x"})
		srv.Close()

		if !llm.IsFatal(err) {
			t.Fatalf("status %d: expected fatal error, got %v", status, err)
		}
	}
}

func TestSubmitEmptyResponseIsTransient(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, generateResponse{Response: "   "})
	defer srv.Close()

	client := New(srv.URL, "test-model", zap.NewNop())
	_, err := client.Submit(context.Background(), llm.Request{Prompt: "x"})
	if !llm.IsTransient(err) {
		t.Fatalf("expected transient error for empty response, got %v", err)
	}
}

func TestSubmitConnectionRefusedIsTransient(t *testing.T) {
	client := New("http://127.0.0.1:1", "test-model", zap.NewNop())
	_, err := client.Submit(context.Background(), llm.Request{Prompt: "x"})
	if !llm.IsTransient(err) {
		t.Fatalf("expected transient error for refused connection, got %v", err)
	}
}

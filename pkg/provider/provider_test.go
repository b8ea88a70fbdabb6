package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Error("NewClient without API key should fail")
	}
}

func TestChat(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "<move>R1 L</move>", "reasoning": "thinking"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15, "cost": 0.001}
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	reply, reasoning, usage, err := c.Chat(context.Background(), "test/model", []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "<move>R1 L</move>" {
		t.Errorf("reply = %q", reply)
	}
	if reasoning != "thinking" {
		t.Errorf("reasoning = %q", reasoning)
	}
	if usage.TotalTokens != 15 || usage.Cost != 0.001 {
		t.Errorf("usage = %+v", usage)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.Model != "test/model" || len(gotBody.Messages) != 1 {
		t.Errorf("request body = %+v", gotBody)
	}
	if !gotBody.Usage.Include {
		t.Error("usage.include should be set")
	}
}

func TestChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, _, _, err := c.Chat(context.Background(), "m", nil); err == nil {
		t.Error("Chat should surface HTTP errors")
	}
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "model not found"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Options{BaseURL: srv.URL, APIKey: "k"})
	_, _, _, err := c.Chat(context.Background(), "m", nil)
	if err == nil {
		t.Fatal("Chat should surface API errors")
	}
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, _, _, err := c.Chat(context.Background(), "m", nil); err == nil {
		t.Error("Chat should fail on empty choices")
	}
}

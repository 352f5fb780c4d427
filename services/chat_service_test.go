package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"autogenics-server/config"
)

func setupChatConfig(t *testing.T, upstreamURL string) {
	t.Helper()
	config.Load()
	config.AppConfig.Chat.GeminiAPIKey = "test-key"
	config.AppConfig.Chat.GeminiAPIURL = upstreamURL
}

func TestCompleteReturnsGeneratedText(t *testing.T) {
	var gotRequest geminiRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "We recommend the Premium Detail."}},
				}},
			},
		})
	}))
	defer upstream.Close()

	setupChatConfig(t, upstream.URL)

	history := []ChatMessage{
		{Role: RoleAssistant, Content: Greeting},
		{Role: RoleUser, Content: "What do you offer?"},
	}

	reply, err := NewChatService().Complete("Which package fits a new car?", history)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "We recommend the Premium Detail." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// Prompt turn + ack + 2 history turns + current message
	if len(gotRequest.Contents) != 5 {
		t.Fatalf("expected 5 content turns, got %d", len(gotRequest.Contents))
	}
	if gotRequest.Contents[0].Role != "user" || gotRequest.Contents[1].Role != "model" {
		t.Fatalf("prompt turns have wrong roles: %s, %s", gotRequest.Contents[0].Role, gotRequest.Contents[1].Role)
	}
	// Assistant history maps onto the model role
	if gotRequest.Contents[2].Role != "model" {
		t.Fatalf("expected assistant history as model role, got %s", gotRequest.Contents[2].Role)
	}
	last := gotRequest.Contents[len(gotRequest.Contents)-1]
	if last.Role != "user" || last.Parts[0].Text != "Which package fits a new car?" {
		t.Fatalf("last turn should be the current message, got %+v", last)
	}
}

func TestCompleteUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	setupChatConfig(t, upstream.URL)

	if _, err := NewChatService().Complete("hello", nil); err == nil {
		t.Fatal("expected error from failing upstream")
	}
}

func TestCompleteEmptyCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	setupChatConfig(t, upstream.URL)

	if _, err := NewChatService().Complete("hello", nil); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	config.Load()
	config.AppConfig.Chat.GeminiAPIKey = ""

	if _, err := NewChatService().Complete("hello", nil); !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
}

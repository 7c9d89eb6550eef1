package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/tools"
)

func completionResponse(t *testing.T, w http.ResponseWriter, message map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-4",
		"choices": []map[string]any{{"index": 0, "message": message, "finish_reason": "stop"}},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunPlainAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		completionResponse(t, w, map[string]any{
			"role":    "assistant",
			"content": "Berlin is the capital of Germany.",
		})
	}))
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "gpt-4", server.URL, "You are a test agent.", nil)
	if err != nil {
		t.Fatal(err)
	}

	result, err := client.Run(context.Background(), "What is the capital of Germany?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Kind != ResultMessages {
		t.Errorf("result kind = %v", result.Kind)
	}
	if got := result.Reply(); got != "Berlin is the capital of Germany." {
		t.Errorf("Reply = %q", got)
	}
	if len(result.Messages) != 2 || result.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", result.Messages)
	}
}

func TestRunWithToolCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			completionResponse(t, w, map[string]any{
				"role": "assistant",
				"tool_calls": []map[string]any{{
					"id":   "call_1",
					"type": "function",
					"function": map[string]any{
						"name":      "echo",
						"arguments": `{"value":"hi"}`,
					},
				}},
			})
			return
		}
		completionResponse(t, w, map[string]any{
			"role":    "assistant",
			"content": "The tool said: echoed: hi",
		})
	}))
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "gpt-4", server.URL, "instructions", []tools.Tool{echoTool{}})
	if err != nil {
		t.Fatal(err)
	}

	result, err := client.Run(context.Background(), "run the echo tool")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 {
		t.Errorf("model called %d times, want 2", calls)
	}
	if got := result.Reply(); got != "The tool said: echoed: hi" {
		t.Errorf("Reply = %q", got)
	}

	// The tool output must appear in the transcript.
	found := false
	for _, m := range result.Messages {
		if m.Role == "tool" && m.Content == "echoed: hi" {
			found = true
		}
	}
	if !found {
		t.Errorf("tool output missing from transcript: %+v", result.Messages)
	}
}

func TestRunServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewOpenAIClient("test-key", "gpt-4", server.URL, "instructions", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Run(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from failing backend")
	} else if got := fmt.Sprintf("%v", err); got == "" {
		t.Errorf("empty error text")
	}
}

package llm

import (
	"encoding/json"
	"testing"
)

func TestGollmAdapterTranslateError(t *testing.T) {
	adapter := &GollmAdapter{provider: "openai"}

	tests := []struct {
		errMsg   string
		expected string
	}{
		{"401 Unauthorized", "AuthenticationError"},
		{"invalid api key", "AuthenticationError"},
		{"403 Forbidden", "AccessDeniedError"},
		{"404 not found", "NotFoundError"},
		{"429 rate limit exceeded", "RateLimitError"},
		{"context length exceeded", "ContextLengthError"},
		{"500 internal server error", "ServerError"},
		{"timeout waiting for response", "RequestTimeoutError"},
		{"content filter triggered", "ContentFilterError"},
		{"something unknown", "ProviderError"},
	}

	for _, tt := range tests {
		err := adapter.translateError(errForMsg(tt.errMsg))
		if err == nil {
			t.Errorf("expected non-nil error for %q", tt.errMsg)
			continue
		}
		switch tt.expected {
		case "AuthenticationError":
			if _, ok := err.(*AuthenticationError); !ok {
				t.Errorf("for %q: expected AuthenticationError, got %T", tt.errMsg, err)
			}
		case "AccessDeniedError":
			if _, ok := err.(*AccessDeniedError); !ok {
				t.Errorf("for %q: expected AccessDeniedError, got %T", tt.errMsg, err)
			}
		case "NotFoundError":
			if _, ok := err.(*NotFoundError); !ok {
				t.Errorf("for %q: expected NotFoundError, got %T", tt.errMsg, err)
			}
		case "RateLimitError":
			if _, ok := err.(*RateLimitError); !ok {
				t.Errorf("for %q: expected RateLimitError, got %T", tt.errMsg, err)
			}
		case "ContextLengthError":
			if _, ok := err.(*ContextLengthError); !ok {
				t.Errorf("for %q: expected ContextLengthError, got %T", tt.errMsg, err)
			}
		case "ServerError":
			if _, ok := err.(*ServerError); !ok {
				t.Errorf("for %q: expected ServerError, got %T", tt.errMsg, err)
			}
		case "RequestTimeoutError":
			if _, ok := err.(*RequestTimeoutError); !ok {
				t.Errorf("for %q: expected RequestTimeoutError, got %T", tt.errMsg, err)
			}
		case "ContentFilterError":
			if _, ok := err.(*ContentFilterError); !ok {
				t.Errorf("for %q: expected ContentFilterError, got %T", tt.errMsg, err)
			}
		case "ProviderError":
			if _, ok := err.(*ProviderError); !ok {
				t.Errorf("for %q: expected ProviderError, got %T", tt.errMsg, err)
			}
		}
	}
}

type simpleError struct{ msg string }

func (e *simpleError) Error() string { return e.msg }
func errForMsg(msg string) error     { return &simpleError{msg: msg} }

func TestGollmAdapterSupportsToolChoice(t *testing.T) {
	adapter := &GollmAdapter{provider: "openai"}

	if !adapter.SupportsToolChoice("auto") {
		t.Error("expected auto to be supported")
	}
	if !adapter.SupportsToolChoice("none") {
		t.Error("expected none to be supported")
	}
	if !adapter.SupportsToolChoice("required") {
		t.Error("expected required to be supported")
	}
	if !adapter.SupportsToolChoice("named") {
		t.Error("expected named to be supported for openai")
	}
	if adapter.SupportsToolChoice("invalid") {
		t.Error("expected invalid to not be supported")
	}

	geminiAdapter := &GollmAdapter{provider: "gemini"}
	if geminiAdapter.SupportsToolChoice("named") {
		t.Error("expected named to not be supported for gemini")
	}
}

func TestGollmAdapterParseToolCalls(t *testing.T) {
	adapter := &GollmAdapter{provider: "openai"}

	t.Run("wrapper object", func(t *testing.T) {
		text := `I'll create that file now. {"tool_calls": [{"name": "write_to_file", "arguments": {"filename": "main.go", "content": "package main"}}]}`
		calls := adapter.parseToolCalls(text)
		if len(calls) != 1 {
			t.Fatalf("expected 1 tool call, got %d", len(calls))
		}
		if calls[0].Name != "write_to_file" {
			t.Errorf("expected name %q, got %q", "write_to_file", calls[0].Name)
		}
		var args map[string]interface{}
		if err := json.Unmarshal(calls[0].Arguments, &args); err != nil {
			t.Fatalf("arguments not valid JSON: %v", err)
		}
		if args["filename"] != "main.go" {
			t.Errorf("expected filename main.go, got %v", args["filename"])
		}
		if calls[0].ID == "" {
			t.Error("expected generated call ID")
		}
	})

	t.Run("bare array", func(t *testing.T) {
		text := `[{"name": "read_file", "arguments": {"filename": "go.mod"}}, {"name": "list_directory_contents", "arguments": {}}]`
		calls := adapter.parseToolCalls(text)
		if len(calls) != 2 {
			t.Fatalf("expected 2 tool calls, got %d", len(calls))
		}
		if calls[0].Name != "read_file" {
			t.Errorf("expected name %q, got %q", "read_file", calls[0].Name)
		}
		if calls[1].Name != "list_directory_contents" {
			t.Errorf("expected name %q, got %q", "list_directory_contents", calls[1].Name)
		}
	})

	t.Run("plain text", func(t *testing.T) {
		calls := adapter.parseToolCalls("The project structure is now complete.")
		if len(calls) != 0 {
			t.Errorf("expected no tool calls, got %d", len(calls))
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		calls := adapter.parseToolCalls(`{"tool_calls": [{"name": "broken`)
		if len(calls) != 0 {
			t.Errorf("expected no tool calls for malformed JSON, got %d", len(calls))
		}
	})

	t.Run("trailing text after json", func(t *testing.T) {
		text := `{"tool_calls": [{"name": "create_directory", "arguments": {"directory_name": "src"}}]} Done with planning.`
		calls := adapter.parseToolCalls(text)
		if len(calls) != 1 {
			t.Fatalf("expected 1 tool call, got %d", len(calls))
		}
		if calls[0].Name != "create_directory" {
			t.Errorf("expected name %q, got %q", "create_directory", calls[0].Name)
		}
	})
}

func TestGollmAdapterBuildResponse(t *testing.T) {
	adapter := &GollmAdapter{provider: "openai", model: "gpt-4o"}

	t.Run("text only", func(t *testing.T) {
		resp := adapter.buildResponse(Request{Model: "gpt-4o"}, "Hello there")
		if resp.Text() != "Hello there" {
			t.Errorf("expected text %q, got %q", "Hello there", resp.Text())
		}
		if resp.FinishReason.Reason != "stop" {
			t.Errorf("expected finish reason stop, got %q", resp.FinishReason.Reason)
		}
		if len(resp.ToolCalls()) != 0 {
			t.Errorf("expected no tool calls, got %d", len(resp.ToolCalls()))
		}
	})

	t.Run("embedded tool calls", func(t *testing.T) {
		text := `Setting up the project. {"tool_calls": [{"name": "create_directory", "arguments": {"directory_name": "src"}}]}`
		resp := adapter.buildResponse(Request{Model: "gpt-4o"}, text)
		calls := resp.ToolCalls()
		if len(calls) != 1 {
			t.Fatalf("expected 1 tool call, got %d", len(calls))
		}
		if calls[0].Name != "create_directory" {
			t.Errorf("expected name %q, got %q", "create_directory", calls[0].Name)
		}
		if resp.FinishReason.Reason != "tool_calls" {
			t.Errorf("expected finish reason tool_calls, got %q", resp.FinishReason.Reason)
		}
		if resp.Text() != "Setting up the project." {
			t.Errorf("expected preamble text preserved, got %q", resp.Text())
		}
	})

	t.Run("model fallback", func(t *testing.T) {
		resp := adapter.buildResponse(Request{}, "hi")
		if resp.Model != "gpt-4o" {
			t.Errorf("expected adapter model fallback, got %q", resp.Model)
		}
		if resp.Provider != "openai" {
			t.Errorf("expected provider openai, got %q", resp.Provider)
		}
	})
}

func TestStripToolCallJSON(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		hadCalls bool
		expected string
	}{
		{"no calls", "plain text", false, "plain text"},
		{"wrapper stripped", `before {"tool_calls": []}`, true, "before"},
		{"array stripped", `lead-in [{"name": "x"}]`, true, "lead-in"},
		{"only json", `{"tool_calls": []}`, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripToolCallJSON(tt.text, tt.hadCalls)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	req := Request{
		Messages: []Message{
			UserMessage("Hello world, this is a test message."),
		},
	}
	tokens := estimateTokens(req)
	if tokens <= 0 {
		t.Errorf("expected positive token estimate, got %d", tokens)
	}
}

func TestEstimateTokensEmpty(t *testing.T) {
	req := Request{Messages: []Message{}}
	tokens := estimateTokens(req)
	if tokens != 10 {
		t.Errorf("expected default token estimate of 10, got %d", tokens)
	}
}

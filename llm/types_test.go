package llm

import (
	"encoding/json"
	"testing"
)

func TestMessageConstructors(t *testing.T) {
	t.Run("SystemMessage", func(t *testing.T) {
		msg := SystemMessage("You are helpful.")
		if msg.Role != RoleSystem {
			t.Errorf("expected role %q, got %q", RoleSystem, msg.Role)
		}
		if msg.TextContent() != "You are helpful." {
			t.Errorf("expected text %q, got %q", "You are helpful.", msg.TextContent())
		}
	})

	t.Run("UserMessage", func(t *testing.T) {
		msg := UserMessage("Hello")
		if msg.Role != RoleUser {
			t.Errorf("expected role %q, got %q", RoleUser, msg.Role)
		}
		if msg.TextContent() != "Hello" {
			t.Errorf("expected text %q, got %q", "Hello", msg.TextContent())
		}
	})

	t.Run("AssistantMessage", func(t *testing.T) {
		msg := AssistantMessage("Hi there")
		if msg.Role != RoleAssistant {
			t.Errorf("expected role %q, got %q", RoleAssistant, msg.Role)
		}
		if msg.TextContent() != "Hi there" {
			t.Errorf("expected text %q, got %q", "Hi there", msg.TextContent())
		}
	})

	t.Run("ToolResultMessage", func(t *testing.T) {
		msg := ToolResultMessage("call_123", json.RawMessage(`"72F and sunny"`), false)
		if msg.Role != RoleTool {
			t.Errorf("expected role %q, got %q", RoleTool, msg.Role)
		}
		if msg.ToolCallID != "call_123" {
			t.Errorf("expected tool_call_id %q, got %q", "call_123", msg.ToolCallID)
		}
		if len(msg.Content) != 1 {
			t.Fatalf("expected 1 content part, got %d", len(msg.Content))
		}
		if msg.Content[0].Kind != ContentToolResult {
			t.Errorf("expected kind %q, got %q", ContentToolResult, msg.Content[0].Kind)
		}
		if msg.Content[0].ToolResult.IsError {
			t.Error("expected is_error false")
		}
	})
}

func TestContentPartConstructors(t *testing.T) {
	t.Run("TextPart", func(t *testing.T) {
		part := TextPart("hello")
		if part.Kind != ContentText {
			t.Errorf("expected kind %q, got %q", ContentText, part.Kind)
		}
		if part.Text != "hello" {
			t.Errorf("expected text %q, got %q", "hello", part.Text)
		}
	})

	t.Run("ToolCallPart", func(t *testing.T) {
		args := json.RawMessage(`{"filename": "main.go"}`)
		part := ToolCallPart("call_1", "read_file", args)
		if part.Kind != ContentToolCall {
			t.Errorf("expected kind %q, got %q", ContentToolCall, part.Kind)
		}
		if part.ToolCall.Name != "read_file" {
			t.Errorf("expected name %q, got %q", "read_file", part.ToolCall.Name)
		}
		if part.ToolCall.Type != "function" {
			t.Errorf("expected type %q, got %q", "function", part.ToolCall.Type)
		}
	})

	t.Run("ToolResultPart", func(t *testing.T) {
		part := ToolResultPart("call_9", json.RawMessage(`{"ok":true}`), true)
		if part.Kind != ContentToolResult {
			t.Errorf("expected kind %q, got %q", ContentToolResult, part.Kind)
		}
		if part.ToolResult.ToolCallID != "call_9" {
			t.Errorf("expected tool_call_id %q, got %q", "call_9", part.ToolResult.ToolCallID)
		}
		if !part.ToolResult.IsError {
			t.Error("expected is_error true")
		}
	})
}

func TestMessageTextContent(t *testing.T) {
	msg := Message{
		Role: RoleAssistant,
		Content: []ContentPart{
			TextPart("Hello "),
			ToolCallPart("call_1", "list_directory_contents", json.RawMessage(`{}`)),
			TextPart("world"),
		},
	}
	text := msg.TextContent()
	if text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", text)
	}
}

func TestMessageToolCalls(t *testing.T) {
	args1 := json.RawMessage(`{"filename":"a.go"}`)
	args2 := json.RawMessage(`{"filename":"b.go"}`)
	msg := Message{
		Role: RoleAssistant,
		Content: []ContentPart{
			TextPart("Creating the files."),
			ToolCallPart("call_1", "write_to_file", args1),
			ToolCallPart("call_2", "write_to_file", args2),
		},
	}
	calls := msg.ToolCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(calls))
	}
	if calls[0].Name != "write_to_file" {
		t.Errorf("expected name %q, got %q", "write_to_file", calls[0].Name)
	}
}

func TestUsageAdd(t *testing.T) {
	a := Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}
	b := Usage{InputTokens: 5, OutputTokens: 15, TotalTokens: 20}
	result := a.Add(b)

	if result.InputTokens != 15 {
		t.Errorf("expected input_tokens 15, got %d", result.InputTokens)
	}
	if result.OutputTokens != 35 {
		t.Errorf("expected output_tokens 35, got %d", result.OutputTokens)
	}
	if result.TotalTokens != 50 {
		t.Errorf("expected total_tokens 50, got %d", result.TotalTokens)
	}
}

func TestResponseAccessors(t *testing.T) {
	resp := Response{
		Message: Message{
			Role: RoleAssistant,
			Content: []ContentPart{
				TextPart("The answer is 42."),
				ToolCallPart("call_1", "run_command", json.RawMessage(`{"command":"ls"}`)),
			},
		},
	}

	if resp.Text() != "The answer is 42." {
		t.Errorf("expected text %q, got %q", "The answer is 42.", resp.Text())
	}

	calls := resp.ToolCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(calls))
	}
	if calls[0].Name != "run_command" {
		t.Errorf("expected tool name %q, got %q", "run_command", calls[0].Name)
	}
}

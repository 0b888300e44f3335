package genloop

import (
	"encoding/json"
	"time"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

// TurnKind discriminates between turn types.
type TurnKind string

const (
	TurnUser        TurnKind = "user"
	TurnAssistant   TurnKind = "assistant"
	TurnToolResults TurnKind = "tool_results"
)

// Turn is a single entry in the conversation history. The history is
// append-only for the lifetime of a generation session.
type Turn struct {
	Kind        TurnKind         `json:"kind"`
	Timestamp   time.Time        `json:"timestamp"`
	User        *UserTurn        `json:"user,omitempty"`
	Assistant   *AssistantTurn   `json:"assistant,omitempty"`
	ToolResults *ToolResultsTurn `json:"tool_results,omitempty"`
}

// UserTurn holds user input, including synthetic continuation prompts.
type UserTurn struct {
	Content string `json:"content"`
}

// AssistantTurn holds one planner response.
type AssistantTurn struct {
	Content    string         `json:"content"`
	ToolCalls  []llm.ToolCall `json:"tool_calls,omitempty"`
	Usage      llm.Usage      `json:"usage"`
	ResponseID string         `json:"response_id,omitempty"`
}

// ToolOutcome is the serialized result of one dispatched tool invocation.
// Payload is the operation's self-describing JSON record; Args is the
// decoded argument object kept for the action log (nil when the arguments
// were not a JSON object).
type ToolOutcome struct {
	CallID  string                 `json:"call_id"`
	Name    string                 `json:"name"`
	Args    map[string]interface{} `json:"args,omitempty"`
	Payload json.RawMessage        `json:"payload"`
}

// ToolResultsTurn holds the outcomes of one dispatched batch.
type ToolResultsTurn struct {
	Outcomes []ToolOutcome `json:"outcomes"`
}

// NewUserTurn creates a Turn wrapping user input.
func NewUserTurn(content string) Turn {
	return Turn{
		Kind:      TurnUser,
		Timestamp: time.Now(),
		User:      &UserTurn{Content: content},
	}
}

// NewAssistantTurn creates a Turn wrapping a planner response.
func NewAssistantTurn(content string, toolCalls []llm.ToolCall, usage llm.Usage, responseID string) Turn {
	return Turn{
		Kind:      TurnAssistant,
		Timestamp: time.Now(),
		Assistant: &AssistantTurn{
			Content:    content,
			ToolCalls:  toolCalls,
			Usage:      usage,
			ResponseID: responseID,
		},
	}
}

// NewToolResultsTurn creates a Turn wrapping a batch of tool outcomes.
func NewToolResultsTurn(outcomes []ToolOutcome) Turn {
	return Turn{
		Kind:        TurnToolResults,
		Timestamp:   time.Now(),
		ToolResults: &ToolResultsTurn{Outcomes: outcomes},
	}
}

// TextContent returns the text content of a turn regardless of its kind.
func (t Turn) TextContent() string {
	switch t.Kind {
	case TurnUser:
		if t.User != nil {
			return t.User.Content
		}
	case TurnAssistant:
		if t.Assistant != nil {
			return t.Assistant.Content
		}
	}
	return ""
}

// HistoryToMessages converts the turn-based history into planner messages.
// Tool outcomes become one tool-role message per invocation, answering the
// matching call ID.
func HistoryToMessages(history []Turn) []llm.Message {
	var messages []llm.Message
	for _, turn := range history {
		switch turn.Kind {
		case TurnUser:
			if turn.User != nil {
				messages = append(messages, llm.UserMessage(turn.User.Content))
			}
		case TurnAssistant:
			if turn.Assistant != nil {
				msg := llm.AssistantMessage(turn.Assistant.Content)
				for _, tc := range turn.Assistant.ToolCalls {
					msg.Content = append(msg.Content,
						llm.ToolCallPart(tc.ID, tc.Name, tc.Arguments))
				}
				messages = append(messages, msg)
			}
		case TurnToolResults:
			if turn.ToolResults != nil {
				for _, outcome := range turn.ToolResults.Outcomes {
					messages = append(messages,
						llm.ToolResultMessage(outcome.CallID, outcome.Payload, false))
				}
			}
		}
	}
	return messages
}

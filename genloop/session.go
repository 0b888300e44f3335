package genloop

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

// SessionState is the lifecycle state of a generation session.
type SessionState string

const (
	// StateAwaitingPlan means the session is about to ask the planner for
	// its next move.
	StateAwaitingPlan SessionState = "awaiting_plan"
	// StateDispatchingTools means a tool-call batch is being executed.
	StateDispatchingTools SessionState = "dispatching_tools"
	// StateAwaitingContinuation means the planner replied with text only
	// and the session is deciding whether that text declares completion.
	StateAwaitingContinuation SessionState = "awaiting_continuation"
	// StateComplete means the planner declared the project finished.
	StateComplete SessionState = "complete"
	// StateBudgetExhausted means the step ceiling was reached first.
	StateBudgetExhausted SessionState = "budget_exhausted"
	// StateFailed means a planner call failed mid-loop.
	StateFailed SessionState = "failed"
)

// Terminal reports whether a state ends the generation loop.
func (s SessionState) Terminal() bool {
	switch s {
	case StateComplete, StateBudgetExhausted, StateFailed:
		return true
	}
	return false
}

// SessionConfig holds configuration for a generation session.
type SessionConfig struct {
	MaxSteps        int    `json:"max_steps"`
	Model           string `json:"model"`
	Provider        string `json:"provider"`
	EventBufferSize int    `json:"event_buffer_size"`
}

// DefaultSessionConfig returns the default configuration: 25 planner steps
// against gpt-4o.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxSteps:        25,
		Model:           "gpt-4o",
		Provider:        "openai",
		EventBufferSize: 256,
	}
}

// ProjectRequest describes the project to generate.
type ProjectRequest struct {
	Type        string `json:"project_type"`
	Name        string `json:"project_name"`
	Description string `json:"description"`
}

// Session orchestrates one project generation: it drives the planner loop,
// dispatches tool calls into the workspace, and assembles the final summary.
type Session struct {
	id         string
	workspace  *Workspace
	registry   *ToolRegistry
	dispatcher *Dispatcher
	history    []Turn
	emitter    *EventEmitter
	config     SessionConfig
	state      SessionState
	client     *llm.Client
	logger     *zap.Logger
	mu         sync.Mutex
}

// NewSession creates a session over the given workspace. A nil config uses
// DefaultSessionConfig.
func NewSession(workspace *Workspace, config *SessionConfig) *Session {
	sessionID := uuid.New().String()

	cfg := DefaultSessionConfig()
	if config != nil {
		cfg = *config
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 25
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}

	logger := zap.NewNop()
	return &Session{
		id:         sessionID,
		workspace:  workspace,
		registry:   CoreRegistry(),
		dispatcher: NewDispatcher(workspace, logger),
		history:    make([]Turn, 0),
		emitter:    NewEventEmitter(sessionID, cfg.EventBufferSize),
		config:     cfg,
		state:      StateAwaitingPlan,
		client:     llm.GetDefaultClient(),
		logger:     logger,
	}
}

// SetClient sets a custom LLM client (overriding the default).
func (s *Session) SetClient(client *llm.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// SetLogger sets the session logger. Call before GenerateProject.
func (s *Session) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
	s.dispatcher = NewDispatcher(s.workspace, logger)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Workspace returns the workspace the session generates into.
func (s *Session) Workspace() *Workspace { return s.workspace }

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the conversation history.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := make([]Turn, len(s.history))
	copy(h, s.history)
	return h
}

// Events returns the event channel for the host application.
func (s *Session) Events() <-chan GenerationEvent {
	return s.emitter.Events()
}

// Close releases the event channel. The session cannot be reused after.
func (s *Session) Close() {
	s.emitter.Close()
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Session) appendTurn(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turn)
}

// GenerateProject runs the full generation loop for the requested project.
// It always returns a Summary: planner failures and budget exhaustion end
// the loop but still produce the report, with error records preserved.
func (s *Session) GenerateProject(ctx context.Context, req ProjectRequest) *Summary {
	start := time.Now()
	rec := NewRecorder(req.Name, req.Type)

	s.logger.Info("starting project generation",
		zap.String("session_id", s.id),
		zap.String("project_name", req.Name),
		zap.String("project_type", req.Type),
		zap.String("workspace", s.workspace.Root()))
	s.emitter.Emit(EventGenerationStart, map[string]interface{}{
		"project_name": req.Name,
		"project_type": req.Type,
	})

	s.setState(StateAwaitingPlan)
	s.appendTurn(NewUserTurn(initialUserPrompt(req.Type, req.Name, req.Description)))

	step := 0
	for {
		// The budget is checked before each planner call, so a session
		// makes at most MaxSteps calls (the closing synthesis aside).
		if step >= s.config.MaxSteps {
			s.setState(StateBudgetExhausted)
			s.logger.Warn("step budget exhausted", zap.Int("steps", step))
			s.emitter.Emit(EventStepLimit, map[string]interface{}{
				"steps": step,
			})
			break
		}
		if err := ctx.Err(); err != nil {
			rec.RecordError(step+1, err)
			s.setState(StateFailed)
			s.emitter.Emit(EventError, map[string]interface{}{
				"error": err.Error(),
			})
			break
		}

		step++
		s.emitter.Emit(EventPlanStep, map[string]interface{}{
			"step": step,
		})

		response, err := s.client.Complete(ctx, s.planRequest())
		if err != nil {
			s.logger.Error("planner call failed", zap.Int("step", step), zap.Error(err))
			rec.RecordError(step, err)
			s.setState(StateFailed)
			s.emitter.Emit(EventError, map[string]interface{}{
				"step":  step,
				"error": err.Error(),
			})
			break
		}

		toolCalls := response.ToolCalls()
		s.appendTurn(NewAssistantTurn(response.Text(), toolCalls, response.Usage, response.ID))
		s.checkContextUsage()

		if len(toolCalls) > 0 {
			s.setState(StateDispatchingTools)
			outcomes := s.dispatchBatch(ctx, step, toolCalls, rec)
			s.appendTurn(NewToolResultsTurn(outcomes))
			s.setState(StateAwaitingPlan)
			continue
		}

		s.setState(StateAwaitingContinuation)
		s.emitter.Emit(EventAssistantText, map[string]interface{}{
			"step": step,
			"text": response.Text(),
		})
		if isCompletionMessage(response.Text()) {
			s.setState(StateComplete)
			s.logger.Info("planner declared completion", zap.Int("steps", step))
			s.emitter.Emit(EventCompletion, map[string]interface{}{
				"step": step,
			})
			break
		}
		s.appendTurn(NewUserTurn(continuationPrompt))
		s.emitter.Emit(EventContinuation, map[string]interface{}{
			"step": step,
		})
		s.setState(StateAwaitingPlan)
	}

	summaryText := s.finalSynthesis(ctx)

	elapsed := time.Since(start)
	summary := rec.Summary(step, summaryText, elapsed)
	s.logger.Info("project generation finished",
		zap.String("state", string(s.State())),
		zap.Int("steps", step),
		zap.Int("files", summary.TotalFiles),
		zap.Int("directories", summary.TotalDirectories),
		zap.Float64("seconds", elapsed.Seconds()))
	s.emitter.Emit(EventGenerationEnd, map[string]interface{}{
		"state":       string(s.State()),
		"total_steps": step,
		"seconds":     elapsed.Seconds(),
	})
	return summary
}

// planRequest builds the planner request from the current history and the
// full operation registry.
func (s *Session) planRequest() llm.Request {
	messages := append(
		[]llm.Message{llm.SystemMessage(generationSystemPrompt)},
		HistoryToMessages(s.History())...)
	return llm.Request{
		Model:      s.config.Model,
		Provider:   s.config.Provider,
		Messages:   messages,
		ToolDefs:   s.registry.Definitions(),
		ToolChoice: &llm.ToolChoice{Mode: "auto"},
	}
}

// dispatchBatch executes one tool-call batch in order, recording each
// outcome and emitting batch and per-call events.
func (s *Session) dispatchBatch(ctx context.Context, step int, calls []llm.ToolCall, rec *Recorder) []ToolOutcome {
	s.emitter.Emit(EventToolBatch, map[string]interface{}{
		"step":  step,
		"count": len(calls),
	})
	outcomes := make([]ToolOutcome, len(calls))
	for i, call := range calls {
		s.emitter.Emit(EventToolCallStart, map[string]interface{}{
			"call_id": call.ID,
			"name":    call.Name,
		})
		outcome := s.dispatcher.DispatchCall(ctx, call)
		rec.RecordOutcome(step, outcome)
		s.emitter.Emit(EventToolCallEnd, map[string]interface{}{
			"call_id": call.ID,
			"name":    call.Name,
			"result":  string(outcome.Payload),
		})
		s.emitArtifact(outcome)
		outcomes[i] = outcome
	}
	return outcomes
}

// emitArtifact publishes file_created and dir_created events for write and
// mkdir outcomes that reported success.
func (s *Session) emitArtifact(outcome ToolOutcome) {
	var result successPayload
	if err := json.Unmarshal(outcome.Payload, &result); err != nil || !result.Success {
		return
	}
	switch OpKind(outcome.Name) {
	case OpWriteToFile:
		if name, ok := outcome.Args["filename"].(string); ok {
			s.emitter.Emit(EventFileCreated, map[string]interface{}{
				"path": name,
			})
		}
	case OpCreateDirectory:
		if name, ok := outcome.Args["directory_name"].(string); ok {
			s.emitter.Emit(EventDirCreated, map[string]interface{}{
				"path": name,
			})
		}
	}
}

// checkContextUsage warns once the conversation approaches the configured
// model's context window. Unknown models are skipped.
func (s *Session) checkContextUsage() {
	info := llm.GetModelInfo(s.config.Model)
	if info == nil || info.ContextWindow <= 0 {
		return
	}

	totalChars := 0
	for _, turn := range s.History() {
		totalChars += len(turn.TextContent())
		if turn.Kind == TurnToolResults && turn.ToolResults != nil {
			for _, outcome := range turn.ToolResults.Outcomes {
				totalChars += len(outcome.Payload)
			}
		}
	}

	approxTokens := totalChars / 4
	threshold := int(float64(info.ContextWindow) * 0.8)
	if approxTokens > threshold {
		pct := approxTokens * 100 / info.ContextWindow
		s.logger.Warn("context window nearly full",
			zap.String("model", s.config.Model),
			zap.Int("percent", pct))
		s.emitter.Emit(EventWarning, map[string]interface{}{
			"message": fmt.Sprintf("Context usage at ~%d%% of the %s context window", pct, s.config.Model),
		})
	}
}

// finalSynthesis asks the planner for a closing natural-language summary of
// the run. All terminal states get one. Unlike mid-loop planner failures,
// a failure here is tolerated: the error text stands in for the summary.
func (s *Session) finalSynthesis(ctx context.Context) string {
	messages := append(
		[]llm.Message{llm.SystemMessage(generationSystemPrompt)},
		HistoryToMessages(s.History())...)
	messages = append(messages, llm.UserMessage(summaryPrompt))

	response, err := s.client.Complete(ctx, llm.Request{
		Model:    s.config.Model,
		Provider: s.config.Provider,
		Messages: messages,
	})
	if err != nil {
		s.logger.Warn("final synthesis call failed", zap.Error(err))
		return err.Error()
	}
	return response.Text()
}

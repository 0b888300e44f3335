package genloop

import (
	"sync"
	"time"
)

// EventKind identifies the type of generation event.
type EventKind string

const (
	EventGenerationStart EventKind = "generation_start"
	EventGenerationEnd   EventKind = "generation_end"
	EventPlanStep        EventKind = "plan_step"
	EventAssistantText   EventKind = "assistant_text"
	EventToolBatch       EventKind = "tool_batch"
	EventToolCallStart   EventKind = "tool_call_start"
	EventToolCallEnd     EventKind = "tool_call_end"
	EventFileCreated     EventKind = "file_created"
	EventDirCreated      EventKind = "dir_created"
	EventContinuation    EventKind = "continuation"
	EventCompletion      EventKind = "completion"
	EventStepLimit       EventKind = "step_limit"
	EventWarning         EventKind = "warning"
	EventError           EventKind = "error"
)

// GenerationEvent is a typed event emitted by the generation loop.
type GenerationEvent struct {
	Kind      EventKind              `json:"kind"`
	Timestamp time.Time              `json:"timestamp"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventEmitter delivers typed events to the host application via a channel.
// Emission never blocks the generation loop: events are dropped when the
// buffer is full.
type EventEmitter struct {
	sessionID string
	ch        chan GenerationEvent
	closed    bool
	mu        sync.Mutex
}

// NewEventEmitter creates an EventEmitter with a buffered channel.
func NewEventEmitter(sessionID string, bufferSize int) *EventEmitter {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &EventEmitter{
		sessionID: sessionID,
		ch:        make(chan GenerationEvent, bufferSize),
	}
}

// Emit sends an event to the channel. If the emitter is closed, the event
// is silently dropped.
func (e *EventEmitter) Emit(kind EventKind, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	event := GenerationEvent{
		Kind:      kind,
		Timestamp: time.Now(),
		SessionID: e.sessionID,
		Data:      data,
	}
	select {
	case e.ch <- event:
	default:
		// Channel full; drop event rather than stall the loop.
	}
}

// Events returns the read-only event channel.
func (e *EventEmitter) Events() <-chan GenerationEvent {
	return e.ch
}

// Close closes the event channel. Safe to call multiple times.
func (e *EventEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}

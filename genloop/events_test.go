package genloop

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventEmitterDelivery(t *testing.T) {
	e := NewEventEmitter("sess-1", 4)
	defer e.Close()

	e.Emit(EventGenerationStart, map[string]interface{}{"project_name": "demo"})

	event := <-e.Events()
	if event.Kind != EventGenerationStart {
		t.Errorf("Kind = %q", event.Kind)
	}
	if event.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", event.SessionID)
	}
	if event.Data["project_name"] != "demo" {
		t.Errorf("Data = %v", event.Data)
	}
	if event.Timestamp.IsZero() {
		t.Error("zero timestamp")
	}
}

func TestEventEmitterDropsWhenFull(t *testing.T) {
	e := NewEventEmitter("sess-2", 2)
	defer e.Close()

	// No reader; the third emit must not block.
	e.Emit(EventPlanStep, nil)
	e.Emit(EventPlanStep, nil)
	e.Emit(EventPlanStep, nil)

	count := 0
	for {
		select {
		case <-e.Events():
			count++
		default:
			if count != 2 {
				t.Errorf("buffered %d events, want 2", count)
			}
			return
		}
	}
}

func TestEventEmitterCloseIsIdempotent(t *testing.T) {
	e := NewEventEmitter("sess-3", 2)
	e.Close()
	e.Close()

	// Emitting after close is a no-op, not a panic.
	e.Emit(EventError, nil)

	if _, ok := <-e.Events(); ok {
		t.Error("read from closed emitter returned an event")
	}
}

func TestEventEmitterDefaultBufferSize(t *testing.T) {
	e := NewEventEmitter("sess-4", 0)
	defer e.Close()
	if cap(e.ch) != 256 {
		t.Errorf("default buffer = %d, want 256", cap(e.ch))
	}
}

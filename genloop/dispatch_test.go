package genloop

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *Workspace) {
	t.Helper()
	ws := newTestWorkspace(t)
	return NewDispatcher(ws, nil), ws
}

func call(id, name, args string) llm.ToolCall {
	return llm.ToolCall{ID: id, Name: name, Arguments: json.RawMessage(args)}
}

func TestDispatchBatchOrderAndArity(t *testing.T) {
	d, _ := newTestDispatcher(t)

	calls := []llm.ToolCall{
		call("c1", "create_directory", `{"directory_name":"src"}`),
		call("c2", "write_to_file", `{"filename":"src/index.js","content":"console.log('hi')"}`),
		call("c3", "read_file", `{"filename":"src/index.js"}`),
		call("c4", "list_directory_contents", `{"directory":"src"}`),
	}
	outcomes := d.Dispatch(context.Background(), calls)

	if len(outcomes) != len(calls) {
		t.Fatalf("got %d outcomes for %d calls", len(outcomes), len(calls))
	}
	for i, outcome := range outcomes {
		if outcome.CallID != calls[i].ID {
			t.Errorf("outcome %d has CallID %q, want %q", i, outcome.CallID, calls[i].ID)
		}
		if outcome.Name != calls[i].Name {
			t.Errorf("outcome %d has Name %q, want %q", i, outcome.Name, calls[i].Name)
		}
	}

	var created successPayload
	if err := json.Unmarshal(outcomes[0].Payload, &created); err != nil || !created.Success {
		t.Errorf("create_directory payload = %s", outcomes[0].Payload)
	}
	var read string
	if err := json.Unmarshal(outcomes[2].Payload, &read); err != nil {
		t.Fatalf("read_file payload = %s", outcomes[2].Payload)
	}
	if read != "console.log('hi')" {
		t.Errorf("read content = %q", read)
	}
	var listing DirListing
	if err := json.Unmarshal(outcomes[3].Payload, &listing); err != nil {
		t.Fatalf("list payload = %s", outcomes[3].Payload)
	}
	if listing.TotalFiles != 1 || listing.Files[0] != "index.js" {
		t.Errorf("listing = %+v", listing)
	}
}

func TestDispatchUnknownOperationYieldsNull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "format_disk", `{"device":"/dev/sda"}`),
		call("c2", "create_directory", `{"directory_name":"kept"}`),
	})

	if string(outcomes[0].Payload) != "null" {
		t.Errorf("unknown op payload = %s, want null", outcomes[0].Payload)
	}
	var ok successPayload
	if err := json.Unmarshal(outcomes[1].Payload, &ok); err != nil || !ok.Success {
		t.Errorf("batch did not continue past unknown op: %s", outcomes[1].Payload)
	}
}

func TestDispatchUndecodableArgumentsYieldNull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "read_file", `[1,2,3]`),
	})
	if string(outcomes[0].Payload) != "null" {
		t.Errorf("payload = %s, want null", outcomes[0].Payload)
	}
	if outcomes[0].Args != nil {
		t.Errorf("Args = %v, want nil for non-object arguments", outcomes[0].Args)
	}
}

func TestDispatchReadMissingFileYieldsNull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "read_file", `{"filename":"ghost.txt"}`),
		call("c2", "get_file_metadata", `{"filename":"ghost.txt"}`),
		call("c3", "list_directory_contents", `{"directory":"nowhere"}`),
	})
	for i, outcome := range outcomes {
		if string(outcome.Payload) != "null" {
			t.Errorf("outcome %d payload = %s, want null", i, outcome.Payload)
		}
	}
}

func TestDispatchWriteOutsideWorkspaceReportsFailure(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "write_to_file", `{"filename":"../escape.txt","content":"x"}`),
		call("c2", "create_directory", `{"directory_name":"../evil"}`),
	})
	for i, outcome := range outcomes {
		var result successPayload
		if err := json.Unmarshal(outcome.Payload, &result); err != nil {
			t.Fatalf("outcome %d payload = %s", i, outcome.Payload)
		}
		if result.Success {
			t.Errorf("outcome %d reported success for out-of-root path", i)
		}
	}
}

func TestDispatchSudoCommandYieldsNull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "run_command", `{"command":"sudo reboot"}`),
	})
	if string(outcomes[0].Payload) != "null" {
		t.Errorf("payload = %s, want null", outcomes[0].Payload)
	}
}

func TestDispatchRunCommandPayload(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "run_command", `{"command":"echo sudoku"}`),
	})
	var result CommandResult
	if err := json.Unmarshal(outcomes[0].Payload, &result); err != nil {
		t.Fatalf("payload = %s", outcomes[0].Payload)
	}
	if result.ReturnCode != 0 {
		t.Errorf("ReturnCode = %d", result.ReturnCode)
	}
	if result.Stdout != "sudoku\n" {
		t.Errorf("Stdout = %q", result.Stdout)
	}
}

func TestDispatchRecordsRawArgs(t *testing.T) {
	d, _ := newTestDispatcher(t)

	outcomes := d.Dispatch(context.Background(), []llm.ToolCall{
		call("c1", "write_to_file", `{"filename":"notes.md","content":"# Notes"}`),
	})
	if outcomes[0].Args["filename"] != "notes.md" {
		t.Errorf("Args = %v", outcomes[0].Args)
	}
}

func TestDispatchEmptyBatch(t *testing.T) {
	d, _ := newTestDispatcher(t)
	outcomes := d.Dispatch(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for empty batch", len(outcomes))
	}
}

package genloop

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

// nullPayload is the sentinel result for operations that could not run or
// did not produce a value. The planner sees it as JSON null.
var nullPayload = json.RawMessage("null")

type successPayload struct {
	Success bool `json:"success"`
}

// Dispatcher executes planner tool-call batches against a workspace. Results
// are produced in invocation order, one per call, and each call executes
// independently of the others in its batch.
type Dispatcher struct {
	workspace *Workspace
	logger    *zap.Logger
}

// NewDispatcher creates a Dispatcher over the given workspace.
func NewDispatcher(workspace *Workspace, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{workspace: workspace, logger: logger}
}

// Dispatch runs a batch of tool calls and returns exactly one outcome per
// call, in the order received. A call that cannot be decoded (unknown
// operation name, arguments that are not a JSON object) yields the null
// payload and the batch continues.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []llm.ToolCall) []ToolOutcome {
	outcomes := make([]ToolOutcome, len(calls))
	for i, call := range calls {
		outcomes[i] = d.DispatchCall(ctx, call)
	}
	return outcomes
}

// DispatchCall runs a single tool call and returns its outcome.
func (d *Dispatcher) DispatchCall(ctx context.Context, call llm.ToolCall) ToolOutcome {
	outcome := ToolOutcome{
		CallID:  call.ID,
		Name:    call.Name,
		Payload: nullPayload,
	}

	// Keep the raw argument object for the action log even when the typed
	// decode fails later.
	var args map[string]interface{}
	if err := json.Unmarshal(call.Arguments, &args); err == nil {
		outcome.Args = args
	}

	op, err := DecodeOp(call.Name, call.Arguments)
	if err != nil {
		d.logger.Warn("tool call not dispatchable",
			zap.String("name", call.Name),
			zap.String("call_id", call.ID),
			zap.Error(err))
		return outcome
	}

	outcome.Payload = d.execute(ctx, op)
	return outcome
}

// execute runs one typed operation and serializes its result. Failures
// become sentinel payloads: null for read/stat/list/run, a false success
// flag for write/mkdir.
func (d *Dispatcher) execute(ctx context.Context, op Op) json.RawMessage {
	switch op.Kind {
	case OpReadFile:
		content, err := d.workspace.ReadFile(op.ReadFile.Filename)
		if err != nil {
			return nullPayload
		}
		return marshalPayload(content)

	case OpGetFileMetadata:
		meta, err := d.workspace.Stat(op.Metadata.Filename)
		if err != nil {
			return nullPayload
		}
		return marshalPayload(meta)

	case OpListDirectory:
		listing, err := d.workspace.ListDirectory(op.ListDirectory.Directory)
		if err != nil {
			return nullPayload
		}
		return marshalPayload(listing)

	case OpWriteToFile:
		err := d.workspace.WriteFile(op.WriteFile.Filename, op.WriteFile.Content, op.WriteFile.Mode)
		return marshalPayload(successPayload{Success: err == nil})

	case OpRunCommand:
		result, err := d.workspace.RunCommand(ctx, op.RunCommand.Command)
		if err != nil {
			return nullPayload
		}
		return marshalPayload(result)

	case OpCreateDirectory:
		err := d.workspace.CreateDirectory(op.CreateDirectory.DirectoryName)
		return marshalPayload(successPayload{Success: err == nil})
	}
	return nullPayload
}

func marshalPayload(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nullPayload
	}
	return data
}

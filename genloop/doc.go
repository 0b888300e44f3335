// Package genloop implements the project generation loop.
//
// It drives a language model through an iterative cycle of tool calls,
// turning model-issued intents into sandboxed filesystem and shell effects
// until the model declares the project complete or a step budget runs out.
// Every effect is validated by a sandbox guard before execution, and every
// step is recorded for the final generation report.
//
// The loop uses the llm package's blocking Client.Complete() method directly,
// implementing its own turn cycle to interleave tool dispatch with state
// transitions, event emission, and action recording.
//
// # Architecture
//
// The package is organized around these core concepts:
//
//   - Session: The orchestrator holding conversation state, dispatching
//     tool calls, managing events, and enforcing the step budget.
//   - Workspace: Sandboxed filesystem and shell primitives rooted at a
//     single directory that no operation may escape.
//   - Sandbox: Path and command validation enforced inside every
//     Workspace primitive.
//   - Dispatcher: Decodes planner tool-call batches into typed operations
//     and executes them in order.
//   - Recorder: Chronological action log and derived counts for the
//     generation summary.
//   - EventEmitter: Typed event stream for host application integration.
//
// # Quick Start
//
//	ws, err := genloop.NewWorkspace("/path/to/output")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session := genloop.NewSession(ws, nil)
//	defer session.Close()
//
//	summary := session.GenerateProject(ctx, genloop.ProjectRequest{
//	    Type:        "MERN Stack",
//	    Name:        "task-tracker",
//	    Description: "A task tracking app with user accounts.",
//	})
//	fmt.Printf("created %d files in %d steps\n", summary.TotalFiles, summary.TotalSteps)
package genloop

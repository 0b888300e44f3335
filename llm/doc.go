// Package llm is a provider-agnostic client for the language-model service
// that plans project generation. It wraps gollm (github.com/teilomillet/gollm)
// behind a small blocking interface.
//
// The package has three layers:
//
//   - ProviderAdapter and the shared request/response types
//   - Client, which routes requests to registered adapters and applies
//     middleware (retry lives here)
//   - Generate, a one-shot convenience for tool-free calls
//
// Typical construction:
//
//	adapter, _ := llm.NewGollmAdapter("openai", os.Getenv("OPENAI_API_KEY"))
//	client := llm.NewClient(
//	    llm.WithProvider("openai", adapter),
//	    llm.WithMiddleware(llm.RetryMiddleware(llm.DefaultRetryPolicy())),
//	)
//
//	resp, err := client.Complete(ctx, llm.Request{
//	    Model:    "gpt-4o",
//	    Messages: []llm.Message{llm.UserMessage("Scaffold a Flask app")},
//	})
//
// Tool definitions attach to a Request as ToolDefs; the model's tool
// invocations come back as tool-call content parts on the response message.
// Executing them is the caller's business, not this package's.
package llm

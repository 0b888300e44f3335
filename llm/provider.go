package llm

import "context"

// ProviderAdapter is the interface every provider backend must implement.
// The generation loop is strictly synchronous, so a blocking Complete is the
// whole contract.
type ProviderAdapter interface {
	// Name returns the provider identifier (e.g. "openai", "anthropic").
	Name() string

	// Complete sends a blocking request and returns the full response.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Closer is implemented by adapters that hold resources.
type Closer interface {
	Close() error
}

// ToolChoiceSupporter is implemented by adapters that can report which
// tool-choice modes they honor.
type ToolChoiceSupporter interface {
	SupportsToolChoice(mode string) bool
}

package llm

import (
	"context"
)

// GenerateOptions configures a single Generate call.
type GenerateOptions struct {
	// Model to use, e.g. "gpt-4o" or "claude-sonnet-4-5".
	Model string

	// Prompt is a plain user prompt. Mutually exclusive with Messages.
	Prompt string

	// Messages is a full conversation. Mutually exclusive with Prompt.
	Messages []Message

	// System is an optional system prompt prepended to the conversation.
	System string

	// Temperature overrides the provider default when non-nil.
	Temperature *float64

	// MaxTokens caps the response length when non-nil.
	MaxTokens *int

	// Provider forces a specific provider instead of catalog inference.
	Provider string

	// MaxRetries wraps the call in a retry policy when positive.
	MaxRetries int

	// Client to use. Defaults to the package default client.
	Client *Client
}

// GenerateResult is the outcome of a Generate call.
type GenerateResult struct {
	Text         string
	FinishReason FinishReason
	Usage        Usage
	Response     *Response
}

// Generate performs a one-shot completion and returns the generated text.
// Exactly one of opts.Prompt or opts.Messages must be set.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Prompt == "" && len(opts.Messages) == 0 {
		return nil, &ConfigurationError{SDKError{Message: "either Prompt or Messages must be provided"}}
	}
	if opts.Prompt != "" && len(opts.Messages) > 0 {
		return nil, &ConfigurationError{SDKError{Message: "Prompt and Messages are mutually exclusive"}}
	}

	client := opts.Client
	if client == nil {
		client = GetDefaultClient()
	}

	messages := opts.Messages
	if opts.Prompt != "" {
		messages = []Message{UserMessage(opts.Prompt)}
	}
	if opts.System != "" {
		messages = append([]Message{SystemMessage(opts.System)}, messages...)
	}

	req := Request{
		Model:       opts.Model,
		Messages:    messages,
		Provider:    opts.Provider,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	call := func(ctx context.Context) (*Response, error) {
		return client.Complete(ctx, req)
	}

	var resp *Response
	var err error
	if opts.MaxRetries > 0 {
		policy := DefaultRetryPolicy()
		policy.MaxRetries = opts.MaxRetries
		resp, err = Retry(ctx, policy, call)
	} else {
		resp, err = call(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Text:         resp.Text(),
		FinishReason: resp.FinishReason,
		Usage:        resp.Usage,
		Response:     resp,
	}, nil
}

package interfaces

import "context"

// TextGenerator defines the interface for single-shot text completion against
// a language model. Implementations may use any cloud provider; all structure
// in the output is enforced by prompt instruction plus post-hoc parsing, so
// the interface assumes no structured-output mode and no streaming.
type TextGenerator interface {
	// Generate produces a completion for the given prompt text.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - prompt: Fully assembled prompt text
	//
	// Returns:
	//   - string: Generated response text
	//   - error: Error if generation fails
	Generate(ctx context.Context, prompt string) (string, error)

	// HealthCheck verifies the provider is reachable and can handle requests.
	HealthCheck(ctx context.Context) error

	// Provider returns the configured provider name ("gemini" or "claude").
	Provider() string

	// Close releases client resources.
	Close() error
}

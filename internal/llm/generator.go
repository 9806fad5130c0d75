// Package llm provides text-generation backends for trait classification.
package llm

import "context"

// Generator is the minimal text-generation capability the classifier
// needs: one prompt string in, one response string out. Interpretation
// of the response belongs to the caller.
type Generator interface {
	// Generate issues a single completion request. Implementations must
	// honor ctx cancellation and deadlines.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend for logging.
	Name() string
}

// truncate limits prompt content sent to a backend.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n...[truncated]..."
}

// Package classifier detects structural traits in prompt text.
//
// Two implementations share one contract: a deterministic rule-based
// classifier that always succeeds, and an LLM-backed classifier that may
// fail. The Fallback wrapper selects between them per prompt, so callers
// never see a hard classification failure.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/promptvault/promptvault/internal/trait"
)

// Classifier maps prompt text to a complete trait verdict set.
type Classifier interface {
	// Classify analyzes the text and returns a verdict for every
	// taxonomy trait.
	Classify(ctx context.Context, text string) (trait.Verdicts, error)

	// Provenance reports which kind of classifier this is.
	Provenance() trait.Provenance
}

// ErrUnavailable indicates the external classification capability could
// not be reached (missing backend, network failure, or timeout).
var ErrUnavailable = errors.New("classification unavailable")

// MalformedResponseError indicates the external capability responded but
// the response could not be interpreted as a complete verdict set.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed classification response: %s", e.Reason)
}

// Fallback runs a primary classifier and falls back to a secondary one
// when the primary fails. Verdicts are all-or-nothing per prompt: a
// failed primary contributes nothing to the result.
type Fallback struct {
	primary   Classifier
	secondary Classifier
}

// NewFallback creates a fallback chain. primary may be nil, in which
// case the secondary is used directly.
func NewFallback(primary, secondary Classifier) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Classify runs the chain and reports which classifier produced the
// verdicts. The returned error is non-nil only if every classifier in
// the chain failed.
func (f *Fallback) Classify(ctx context.Context, text string) (trait.Verdicts, trait.Provenance, error) {
	if f.primary != nil {
		verdicts, err := f.primary.Classify(ctx, text)
		if err == nil {
			return verdicts, f.primary.Provenance(), nil
		}
	}

	verdicts, err := f.secondary.Classify(ctx, text)
	if err != nil {
		return trait.Verdicts{}, f.secondary.Provenance(), err
	}
	return verdicts, f.secondary.Provenance(), nil
}

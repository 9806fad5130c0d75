package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/promptvault/promptvault/internal/llm"
	"github.com/promptvault/promptvault/internal/trait"
)

// DefaultTimeout bounds a single classification request.
const DefaultTimeout = 30 * time.Second

// LLMClassifier classifies prompts through an external text-generation
// capability. It issues exactly one request per prompt and never
// retries; callers re-invoke analysis to retry. A response is accepted
// only if it covers exactly the ten taxonomy traits.
type LLMClassifier struct {
	gen     llm.Generator
	timeout time.Duration
}

// NewLLMClassifier wraps a generator. gen may be nil, in which case
// Classify always reports ErrUnavailable.
func NewLLMClassifier(gen llm.Generator, timeout time.Duration) *LLMClassifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LLMClassifier{gen: gen, timeout: timeout}
}

// Provenance reports model-derived origin.
func (c *LLMClassifier) Provenance() trait.Provenance { return trait.ProvenanceLLM }

// Classify sends the prompt to the generator and parses the structured
// response. Timeouts and transport failures surface as ErrUnavailable;
// structural problems in the response surface as MalformedResponseError.
func (c *LLMClassifier) Classify(ctx context.Context, text string) (trait.Verdicts, error) {
	if c == nil || c.gen == nil {
		return trait.Verdicts{}, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.gen.Generate(ctx, buildInstruction(text))
	if err != nil {
		return trait.Verdicts{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return parseVerdicts(resp)
}

// buildInstruction produces the fixed classification instruction listing
// all ten traits and demanding a JSON-only response.
func buildInstruction(text string) string {
	var b strings.Builder
	b.WriteString("Analyze this coding prompt and identify which traits are present.\n\n")
	b.WriteString("TRAITS TO DETECT:\n")
	for _, t := range trait.All() {
		fmt.Fprintf(&b, "- %s: %s\n", t.Key(), t.Description())
	}
	b.WriteString("\nPROMPT TO ANALYZE:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("Return ONLY a JSON object with trait names as keys and boolean values.\n")
	b.WriteString(`Example: {"clear_goal": true, "gives_context": false, ...}`)
	b.WriteString("\n\nInclude ALL traits in your response. Only mark true if the trait is clearly present.\n")
	return b.String()
}

// parseVerdicts interprets the generator response. Any missing or
// unrecognized trait key invalidates the entire response.
func parseVerdicts(resp string) (trait.Verdicts, error) {
	raw := extractJSON(resp)

	var keyed map[string]bool
	if err := json.Unmarshal([]byte(raw), &keyed); err != nil {
		return trait.Verdicts{}, &MalformedResponseError{
			Reason: fmt.Sprintf("invalid JSON: %v", err),
			Raw:    truncateForError(resp),
		}
	}

	var verdicts trait.Verdicts
	seen := 0
	for key, detected := range keyed {
		t, ok := trait.FromKey(key)
		if !ok {
			return trait.Verdicts{}, &MalformedResponseError{
				Reason: fmt.Sprintf("unrecognized trait key %q", key),
				Raw:    truncateForError(resp),
			}
		}
		verdicts[t] = detected
		seen++
	}
	if seen != trait.Count {
		return trait.Verdicts{}, &MalformedResponseError{
			Reason: fmt.Sprintf("response covers %d of %d traits", seen, trait.Count),
			Raw:    truncateForError(resp),
		}
	}

	return verdicts, nil
}

// extractJSON pulls a JSON object out of a response that may be wrapped
// in markdown fences or surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}

	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if idx := strings.Index(s, "```"); idx != -1 {
		start := idx + 3
		if nlIdx := strings.Index(s[start:], "\n"); nlIdx != -1 {
			start += nlIdx + 1
		}
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}

func truncateForError(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

package insights

import (
	"fmt"
	"strings"

	"github.com/promptvault/promptvault/internal/trait"
)

// DefaultMaxSuggestions caps the suggestion list.
const DefaultMaxSuggestions = 5

// rarelyUsedCutoff marks traits worth nudging: structurally useful but
// appearing in under this share of the user's best prompts.
const rarelyUsedCutoff = 0.30

// nudgeTraits are worth suggesting even without a measured correlation.
var nudgeTraits = []trait.Trait{trait.ShowsExample, trait.BreaksDownTask}

// Suggestion is one actionable statement derived from the report.
type Suggestion struct {
	Trait     trait.Trait
	Direction Direction
	Text      string
}

// BuildSuggestions turns a correlation report into an ordered list of
// suggestions. Only traits whose association cleared the significance
// threshold produce correlation-backed suggestions; a report that is
// not ready produces none. Deterministic for identical input.
func BuildSuggestions(report Report, max int) []Suggestion {
	if !report.Ready {
		return nil
	}
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	var suggestions []Suggestion
	for _, c := range report.Correlations {
		switch c.Direction {
		case Helps:
			suggestions = append(suggestions, Suggestion{
				Trait:     c.Trait,
				Direction: Helps,
				Text: fmt.Sprintf("Keep using '%s' - it shows up in %s of your best prompts but only %s of your worst.",
					lowerLabel(c.Trait), percent(c.HighPrevalence), percent(c.LowPrevalence)),
			})
		case Hurts:
			suggestions = append(suggestions, Suggestion{
				Trait:     c.Trait,
				Direction: Hurts,
				Text: fmt.Sprintf("'%s' appears in %s of your low-rated prompts but only %s of your best - consider dropping it.",
					lowerLabel(c.Trait), percent(c.LowPrevalence), percent(c.HighPrevalence)),
			})
		}
	}

	// Nudge structurally useful traits the user rarely reaches for.
	suggested := make(map[trait.Trait]bool, len(suggestions))
	for _, s := range suggestions {
		suggested[s.Trait] = true
	}
	for _, c := range report.Correlations {
		if suggested[c.Trait] || !isNudgeTrait(c.Trait) {
			continue
		}
		if c.HighPrevalence < rarelyUsedCutoff {
			suggestions = append(suggestions, Suggestion{
				Trait:     c.Trait,
				Direction: Neutral,
				Text:      fmt.Sprintf("Try adding '%s' more often - you rarely use it.", lowerLabel(c.Trait)),
			})
		}
	}

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

func isNudgeTrait(t trait.Trait) bool {
	for _, n := range nudgeTraits {
		if n == t {
			return true
		}
	}
	return false
}

func lowerLabel(t trait.Trait) string {
	return strings.ReplaceAll(t.Key(), "_", " ")
}

func percent(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}

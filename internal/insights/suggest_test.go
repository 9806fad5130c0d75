package insights

import (
	"reflect"
	"strings"
	"testing"

	"github.com/promptvault/promptvault/internal/trait"
)

func TestBuildSuggestionsThreshold(t *testing.T) {
	// clear_goal spread 1.0 clears the threshold; gives_context spread
	// (2/3 - 1/2) does not and must never be referenced.
	observations := []Observation{
		obs(1, 5, trait.ClearGoal, trait.GivesContext),
		obs(2, 5, trait.ClearGoal),
		obs(3, 4, trait.ClearGoal, trait.GivesContext),
		obs(4, 1, trait.GivesContext),
		obs(5, 2),
	}

	report := NewEngine(DefaultConfig()).Analyze(observations)
	suggestions := BuildSuggestions(report, DefaultMaxSuggestions)

	corrDirections := map[trait.Trait]Direction{}
	for _, c := range report.Correlations {
		corrDirections[c.Trait] = c.Direction
	}

	for _, s := range suggestions {
		if s.Direction == Neutral {
			continue // rarely-used nudges are not correlation claims
		}
		if corrDirections[s.Trait] == Neutral {
			t.Errorf("suggestion references %v, which is below the significance threshold", s.Trait)
		}
	}

	if len(suggestions) == 0 {
		t.Fatal("no suggestions produced")
	}
	if suggestions[0].Trait != trait.ClearGoal || suggestions[0].Direction != Helps {
		t.Errorf("top suggestion = %+v, want clear_goal helps", suggestions[0])
	}
	if !strings.Contains(suggestions[0].Text, "100%") {
		t.Errorf("suggestion text %q does not cite the high prevalence", suggestions[0].Text)
	}
}

func TestBuildSuggestionsHurts(t *testing.T) {
	// specifies_negative dominates the low cohort.
	observations := []Observation{
		obs(1, 5),
		obs(2, 5),
		obs(3, 4),
		obs(4, 1, trait.SpecifiesNegative),
		obs(5, 1, trait.SpecifiesNegative),
	}

	report := NewEngine(DefaultConfig()).Analyze(observations)
	suggestions := BuildSuggestions(report, DefaultMaxSuggestions)

	var found *Suggestion
	for i := range suggestions {
		if suggestions[i].Trait == trait.SpecifiesNegative {
			found = &suggestions[i]
			break
		}
	}
	if found == nil {
		t.Fatal("no suggestion for the hurting trait")
	}
	if found.Direction != Hurts {
		t.Errorf("Direction = %v, want hurts", found.Direction)
	}
	if !strings.Contains(found.Text, "specifies negative") {
		t.Errorf("text %q does not name the trait", found.Text)
	}
}

func TestBuildSuggestionsRarelyUsedNudge(t *testing.T) {
	// shows_example never appears anywhere: no correlation, but it is a
	// nudge trait with high-cohort prevalence under the cutoff.
	observations := []Observation{
		obs(1, 5, trait.ClearGoal),
		obs(2, 5, trait.ClearGoal),
		obs(3, 4, trait.ClearGoal),
		obs(4, 1),
		obs(5, 2),
	}

	report := NewEngine(DefaultConfig()).Analyze(observations)
	suggestions := BuildSuggestions(report, DefaultMaxSuggestions)

	var nudged bool
	for _, s := range suggestions {
		if s.Trait == trait.ShowsExample && s.Direction == Neutral {
			nudged = true
			if !strings.Contains(s.Text, "rarely") {
				t.Errorf("nudge text %q missing rarely-used phrasing", s.Text)
			}
		}
	}
	if !nudged {
		t.Error("no rarely-used nudge for shows_example")
	}
}

func TestBuildSuggestionsNotReady(t *testing.T) {
	report := NewEngine(DefaultConfig()).Analyze([]Observation{obs(1, 5)})
	if got := BuildSuggestions(report, DefaultMaxSuggestions); got != nil {
		t.Errorf("BuildSuggestions(not ready) = %v, want nil", got)
	}
}

func TestBuildSuggestionsCap(t *testing.T) {
	// Every trait splits perfectly, so every trait produces a
	// suggestion; the list must still be capped.
	all := trait.All()
	var high trait.Verdicts
	for _, tr := range all {
		high[tr] = true
	}

	observations := []Observation{
		{PromptID: 1, Rating: 5, Verdicts: high},
		{PromptID: 2, Rating: 5, Verdicts: high},
		{PromptID: 3, Rating: 4, Verdicts: high},
		obs(4, 1),
		obs(5, 1),
	}

	report := NewEngine(DefaultConfig()).Analyze(observations)
	suggestions := BuildSuggestions(report, 3)
	if len(suggestions) != 3 {
		t.Errorf("len(suggestions) = %d, want cap of 3", len(suggestions))
	}
}

func TestBuildSuggestionsDeterministic(t *testing.T) {
	observations := []Observation{
		obs(1, 5, trait.ClearGoal, trait.ShowsError),
		obs(2, 5, trait.ShowsError),
		obs(3, 4, trait.ClearGoal),
		obs(4, 2, trait.SpecifiesNegative),
		obs(5, 1, trait.SpecifiesNegative),
	}

	engine := NewEngine(DefaultConfig())
	first := BuildSuggestions(engine.Analyze(observations), DefaultMaxSuggestions)
	for i := 0; i < 5; i++ {
		again := BuildSuggestions(engine.Analyze(observations), DefaultMaxSuggestions)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("suggestions differ across identical runs")
		}
	}
}

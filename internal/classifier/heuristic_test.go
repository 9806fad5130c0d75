package classifier

import (
	"context"
	"testing"

	"github.com/promptvault/promptvault/internal/trait"
)

func TestRuleClassifierDetection(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		trait trait.Trait
		want  bool
	}{
		{
			name:  "imperative verb marks clear goal",
			text:  "implement a parser for the config format",
			trait: trait.ClearGoal,
			want:  true,
		},
		{
			name:  "no goal verb",
			text:  "the weather is nice today",
			trait: trait.ClearGoal,
			want:  false,
		},
		{
			name:  "project framing gives context",
			text:  "we have a monorepo with three services",
			trait: trait.GivesContext,
			want:  true,
		},
		{
			name:  "source file extension references files",
			text:  "look at handlers/main.go for the routing",
			trait: trait.ReferencesFiles,
			want:  true,
		},
		{
			name:  "backtick identifier references files",
			text:  "update `AuthService` accordingly",
			trait: trait.ReferencesFiles,
			want:  true,
		},
		{
			name:  "runtime error name shows error",
			text:  "TypeError: cannot read property of undefined",
			trait: trait.ShowsError,
			want:  true,
		},
		{
			name:  "panic marker shows error",
			text:  "panic: runtime index out of range",
			trait: trait.ShowsError,
			want:  true,
		},
		{
			name:  "expected outcome describes behavior",
			text:  "it should return a 200 response",
			trait: trait.DescribesBehavior,
			want:  true,
		},
		{
			name:  "scope limits set constraints",
			text:  "keep it minimal, no external dependencies",
			trait: trait.SetsConstraints,
			want:  true,
		},
		{
			name:  "numbered lines break down task",
			text:  "1. parse the input\n2. validate it\n3. save",
			trait: trait.BreaksDownTask,
			want:  true,
		},
		{
			name:  "ordered markdown list breaks down task",
			text:  "Please:\n\n1. rename the package\n2. move the tests\n",
			trait: trait.BreaksDownTask,
			want:  true,
		},
		{
			name:  "unordered list alone does not break down task",
			text:  "- apples\n- oranges\n",
			trait: trait.BreaksDownTask,
			want:  false,
		},
		{
			name:  "fenced code block shows example",
			text:  "here is the shape:\n```\n{\"id\": 1}\n```",
			trait: trait.ShowsExample,
			want:  true,
		},
		{
			name:  "introducing phrase shows example",
			text:  "format dates like this: 2024-01-02",
			trait: trait.ShowsExample,
			want:  true,
		},
		{
			name:  "reasoning explains why",
			text:  "move the cache lookup up, because the query is slow",
			trait: trait.ExplainsWhy,
			want:  true,
		},
		{
			name:  "negation specifies negative",
			text:  "do not touch the database schema",
			trait: trait.SpecifiesNegative,
			want:  true,
		},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdicts, err := c.Classify(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got := verdicts[tt.trait]; got != tt.want {
				t.Errorf("Classify(%q)[%s] = %v, want %v", tt.text, tt.trait, got, tt.want)
			}
		})
	}
}

func TestRuleClassifierDeterministic(t *testing.T) {
	c := NewRuleClassifier()
	texts := []string{
		"",
		"the weather is nice today",
		"fix the login bug in auth.go because users can't sign in\n\n1. reproduce\n2. fix\n3. don't break the session tests",
	}

	for _, text := range texts {
		first, err := c.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("Classify() error = %v", err)
		}
		for i := 0; i < 5; i++ {
			again, err := c.Classify(context.Background(), text)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if again != first {
				t.Fatalf("Classify(%q) not deterministic: %v then %v", text, first, again)
			}
		}
	}
}

func TestRuleClassifierNeutralTextAllFalse(t *testing.T) {
	c := NewRuleClassifier()
	verdicts, err := c.Classify(context.Background(), "the weather is nice today")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if n := verdicts.NumPresent(); n != 0 {
		t.Errorf("neutral text detected traits %v, want none", verdicts.Present())
	}
}

func TestRuleClassifierProvenance(t *testing.T) {
	if got := NewRuleClassifier().Provenance(); got != trait.ProvenanceRule {
		t.Errorf("Provenance() = %v, want rule-based", got)
	}
}

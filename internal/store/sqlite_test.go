package store

import (
	"context"
	"errors"
	"testing"

	"github.com/promptvault/promptvault/internal/trait"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetPrompt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddPrompt(ctx, &Prompt{
		Content:  "fix the login bug",
		Model:    "claude-sonnet",
		TaskType: "bugfix",
		Tags:     []string{"auth", "react"},
	})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}
	if id == 0 {
		t.Fatal("AddPrompt() returned id 0")
	}

	p, err := s.GetPrompt(ctx, id)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if p.Content != "fix the login bug" {
		t.Errorf("Content = %q", p.Content)
	}
	if p.Model != "claude-sonnet" || p.TaskType != "bugfix" {
		t.Errorf("metadata = %q/%q", p.Model, p.TaskType)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "auth" || p.Tags[1] != "react" {
		t.Errorf("Tags = %v, want [auth react]", p.Tags)
	}
	if p.Rated() {
		t.Error("new prompt reports rated")
	}
	if p.Analyzed() {
		t.Error("new prompt reports analyzed")
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestGetPromptNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetPrompt(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPrompt(999) error = %v, want ErrNotFound", err)
	}
}

func TestRatePromptOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddPrompt(ctx, &Prompt{Content: "refactor the cache"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	if err := s.RatePrompt(ctx, id, 2, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}
	if err := s.RatePrompt(ctx, id, 5, "worked perfectly"); err != nil {
		t.Fatalf("re-rate error = %v", err)
	}

	p, err := s.GetPrompt(ctx, id)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if p.Rating != 5 {
		t.Errorf("Rating = %d, want 5 (overwrite)", p.Rating)
	}
	if p.Outcome != "worked perfectly" {
		t.Errorf("Outcome = %q", p.Outcome)
	}

	if err := s.RatePrompt(ctx, id, 6, ""); err == nil {
		t.Error("RatePrompt accepted rating 6")
	}
	if err := s.RatePrompt(ctx, 999, 3, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("RatePrompt(999) error = %v, want ErrNotFound", err)
	}
}

func TestSaveAndLoadVerdicts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddPrompt(ctx, &Prompt{Content: "add a search box"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	var v trait.Verdicts
	v[trait.ClearGoal] = true
	v[trait.ShowsExample] = true

	if err := s.SaveVerdicts(ctx, id, v, trait.ProvenanceLLM); err != nil {
		t.Fatalf("SaveVerdicts() error = %v", err)
	}

	got, provenance, err := s.Verdicts(ctx, id)
	if err != nil {
		t.Fatalf("Verdicts() error = %v", err)
	}
	if got == nil {
		t.Fatal("Verdicts() = nil after save")
	}
	if *got != v {
		t.Errorf("Verdicts = %v, want %v", *got, v)
	}
	if provenance != trait.ProvenanceLLM {
		t.Errorf("provenance = %v, want llm", provenance)
	}

	// Re-analysis overwrites the whole set and its provenance.
	var v2 trait.Verdicts
	v2[trait.ShowsError] = true
	if err := s.SaveVerdicts(ctx, id, v2, trait.ProvenanceRule); err != nil {
		t.Fatalf("second SaveVerdicts() error = %v", err)
	}
	got, provenance, err = s.Verdicts(ctx, id)
	if err != nil {
		t.Fatalf("Verdicts() error = %v", err)
	}
	if *got != v2 {
		t.Errorf("Verdicts after overwrite = %v, want %v", *got, v2)
	}
	if provenance != trait.ProvenanceRule {
		t.Errorf("provenance after overwrite = %v, want rule-based", provenance)
	}

	if err := s.SaveVerdicts(ctx, 999, v, trait.ProvenanceRule); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveVerdicts(999) error = %v, want ErrNotFound", err)
	}
}

func TestVerdictsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddPrompt(ctx, &Prompt{Content: "anything"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	v, _, err := s.Verdicts(ctx, id)
	if err != nil {
		t.Fatalf("Verdicts() error = %v", err)
	}
	if v != nil {
		t.Errorf("Verdicts() = %v for unanalyzed prompt, want nil", v)
	}
}

func TestUnanalyzedPrompts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.AddPrompt(ctx, &Prompt{Content: "first"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}
	second, err := s.AddPrompt(ctx, &Prompt{Content: "second"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	if err := s.SaveVerdicts(ctx, first, trait.Verdicts{}, trait.ProvenanceRule); err != nil {
		t.Fatalf("SaveVerdicts() error = %v", err)
	}

	pending, err := s.UnanalyzedPrompts(ctx)
	if err != nil {
		t.Fatalf("UnanalyzedPrompts() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second {
		t.Errorf("UnanalyzedPrompts() = %v, want only prompt %d", pending, second)
	}
}

func TestAllPrompts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.AddPrompt(ctx, &Prompt{Content: "first"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}
	second, err := s.AddPrompt(ctx, &Prompt{Content: "second"})
	if err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}
	if err := s.SaveVerdicts(ctx, first, trait.Verdicts{}, trait.ProvenanceRule); err != nil {
		t.Fatalf("SaveVerdicts() error = %v", err)
	}

	all, err := s.AllPrompts(ctx)
	if err != nil {
		t.Fatalf("AllPrompts() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != first || all[1].ID != second {
		t.Errorf("AllPrompts() = %v, want both prompts oldest first", all)
	}
}

func TestObservationsRequireRatingAndVerdicts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var v trait.Verdicts
	v[trait.ShowsError] = true

	ratedAnalyzed, _ := s.AddPrompt(ctx, &Prompt{Content: "both"})
	ratedOnly, _ := s.AddPrompt(ctx, &Prompt{Content: "rated only"})
	analyzedOnly, _ := s.AddPrompt(ctx, &Prompt{Content: "analyzed only"})

	if err := s.RatePrompt(ctx, ratedAnalyzed, 5, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}
	if err := s.RatePrompt(ctx, ratedOnly, 4, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}
	if err := s.SaveVerdicts(ctx, ratedAnalyzed, v, trait.ProvenanceLLM); err != nil {
		t.Fatalf("SaveVerdicts() error = %v", err)
	}
	if err := s.SaveVerdicts(ctx, analyzedOnly, v, trait.ProvenanceRule); err != nil {
		t.Fatalf("SaveVerdicts() error = %v", err)
	}

	observations, err := s.Observations(ctx)
	if err != nil {
		t.Fatalf("Observations() error = %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("Observations() = %d entries, want 1", len(observations))
	}
	obs := observations[0]
	if obs.PromptID != ratedAnalyzed || obs.Rating != 5 {
		t.Errorf("observation = %+v", obs)
	}
	if !obs.Verdicts[trait.ShowsError] {
		t.Error("observation verdicts missing shows_error")
	}
}

func TestListPromptsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, _ := s.AddPrompt(ctx, &Prompt{Content: "alpha", Tags: []string{"auth"}})
	b, _ := s.AddPrompt(ctx, &Prompt{Content: "beta", Tags: []string{"ui"}})
	if err := s.RatePrompt(ctx, a, 5, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}
	if err := s.RatePrompt(ctx, b, 2, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}

	all, err := s.ListPrompts(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListPrompts() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListPrompts() = %d prompts, want 2", len(all))
	}

	byTag, err := s.ListPrompts(ctx, ListFilter{Tag: "auth"})
	if err != nil {
		t.Fatalf("ListPrompts(tag) error = %v", err)
	}
	if len(byTag) != 1 || byTag[0].ID != a {
		t.Errorf("ListPrompts(tag=auth) = %v, want prompt %d", byTag, a)
	}

	byRating, err := s.ListPrompts(ctx, ListFilter{Rating: 2})
	if err != nil {
		t.Fatalf("ListPrompts(rating) error = %v", err)
	}
	if len(byRating) != 1 || byRating[0].ID != b {
		t.Errorf("ListPrompts(rating=2) = %v, want prompt %d", byRating, b)
	}
}

func TestSearchPrompts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, _ := s.AddPrompt(ctx, &Prompt{Content: "fix the websocket reconnect logic"})
	if _, err := s.AddPrompt(ctx, &Prompt{Content: "style the settings page"}); err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	results, err := s.SearchPrompts(ctx, "websocket", 10)
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != id {
		t.Errorf("SearchPrompts(websocket) = %v, want prompt %d", results, id)
	}
}

func TestStatsAndTags(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, _ := s.AddPrompt(ctx, &Prompt{Content: "one", Tags: []string{"b-tag", "a-tag"}})
	if _, err := s.AddPrompt(ctx, &Prompt{Content: "two"}); err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}
	if err := s.RatePrompt(ctx, a, 4, ""); err != nil {
		t.Fatalf("RatePrompt() error = %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalPrompts != 2 || stats.RatedPrompts != 1 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgRating != 4 {
		t.Errorf("AvgRating = %v, want 4", stats.AvgRating)
	}

	tags, err := s.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if len(tags) != 2 || tags[0] != "a-tag" || tags[1] != "b-tag" {
		t.Errorf("Tags() = %v, want sorted [a-tag b-tag]", tags)
	}
}

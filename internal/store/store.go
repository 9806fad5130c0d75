// Package store persists the prompt vault: prompts, ratings, tags, and
// trait verdicts, with full-text search over prompt content.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/promptvault/promptvault/internal/insights"
	"github.com/promptvault/promptvault/internal/trait"
)

// ErrNotFound is returned when a prompt id does not exist.
var ErrNotFound = errors.New("prompt not found")

// Prompt is a stored prompt with metadata. Rating is 0 when unrated;
// Verdicts is nil when the prompt has not been analyzed.
type Prompt struct {
	ID         int64
	Content    string
	Outcome    string
	Rating     int
	Model      string
	TaskType   string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Verdicts   *trait.Verdicts
	Provenance trait.Provenance
}

// Rated reports whether the prompt has a rating.
func (p *Prompt) Rated() bool { return p.Rating >= 1 && p.Rating <= 5 }

// Analyzed reports whether the prompt has a complete verdict set.
func (p *Prompt) Analyzed() bool { return p.Verdicts != nil }

// ListFilter narrows ListPrompts output.
type ListFilter struct {
	Tag    string
	Rating int // 0 = any
	Limit  int
	Offset int
}

// Stats summarizes the vault.
type Stats struct {
	TotalPrompts int
	RatedPrompts int
	AvgRating    float64
}

// Store is the persistence contract consumed by the commands. The core
// engine packages never touch it directly; callers assemble engine
// input from it.
type Store interface {
	// AddPrompt inserts a prompt (with tags) and returns its id.
	AddPrompt(ctx context.Context, p *Prompt) (int64, error)

	// GetPrompt loads a prompt with its tags and verdicts.
	GetPrompt(ctx context.Context, id int64) (*Prompt, error)

	// ListPrompts returns prompts newest first, honoring the filter.
	ListPrompts(ctx context.Context, filter ListFilter) ([]*Prompt, error)

	// SearchPrompts runs a full-text query over content and outcome.
	SearchPrompts(ctx context.Context, query string, limit int) ([]*Prompt, error)

	// RatePrompt sets the rating (1-5), overwriting any prior rating.
	// outcome, when non-empty, replaces the outcome note.
	RatePrompt(ctx context.Context, id int64, rating int, outcome string) error

	// SaveVerdicts stores a complete verdict set for a prompt,
	// replacing any prior set. All ten traits are written atomically.
	SaveVerdicts(ctx context.Context, id int64, v trait.Verdicts, provenance trait.Provenance) error

	// Verdicts loads the verdict set for a prompt, or nil when the
	// prompt has not been analyzed.
	Verdicts(ctx context.Context, id int64) (*trait.Verdicts, trait.Provenance, error)

	// UnanalyzedPrompts returns prompts with no stored verdicts.
	UnanalyzedPrompts(ctx context.Context) ([]*Prompt, error)

	// AllPrompts returns every prompt, oldest first.
	AllPrompts(ctx context.Context) ([]*Prompt, error)

	// Observations returns every prompt that is both rated and fully
	// analyzed, shaped for the correlation engine.
	Observations(ctx context.Context) ([]insights.Observation, error)

	// Tags returns all distinct tags, sorted.
	Tags(ctx context.Context) ([]string, error)

	// Stats returns vault-level counts.
	Stats(ctx context.Context) (Stats, error)

	// Close releases the underlying database.
	Close() error
}

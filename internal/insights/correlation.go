// Package insights computes trait/rating correlations over the rated,
// analyzed portion of the vault and turns them into suggestions.
//
// The engine is pure: it holds no state between runs, performs no I/O,
// and always produces identical output for identical input.
package insights

import (
	"math"
	"sort"

	"github.com/promptvault/promptvault/internal/trait"
)

// Named defaults. These are product choices carried over from the
// documented behavior of the vault, not values derived from data.
const (
	// DefaultMinRated is the minimum rated-and-analyzed population
	// before correlations are produced.
	DefaultMinRated = 5

	// DefaultHighCutoff and DefaultLowCutoff bound the outcome cohorts.
	// Ratings strictly between them are neutral and excluded.
	DefaultHighCutoff = 4
	DefaultLowCutoff  = 2

	// DefaultMinDifference is the prevalence spread below which a trait
	// is considered neutral rather than helping or hurting.
	DefaultMinDifference = 0.30

	// DefaultTopPatterns caps the per-cohort pattern lists.
	DefaultTopPatterns = 5
)

// Config carries the engine's thresholds.
type Config struct {
	MinRated      int
	HighCutoff    int
	LowCutoff     int
	MinDifference float64
	TopPatterns   int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinRated:      DefaultMinRated,
		HighCutoff:    DefaultHighCutoff,
		LowCutoff:     DefaultLowCutoff,
		MinDifference: DefaultMinDifference,
		TopPatterns:   DefaultTopPatterns,
	}
}

// Observation is one rated prompt with its complete verdict set.
type Observation struct {
	PromptID int64
	Rating   int
	Verdicts trait.Verdicts
}

// Direction qualifies a trait's association with outcomes.
type Direction int

const (
	Neutral Direction = iota
	Helps
	Hurts
)

func (d Direction) String() string {
	switch d {
	case Helps:
		return "helps"
	case Hurts:
		return "hurts"
	default:
		return "neutral"
	}
}

// Correlation is the cross-cohort result for one trait. Strength is
// only meaningful when both cohorts are non-empty.
type Correlation struct {
	Trait          trait.Trait
	HighPrevalence float64
	LowPrevalence  float64
	Strength       float64
	Direction      Direction
}

// TraitShare is a one-sided cohort observation: the fraction of a
// cohort in which a trait is present (or absent, for missing-trait
// reports).
type TraitShare struct {
	Trait trait.Trait
	Share float64
}

// Report is the full output of one correlation pass.
type Report struct {
	// Ready is false when the population is below MinRated; all other
	// fields except the counts are empty in that case.
	Ready    bool
	MinRated int

	Total     int // rated-and-analyzed observations seen
	HighCount int
	LowCount  int

	// Correlations is present only when both cohorts are non-empty,
	// ranked by absolute strength descending, ties in taxonomy order.
	Correlations []Correlation

	// TopHigh lists the most prevalent traits in the high cohort.
	// MissingLow lists the traits most often absent in the low cohort.
	// Each is populated whenever its cohort is non-empty, so a run with
	// one empty cohort still yields a one-sided report.
	TopHigh    []TraitShare
	MissingLow []TraitShare
}

// Engine computes correlation reports.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given thresholds. Zero-valued
// fields fall back to defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.MinRated <= 0 {
		cfg.MinRated = def.MinRated
	}
	if cfg.HighCutoff <= 0 {
		cfg.HighCutoff = def.HighCutoff
	}
	if cfg.LowCutoff <= 0 {
		cfg.LowCutoff = def.LowCutoff
	}
	if cfg.MinDifference <= 0 {
		cfg.MinDifference = def.MinDifference
	}
	if cfg.TopPatterns <= 0 {
		cfg.TopPatterns = def.TopPatterns
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's effective thresholds.
func (e *Engine) Config() Config { return e.cfg }

// Analyze partitions the observations into outcome cohorts and computes
// per-trait prevalence and cross-cohort strength. It never fails:
// insufficient data and empty cohorts degrade to narrower reports.
func (e *Engine) Analyze(observations []Observation) Report {
	report := Report{
		Total:    len(observations),
		MinRated: e.cfg.MinRated,
	}

	if len(observations) < e.cfg.MinRated {
		return report
	}
	report.Ready = true

	var high, low []Observation
	for _, obs := range observations {
		switch {
		case obs.Rating >= e.cfg.HighCutoff:
			high = append(high, obs)
		case obs.Rating <= e.cfg.LowCutoff:
			low = append(low, obs)
		}
	}
	report.HighCount = len(high)
	report.LowCount = len(low)

	highPrev := prevalence(high)
	lowPrev := prevalence(low)

	if len(high) > 0 && len(low) > 0 {
		report.Correlations = e.correlate(highPrev, lowPrev)
	}
	if len(high) > 0 {
		report.TopHigh = topShares(highPrev, e.cfg.TopPatterns, false)
	}
	if len(low) > 0 {
		report.MissingLow = topShares(lowPrev, e.cfg.TopPatterns, true)
	}

	return report
}

// prevalence computes, per trait, the fraction of the cohort in which
// the trait is present. Returns zeros for an empty cohort; callers must
// check cohort size before treating the values as defined.
func prevalence(cohort []Observation) [trait.Count]float64 {
	var prev [trait.Count]float64
	if len(cohort) == 0 {
		return prev
	}
	for _, obs := range cohort {
		for i, detected := range obs.Verdicts {
			if detected {
				prev[i]++
			}
		}
	}
	for i := range prev {
		prev[i] /= float64(len(cohort))
	}
	return prev
}

// correlate builds the ranked cross-cohort correlation list.
func (e *Engine) correlate(highPrev, lowPrev [trait.Count]float64) []Correlation {
	correlations := make([]Correlation, 0, trait.Count)
	for _, t := range trait.All() {
		strength := highPrev[t] - lowPrev[t]

		direction := Neutral
		switch {
		case strength >= e.cfg.MinDifference:
			direction = Helps
		case strength <= -e.cfg.MinDifference:
			direction = Hurts
		}

		correlations = append(correlations, Correlation{
			Trait:          t,
			HighPrevalence: highPrev[t],
			LowPrevalence:  lowPrev[t],
			Strength:       strength,
			Direction:      direction,
		})
	}

	// Rank by absolute strength; taxonomy order breaks ties so the
	// output is stable across runs.
	sort.SliceStable(correlations, func(i, j int) bool {
		si, sj := math.Abs(correlations[i].Strength), math.Abs(correlations[j].Strength)
		if si != sj {
			return si > sj
		}
		return correlations[i].Trait < correlations[j].Trait
	})

	return correlations
}

// topShares ranks traits by cohort share, descending. When absence is
// set, the share counted is the fraction of the cohort where the trait
// is absent.
func topShares(prev [trait.Count]float64, n int, absence bool) []TraitShare {
	shares := make([]TraitShare, 0, trait.Count)
	for _, t := range trait.All() {
		share := prev[t]
		if absence {
			share = 1 - share
		}
		shares = append(shares, TraitShare{Trait: t, Share: share})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Share != shares[j].Share {
			return shares[i].Share > shares[j].Share
		}
		return shares[i].Trait < shares[j].Trait
	})

	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

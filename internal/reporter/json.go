package reporter

import (
	"encoding/json"
	"io"

	"github.com/promptvault/promptvault/internal/insights"
)

// JSONReporter outputs insight results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

type jsonStats struct {
	TotalPrompts int     `json:"total_prompts"`
	RatedPrompts int     `json:"rated_prompts"`
	AvgRating    float64 `json:"avg_rating"`
}

type jsonCorrelation struct {
	Trait          string  `json:"trait"`
	HighPrevalence float64 `json:"high_prevalence"`
	LowPrevalence  float64 `json:"low_prevalence"`
	Strength       float64 `json:"strength"`
	Direction      string  `json:"direction"`
}

type jsonShare struct {
	Trait string  `json:"trait"`
	Share float64 `json:"share"`
}

type jsonSuggestion struct {
	Trait     string `json:"trait"`
	Direction string `json:"direction"`
	Text      string `json:"text"`
}

type jsonReport struct {
	Stats        jsonStats         `json:"stats"`
	Ready        bool              `json:"ready"`
	MinRated     int               `json:"min_rated"`
	Total        int               `json:"total"`
	HighCount    int               `json:"high_count"`
	LowCount     int               `json:"low_count"`
	Correlations []jsonCorrelation `json:"correlations,omitempty"`
	TopHigh      []jsonShare       `json:"top_high,omitempty"`
	MissingLow   []jsonShare       `json:"missing_low,omitempty"`
	Suggestions  []jsonSuggestion  `json:"suggestions,omitempty"`
}

// Report outputs the insight results as JSON
func (r *JSONReporter) Report(rep InsightsReport) error {
	out := jsonReport{
		Stats: jsonStats{
			TotalPrompts: rep.Stats.TotalPrompts,
			RatedPrompts: rep.Stats.RatedPrompts,
			AvgRating:    rep.Stats.AvgRating,
		},
		Ready:     rep.Report.Ready,
		MinRated:  rep.Report.MinRated,
		Total:     rep.Report.Total,
		HighCount: rep.Report.HighCount,
		LowCount:  rep.Report.LowCount,
	}

	for _, c := range rep.Report.Correlations {
		out.Correlations = append(out.Correlations, jsonCorrelation{
			Trait:          c.Trait.Key(),
			HighPrevalence: c.HighPrevalence,
			LowPrevalence:  c.LowPrevalence,
			Strength:       c.Strength,
			Direction:      c.Direction.String(),
		})
	}
	out.TopHigh = toJSONShares(rep.Report.TopHigh)
	out.MissingLow = toJSONShares(rep.Report.MissingLow)
	for _, s := range rep.Suggestions {
		out.Suggestions = append(out.Suggestions, jsonSuggestion{
			Trait:     s.Trait.Key(),
			Direction: s.Direction.String(),
			Text:      s.Text,
		})
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONShares(shares []insights.TraitShare) []jsonShare {
	var out []jsonShare
	for _, s := range shares {
		out = append(out, jsonShare{Trait: s.Trait.Key(), Share: s.Share})
	}
	return out
}

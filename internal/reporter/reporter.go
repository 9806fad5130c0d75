// Package reporter renders insight reports for the terminal or as JSON.
package reporter

import (
	"github.com/promptvault/promptvault/internal/insights"
	"github.com/promptvault/promptvault/internal/store"
)

// InsightsReport bundles everything the insights command presents.
type InsightsReport struct {
	Stats       store.Stats
	Report      insights.Report
	Suggestions []insights.Suggestion
}

// Reporter defines the interface for outputting insight results
type Reporter interface {
	// Report outputs the insight results
	Report(r InsightsReport) error
}

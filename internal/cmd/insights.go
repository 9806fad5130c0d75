package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/insights"
	"github.com/promptvault/promptvault/internal/reporter"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show which prompt traits correlate with your ratings",
	Long: `Correlate the structural traits of your rated prompts with how
well they worked out. Needs a handful of rated and analyzed prompts
before it has anything to say; rate with 'rate', classify with
'analyze'.`,
	RunE: runInsights,
}

func init() {
	RootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	observations, err := s.Observations(ctx)
	if err != nil {
		return fmt.Errorf("loading rated prompts: %w", err)
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return fmt.Errorf("loading vault stats: %w", err)
	}

	engine := insights.NewEngine(cfg.Insights.EngineConfig())
	report := engine.Analyze(observations)
	suggestions := insights.BuildSuggestions(report, cfg.Insights.MaxSuggestions)

	u := GetUI()
	var rep reporter.Reporter
	if u.IsJSON() {
		rep = reporter.NewJSONReporter(u.Writer)
	} else {
		rep = reporter.NewTerminalReporter(u.Writer, u)
	}
	return rep.Report(reporter.InsightsReport{
		Stats:       stats,
		Report:      report,
		Suggestions: suggestions,
	})
}

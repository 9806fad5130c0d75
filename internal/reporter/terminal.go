package reporter

import (
	"fmt"
	"io"

	"github.com/promptvault/promptvault/internal/insights"
	"github.com/promptvault/promptvault/internal/ui"
)

// barWidth is the width of trait prevalence bars.
const barWidth = 20

// TerminalReporter renders insight reports for humans.
type TerminalReporter struct {
	w io.Writer
	u *ui.UI
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI) *TerminalReporter {
	return &TerminalReporter{w: w, u: u}
}

// Report outputs the insight results
func (r *TerminalReporter) Report(rep InsightsReport) error {
	s := r.u.Styles

	fmt.Fprintln(r.w, s.Header.Render("Your Vault"))
	fmt.Fprintf(r.w, "  %d prompts stored, %d rated", rep.Stats.TotalPrompts, rep.Stats.RatedPrompts)
	if rep.Stats.RatedPrompts > 0 {
		fmt.Fprintf(r.w, " (%.1f avg)", rep.Stats.AvgRating)
	}
	fmt.Fprintln(r.w)

	if !rep.Report.Ready {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf(
			"Need at least %d rated and analyzed prompts for insights. You have %d.",
			rep.Report.MinRated, rep.Report.Total)))
		fmt.Fprintln(r.w, s.Muted.Render("Rate prompts with: promptvault rate <id> <1-5>"))
		return nil
	}

	if len(rep.Report.TopHigh) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Good.Render(fmt.Sprintf("In your best prompts (%d):", rep.Report.HighCount)))
		for _, share := range rep.Report.TopHigh {
			if share.Share == 0 {
				continue
			}
			fmt.Fprintf(r.w, "  %s %s %s\n",
				s.Good.Render(s.IconPresent), s.Bar(share.Share, barWidth), share.Trait.Label())
		}
	}

	if len(rep.Report.MissingLow) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Bad.Render(fmt.Sprintf("Missing from your worst prompts (%d):", rep.Report.LowCount)))
		for _, share := range rep.Report.MissingLow {
			if share.Share == 0 {
				continue
			}
			fmt.Fprintf(r.w, "  %s %s %s\n",
				s.Bad.Render(s.IconAbsent), s.Bar(share.Share, barWidth), share.Trait.Label())
		}
	}

	if len(rep.Report.Correlations) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render("Strongest associations:"))
		for _, c := range rep.Report.Correlations {
			if c.Direction == insights.Neutral {
				continue
			}
			render := r.directionStyle(c.Direction)
			fmt.Fprintf(r.w, "  %s %s (%.0f%% high vs %.0f%% low)\n",
				render(fmt.Sprintf("%-7s", c.Direction)), c.Trait.Label(),
				c.HighPrevalence*100, c.LowPrevalence*100)
		}
	}

	if rep.Report.HighCount == 0 || rep.Report.LowCount == 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Muted.Render(
			"One outcome cohort is empty; cross-cohort correlations are unavailable until both exist."))
	}

	if len(rep.Suggestions) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Warning.Render("Suggestions:"))
		for _, suggestion := range rep.Suggestions {
			fmt.Fprintf(r.w, "  %s %s\n", s.Warning.Render(s.IconSuggestion), suggestion.Text)
		}
	}

	return nil
}

// directionStyle picks the style for a correlation direction.
func (r *TerminalReporter) directionStyle(d insights.Direction) func(...string) string {
	switch d {
	case insights.Helps:
		return r.u.Styles.Good.Render
	case insights.Hurts:
		return r.u.Styles.Bad.Render
	default:
		return r.u.Styles.Muted.Render
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vault-level counts",
	RunE:  runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading vault stats: %w", err)
	}

	u := GetUI()
	fmt.Fprintln(u.Writer, u.Styles.Header.Render("Your Vault"))
	fmt.Fprintf(u.Writer, "  Prompts: %d\n", stats.TotalPrompts)
	fmt.Fprintf(u.Writer, "  Rated:   %d\n", stats.RatedPrompts)
	if stats.RatedPrompts > 0 {
		fmt.Fprintf(u.Writer, "  Average: %.1f %s\n", stats.AvgRating, u.Styles.Stars(int(stats.AvgRating+0.5)))
	}
	return nil
}

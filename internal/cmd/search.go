package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over prompt content and outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results")
	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	prompts, err := s.SearchPrompts(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching prompts: %w", err)
	}

	u := GetUI()
	if len(prompts) == 0 {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render(fmt.Sprintf("No prompts matching %q", args[0])))
		return nil
	}

	for _, p := range prompts {
		fmt.Fprintf(u.Writer, "%s %s %s\n",
			u.Styles.Header.Render(fmt.Sprintf("#%-4d", p.ID)),
			u.Styles.Stars(p.Rating),
			preview(p.Content, 60))
	}
	return nil
}

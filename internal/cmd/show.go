package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/store"
	"github.com/promptvault/promptvault/internal/trait"
	"github.com/promptvault/promptvault/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored prompt in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	RootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parsePromptID(args[0])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.GetPrompt(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no prompt with id %d", id)
	}
	if err != nil {
		return fmt.Errorf("loading prompt: %w", err)
	}

	u := GetUI()
	fmt.Fprintf(u.Writer, "%s %s\n", u.Styles.Header.Render(fmt.Sprintf("Prompt #%d", p.ID)), u.Styles.Stars(p.Rating))
	if meta := promptMeta(p); meta != "" {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render(meta))
	}
	fmt.Fprintln(u.Writer)
	fmt.Fprintln(u.Writer, p.Content)

	if p.Outcome != "" {
		fmt.Fprintln(u.Writer)
		fmt.Fprintf(u.Writer, "%s %s\n", u.Styles.Subheader.Render("Outcome:"), p.Outcome)
	}

	if p.Analyzed() {
		fmt.Fprintln(u.Writer)
		fmt.Fprintln(u.Writer, u.Styles.Subheader.Render(
			fmt.Sprintf("Traits (%s):", p.Provenance)))
		printVerdicts(u, *p.Verdicts)
	}
	return nil
}

// printVerdicts renders the ten-trait checklist.
func printVerdicts(u *ui.UI, v trait.Verdicts) {
	for _, t := range trait.All() {
		if v[t] {
			fmt.Fprintf(u.Writer, "  %s %s\n", u.Styles.Good.Render(u.Styles.IconPresent), t.Label())
		} else {
			fmt.Fprintf(u.Writer, "  %s %s\n", u.Styles.Muted.Render(u.Styles.IconAbsent), u.Styles.Muted.Render(t.Label()))
		}
	}
}

// parsePromptID parses a positional prompt id argument.
func parsePromptID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid prompt id %q", arg)
	}
	return id, nil
}

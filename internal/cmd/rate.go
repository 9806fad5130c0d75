package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/store"
)

var rateOutcome string

var rateCmd = &cobra.Command{
	Use:   "rate <id> <1-5>",
	Short: "Rate how a prompt worked out",
	Long: `Rate a prompt from 1 (useless) to 5 (nailed it). Re-rating
overwrites the previous rating; hindsight wins.

  promptvault rate 12 5 -o "one-shot fix, no follow-up needed"`,
	Args: cobra.ExactArgs(2),
	RunE: runRate,
}

func init() {
	rateCmd.Flags().StringVarP(&rateOutcome, "outcome", "o", "", "Note on what happened")
	RootCmd.AddCommand(rateCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	id, err := parsePromptID(args[0])
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be a whole number from 1 to 5, got %q", args[1])
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RatePrompt(cmd.Context(), id, rating, rateOutcome); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no prompt with id %d", id)
		}
		return fmt.Errorf("rating prompt: %w", err)
	}

	u := GetUI()
	fmt.Fprintf(u.Writer, "%s Rated prompt #%d: %s\n",
		u.Styles.Success.Render(u.Styles.IconSuccess), id, u.Styles.Stars(rating))
	return nil
}

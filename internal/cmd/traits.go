package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/store"
)

var traitsOffline bool

var traitsCmd = &cobra.Command{
	Use:   "traits <id>",
	Short: "Show the trait verdicts for one prompt",
	Long: `Show which of the ten structural traits a prompt carries.
Classifies the prompt on the spot when it has no stored verdicts.`,
	Args: cobra.ExactArgs(1),
	RunE: runTraits,
}

func init() {
	traitsCmd.Flags().BoolVar(&traitsOffline, "offline", false, "Skip the LLM backend, classify by rules only")
	RootCmd.AddCommand(traitsCmd)
}

func runTraits(cmd *cobra.Command, args []string) error {
	id, err := parsePromptID(args[0])
	if err != nil {
		return err
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	p, err := s.GetPrompt(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no prompt with id %d", id)
	}
	if err != nil {
		return fmt.Errorf("loading prompt: %w", err)
	}

	u := GetUI()
	if !p.Analyzed() {
		chain := buildClassifier(cfg, traitsOffline, "")
		verdicts, provenance, err := chain.Classify(ctx, p.Content)
		if err != nil {
			return fmt.Errorf("classifying prompt #%d: %w", id, err)
		}
		if err := s.SaveVerdicts(ctx, id, verdicts, provenance); err != nil {
			return fmt.Errorf("saving verdicts: %w", err)
		}
		p.Verdicts = &verdicts
		p.Provenance = provenance
	}

	fmt.Fprintf(u.Writer, "%s %s\n",
		u.Styles.Header.Render(fmt.Sprintf("Prompt #%d traits", p.ID)),
		u.Styles.Muted.Render(fmt.Sprintf("(%s)", p.Provenance)))
	printVerdicts(u, *p.Verdicts)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/classifier"
	"github.com/promptvault/promptvault/internal/config"
	"github.com/promptvault/promptvault/internal/llm"
	"github.com/promptvault/promptvault/internal/store"
	"github.com/promptvault/promptvault/internal/trait"
)

var (
	analyzeOffline bool
	analyzeAll     bool
	analyzeModel   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify the structural traits of stored prompts",
	Long: `Classify every unanalyzed prompt against the ten-trait taxonomy.
Uses the configured LLM backend when available and falls back to
rule-based detection per prompt, so the batch always completes.

  promptvault analyze            classify prompts without verdicts
  promptvault analyze --offline  rule-based only, no network
  promptvault analyze --all      reclassify every prompt`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "Skip the LLM backend, classify by rules only")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Reclassify all prompts, including already analyzed ones")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Override the configured classification model")
	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	var prompts []*store.Prompt
	if analyzeAll {
		prompts, err = s.AllPrompts(ctx)
	} else {
		prompts, err = s.UnanalyzedPrompts(ctx)
	}
	if err != nil {
		return fmt.Errorf("loading prompts: %w", err)
	}

	u := GetUI()
	if len(prompts) == 0 {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render("Nothing to analyze."))
		return nil
	}

	chain := buildClassifier(cfg, analyzeOffline, analyzeModel)

	progress := u.StartProgress()
	progress.SetPromptCount(len(prompts))

	var byLLM, byRule, failed int
	for _, p := range prompts {
		progress.PromptStart(p.ID)

		verdicts, provenance, err := chain.Classify(ctx, p.Content)
		if err != nil {
			failed++
			progress.PromptDone()
			fmt.Fprintln(u.ErrWriter, u.Styles.Warning.Render(
				fmt.Sprintf("%s prompt #%d: %v", u.Styles.IconWarning, p.ID, err)))
			continue
		}

		if err := s.SaveVerdicts(ctx, p.ID, verdicts, provenance); err != nil {
			progress.Done(err)
			return fmt.Errorf("saving verdicts for prompt #%d: %w", p.ID, err)
		}

		switch provenance {
		case trait.ProvenanceLLM:
			byLLM++
		default:
			byRule++
		}
		progress.PromptDone()

		if verbose && !u.IsInteractive() {
			fmt.Fprintf(u.Writer, "#%-4d %d traits (%s)\n", p.ID, verdicts.NumPresent(), provenance)
		}
	}
	progress.Done(nil)

	fmt.Fprintf(u.Writer, "%s Analyzed %d prompts", u.Styles.Success.Render(u.Styles.IconSuccess), byLLM+byRule)
	if byLLM > 0 && byRule > 0 {
		fmt.Fprintf(u.Writer, " (%d via %s, %d rule-based)", byLLM, trait.ProvenanceLLM, byRule)
	} else if byRule > 0 {
		fmt.Fprint(u.Writer, " (rule-based)")
	}
	fmt.Fprintln(u.Writer)
	if failed > 0 {
		fmt.Fprintln(u.Writer, u.Styles.Warning.Render(fmt.Sprintf("%d prompts could not be classified", failed)))
	}
	return nil
}

// buildClassifier assembles the classification chain from the config.
// The rule classifier is always the terminal fallback.
func buildClassifier(cfg *config.Config, offline bool, modelOverride string) *classifier.Fallback {
	rules := classifier.NewRuleClassifier()
	if offline || cfg.LLM.Backend == config.BackendOff {
		return classifier.NewFallback(nil, rules)
	}

	model := cfg.LLM.Model
	if modelOverride != "" {
		model = modelOverride
	}

	var gen llm.Generator
	switch cfg.LLM.Backend {
	case config.BackendCLI:
		if g := llm.NewClaudeCodeGenerator(model); g != nil {
			gen = g
		}
	default:
		if g := llm.NewAnthropicGenerator(model); g != nil {
			gen = g
		}
	}
	if gen == nil {
		return classifier.NewFallback(nil, rules)
	}
	return classifier.NewFallback(classifier.NewLLMClassifier(gen, cfg.LLM.Timeout()), rules)
}

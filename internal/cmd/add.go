package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/store"
	"github.com/promptvault/promptvault/internal/ui"
)

var (
	addModel    string
	addTaskType string
	addTags     []string
)

var addCmd = &cobra.Command{
	Use:   "add [prompt text]",
	Short: "Store a prompt in the vault",
	Long: `Store a prompt in the vault. The prompt text can be passed as an
argument or piped on stdin:

  promptvault add "Fix the race in the session store" -t bugfix
  pbpaste | promptvault add --tags auth,refactor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addModel, "model", "m", "", "Model the prompt was sent to")
	addCmd.Flags().StringVarP(&addTaskType, "task-type", "t", "", "Kind of task (bugfix, feature, refactor, ...)")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma-separated tags")
	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	content, err := readPromptContent(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("prompt content is empty")
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.AddPrompt(cmd.Context(), &store.Prompt{
		Content:  content,
		Model:    addModel,
		TaskType: addTaskType,
		Tags:     addTags,
	})
	if err != nil {
		return fmt.Errorf("storing prompt: %w", err)
	}

	u := GetUI()
	fmt.Fprintf(u.Writer, "%s Saved prompt #%d\n", u.Styles.Success.Render(u.Styles.IconSuccess), id)
	if verbose {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render(
			fmt.Sprintf("Rate it later with: promptvault rate %d <1-5>", id)))
	}
	return nil
}

// readPromptContent takes the prompt text from the argument when given,
// otherwise from stdin. On a terminal the user types the prompt and
// ends it with ctrl-d.
func readPromptContent(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !ui.StdinIsPiped() {
		fmt.Fprintln(os.Stderr, "Enter prompt text, end with ctrl-d:")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

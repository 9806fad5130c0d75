package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/store"
)

var (
	listTag    string
	listRating int
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored prompts, newest first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only prompts carrying this tag")
	listCmd.Flags().IntVar(&listRating, "rating", 0, "Only prompts with this exact rating (1-5)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of prompts to show")
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	prompts, err := s.ListPrompts(cmd.Context(), store.ListFilter{
		Tag:    listTag,
		Rating: listRating,
		Limit:  listLimit,
	})
	if err != nil {
		return fmt.Errorf("listing prompts: %w", err)
	}

	u := GetUI()
	if len(prompts) == 0 {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render("No prompts found. Add one with: promptvault add"))
		return nil
	}

	for _, p := range prompts {
		fmt.Fprintf(u.Writer, "%s %s %s\n",
			u.Styles.Header.Render(fmt.Sprintf("#%-4d", p.ID)),
			u.Styles.Stars(p.Rating),
			preview(p.Content, 60))
		if meta := promptMeta(p); meta != "" {
			fmt.Fprintf(u.Writer, "      %s\n", u.Styles.Muted.Render(meta))
		}
	}
	return nil
}

// preview collapses a prompt to a single trimmed line.
func preview(content string, max int) string {
	line := strings.Join(strings.Fields(content), " ")
	if len(line) > max {
		line = line[:max-3] + "..."
	}
	return line
}

// promptMeta renders the secondary line under a list entry.
func promptMeta(p *store.Prompt) string {
	var parts []string
	if p.TaskType != "" {
		parts = append(parts, p.TaskType)
	}
	if p.Model != "" {
		parts = append(parts, p.Model)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(p.Tags, " #"))
	}
	parts = append(parts, p.CreatedAt.Format("2006-01-02"))
	return strings.Join(parts, " · ")
}

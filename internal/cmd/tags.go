package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in the vault",
	RunE:  runTags,
}

func init() {
	RootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tags, err := s.Tags(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}

	u := GetUI()
	if len(tags) == 0 {
		fmt.Fprintln(u.Writer, u.Styles.Muted.Render("No tags yet. Tag prompts with: promptvault add --tags ..."))
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintln(u.Writer, u.Styles.Tag.Render("#"+tag))
	}
	return nil
}

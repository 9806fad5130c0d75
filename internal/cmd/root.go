// Package cmd wires the promptvault subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptvault/promptvault/internal/config"
	"github.com/promptvault/promptvault/internal/store"
	"github.com/promptvault/promptvault/internal/ui"
)

var (
	// Global flags
	verbose bool
	format  string
	dbPath  string
)

// RootCmd is the promptvault command tree root.
var RootCmd = &cobra.Command{
	Use:   "promptvault",
	Short: "A personal vault for AI coding prompts",
	Long: `promptvault stores the prompts you send to AI coding assistants,
lets you rate how each one worked out, and analyzes which structural
traits of your prompts correlate with good and bad outcomes.

Store prompts with 'add', grade them with 'rate', classify their
traits with 'analyze', and read the patterns with 'insights'.`,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the vault database (default ~/.promptvault/prompts.db)")
}

var globalUI *ui.UI

// GetUI returns the process-wide UI, created on first use so the
// --format flag has been parsed.
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

// loadConfig reads the vault configuration, applying the --db override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openStore opens the vault for a command run.
func openStore() (store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vault at %s: %w", cfg.DBPath, err)
	}
	return s, cfg, nil
}

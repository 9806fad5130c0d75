package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"
)

// ClaudeCodeGenerator generates text through the locally installed
// Claude Code CLI. Useful when no API key is configured but the CLI is
// authenticated.
type ClaudeCodeGenerator struct {
	model string
}

// NewClaudeCodeGenerator creates a CLI-backed generator. Returns nil if
// the Claude Code CLI is not installed.
func NewClaudeCodeGenerator(model string) *ClaudeCodeGenerator {
	ctx := context.Background()
	_, err := claudecode.Query(ctx, "echo test",
		claudecode.WithModel("haiku"),
		claudecode.WithMaxTurns(1),
	)
	if err != nil && claudecode.IsCLINotFoundError(err) {
		return nil
	}
	if model == "" {
		model = "haiku"
	}
	return &ClaudeCodeGenerator{model: model}
}

// Name identifies the backend.
func (g *ClaudeCodeGenerator) Name() string { return "claude-code" }

// Generate runs one query against the CLI and concatenates the
// assistant text blocks.
func (g *ClaudeCodeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", fmt.Errorf("claude code generator not initialized (CLI not available)")
	}

	iterator, err := claudecode.Query(ctx, truncate(prompt, maxPromptBytes),
		claudecode.WithModel(g.model),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		return "", fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var b strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return "", fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					b.WriteString(textBlock.Text)
				}
			}
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from claude code")
	}
	return b.String(), nil
}

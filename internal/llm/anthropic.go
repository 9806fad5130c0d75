package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is the model used when the config does not name one.
const DefaultModel = string(anthropic.ModelClaude3_5Haiku20241022)

// maxPromptBytes caps how much prompt text is sent per request.
const maxPromptBytes = 8000

// AnthropicGenerator generates text via the Anthropic Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	model  string
}

// NewAnthropicGenerator creates an API-backed generator. Returns nil if
// ANTHROPIC_API_KEY is not set.
func NewAnthropicGenerator(model string) *AnthropicGenerator {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGenerator{client: client, model: model}
}

// Name identifies the backend.
func (g *AnthropicGenerator) Name() string { return "anthropic-api" }

// Generate issues one Messages request and returns the first text block.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", fmt.Errorf("anthropic generator not initialized (missing ANTHROPIC_API_KEY)")
	}

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 1000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(truncate(prompt, maxPromptBytes))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}

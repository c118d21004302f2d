package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

// ClaudeClient implements Client for Anthropic Claude
type ClaudeClient struct {
	client *anthropic.Client
	config *Config
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(config *Config, apiKey string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if config.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(config.BaseURL))
	}
	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
		config: config,
	}
}

// GenerateContent generates text content using the specified model tier
func (c *ClaudeClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := modelFor(c.config, tier)
	if err != nil {
		return "", err
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: c.config.maxTokens(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var parts []string
	for _, content := range resp.Content {
		if content.Text != nil {
			parts = append(parts, *content.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return strings.Join(parts, ""), nil
}

// GenerateJSON generates JSON content using the specified model tier.
// Claude has no JSON response mode, so the object is cut out of the reply.
func (c *ClaudeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	if obj := ExtractJSONObject(text); obj != "" {
		return obj, nil
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *ClaudeClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no resources.
func (c *ClaudeClient) Close() error {
	return nil
}

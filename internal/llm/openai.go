package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Client for the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// Complete sends the prompt pair to the chat completions endpoint using the
// model configured for the tier.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       modelName,
		Temperature: openai.Float(float64(c.config.Temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return completion.Choices[0].Message.Content, nil
}

// GetModel returns the model name for a tier.
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op for the OpenAI client; the underlying HTTP client holds no
// resources that need explicit release.
func (c *OpenAIClient) Close() error {
	return nil
}

package llmservice

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"research-rag/internal/config"
)

// Client wraps the Gemini chat model behind a single Generate call.
type Client struct {
	llm   *googleai.GoogleAI
	model string
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GoogleAPIKey),
		googleai.WithDefaultModel(cfg.LLMModel),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, model: cfg.LLMModel}, nil
}

// Generate sends the rendered prompt to the model and returns the answer
// text. Low temperature keeps answers grounded in the supplied context.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages,
		llms.WithModel(c.model),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return res.Choices[0].Content, nil
}

package content

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"shortsfactory/config"
	"shortsfactory/types"
)

// OpenAIProvider generates scripts with the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  config.GetEnvOrDefault("OPENAI_MODEL", openai.GPT4oMini),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, topic string, targetDuration float64) (*types.GeneratedContent, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Eres un guionista de videos cortos virales en español. Respondes solo con JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(topic, targetDuration),
			},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	return parseResponse(resp.Choices[0].Message.Content, topic)
}

package provider

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/sanitize"
)

const openAIModel = "gpt-4o-mini"

// OpenAI generates summaries through the OpenAI Chat Completions API.
type OpenAI struct {
	apiKey string
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{apiKey: apiKey}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Available() bool { return o.apiKey != "" }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", &ConfigurationError{Provider: o.Name(), Hint: "OPENAI_API_KEY"}
	}

	client := openai.NewClient(o.apiKey)
	log.Printf("[openai] generating with model %s (%d prompt chars)", openAIModel, len(prompt))

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openAIModel,
		Temperature: generationTemperature,
		MaxTokens:   maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: fmt.Errorf("chat completion: %w", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: o.Name(), Err: fmt.Errorf("empty OpenAI response")}
	}

	return sanitize.Clean(resp.Choices[0].Message.Content), nil
}

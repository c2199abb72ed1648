package provider

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/sanitize"
)

const defaultGeminiModel = "gemini-2.0-flash"

// ModelResolver returns the current model name from settings, or "" to use
// the backend default.
type ModelResolver func() string

// Gemini generates summaries through the Google Gemini API.
type Gemini struct {
	apiKey        string
	modelResolver ModelResolver
}

func NewGemini(apiKey string, modelResolver ModelResolver) *Gemini {
	return &Gemini{apiKey: apiKey, modelResolver: modelResolver}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Available() bool { return g.apiKey != "" }

func (g *Gemini) currentModel() string {
	if g.modelResolver != nil {
		if m := g.modelResolver(); m != "" {
			return m
		}
	}
	return defaultGeminiModel
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", &ConfigurationError{Provider: g.Name(), Hint: "GEMINI_API_KEY"}
	}

	// The client is constructed per call: the key may have been rotated via
	// settings and an unconfigured backend must not fail at startup.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: fmt.Errorf("create client: %w", err)}
	}

	model := g.currentModel()
	log.Printf("[gemini] generating with model %s (%d prompt chars)", model, len(prompt))

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       genai.Ptr(float32(generationTemperature)),
		MaxOutputTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: fmt.Errorf("generate content: %w", err)}
	}

	var text strings.Builder
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	if text.Len() == 0 {
		return "", &ProviderError{Provider: g.Name(), Err: fmt.Errorf("empty Gemini response")}
	}

	return sanitize.Clean(text.String()), nil
}

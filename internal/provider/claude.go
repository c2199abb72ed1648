package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/sanitize"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	claudeModel          = "claude-3-5-haiku-latest"
)

// Claude generates summaries through the Anthropic Messages API.
type Claude struct {
	apiKey     string
	httpClient *http.Client
}

func NewClaude(apiKey string) *Claude {
	return &Claude{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *Claude) Name() string { return "claude" }

func (c *Claude) Available() bool { return c.apiKey != "" }

func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &ConfigurationError{Provider: c.Name(), Hint: "ANTHROPIC_API_KEY"}
	}

	reqBody := map[string]interface{}{
		"model":       claudeModel,
		"max_tokens":  maxOutputTokens,
		"temperature": generationTemperature,
		"system":      systemInstruction,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", anthropicMessagesURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	log.Printf("[claude] generating with model %s (%d prompt chars)", claudeModel, len(prompt))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("Anthropic API request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: c.Name(),
			Err:      fmt.Errorf("Anthropic API error (status %d): %s", resp.StatusCode, string(body)),
		}
	}

	var msgResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("parse response: %w", err)}
	}

	var text strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &ProviderError{Provider: c.Name(), Err: fmt.Errorf("empty Claude response")}
	}

	return sanitize.Clean(text.String()), nil
}

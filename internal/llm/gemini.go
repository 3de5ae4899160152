package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const geminiTimeout = 8 * time.Second

// GeminiProvider classifies descriptions with the Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{apiKey: strings.TrimSpace(apiKey), model: model}
}

func (p *GeminiProvider) Categorize(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("gemini: api key not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	prompt := "You are a financial transaction categorizer. " +
		"Respond with ONLY the category name, nothing else.\n\n" +
		fmt.Sprintf("Categorize this transaction: %q ($%.2f) into one of these categories: %s.",
			req.Description, req.Amount, strings.Join(req.Categories, ", "))

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}
	resp, err := client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return answer, nil
}

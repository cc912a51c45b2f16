package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wireframe_ai_server/internal/ai/utils"
	retry "wireframe_ai_server/internal/utils"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the model answers with no usable HTML.
var ErrEmptyResponse = errors.New("openai returned empty response")

type Generator struct {
	client     *openai.Client
	model      string
	retryDelay time.Duration
}

// NewGenerator builds a Generator. An empty model selects GPT-4o; a non-empty
// baseURL points the client at an OpenAI-compatible endpoint.
func NewGenerator(apiKey, model, baseURL string) *Generator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &Generator{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		retryDelay: 2 * time.Second,
	}
}

// complete runs one chat completion and returns the cleaned HTML of the first choice.
// Transient failures are retried once.
func (g *Generator) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: temperature,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil && retry.ShouldRetry(err) && ctx.Err() == nil {
		log.Printf("OpenAI call failed, retrying once after %s... Error: %v", g.retryDelay, err)
		select {
		case <-time.After(g.retryDelay):
			resp, err = g.client.CreateChatCompletion(ctx, req)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for failed request: %+v", resp.Usage)
		return "", ErrEmptyResponse
	}

	html := utils.ExtractHTML(resp.Choices[0].Message.Content)
	if html == "" {
		return "", ErrEmptyResponse
	}
	return html, nil
}

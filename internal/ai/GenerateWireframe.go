package ai

import (
	"context"
	"fmt"
	"log"

	"wireframe_ai_server/internal/ai/prompts"
)

// GenerateWireframe turns a chat prompt into a complete wireframe document.
func (g *Generator) GenerateWireframe(ctx context.Context, userPrompt string) (string, error) {
	fullPrompt := fmt.Sprintf(prompts.GetWireframeGenerationPrompt(), userPrompt)

	html, err := g.complete(ctx, prompts.WireframeSystemPrompt, fullPrompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("generate wireframe: %w", err)
	}

	log.Printf("Generated wireframe: %d bytes", len(html))
	return html, nil
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wireframe_ai_server/internal/ai/prompts"
)

// RefineWireframe applies a chat instruction to the current HTML of a page and
// returns the full updated document.
func (g *Generator) RefineWireframe(ctx context.Context, instruction, currentHTML string) (string, error) {
	if currentHTML == "" {
		return "", errors.New("nothing to refine: current page is empty")
	}
	fullPrompt, systemPrompt := prompts.GetRefinePrompt(instruction, currentHTML)

	html, err := g.complete(ctx, systemPrompt, fullPrompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("refine wireframe: %w", err)
	}

	log.Printf("Refined wireframe: %d -> %d bytes", len(currentHTML), len(html))
	return html, nil
}

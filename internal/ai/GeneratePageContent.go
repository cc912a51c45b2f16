package ai

import (
	"context"
	"fmt"
	"log"

	"wireframe_ai_server/internal/ai/prompts"
)

// GeneratePageContent produces a standalone HTML fragment for one page of a wireframe.
func (g *Generator) GeneratePageContent(ctx context.Context, description, kind string) (string, error) {
	log.Printf("Generating %s content (%d char description)", kind, len(description))

	html, err := g.complete(ctx, prompts.WireframeSystemPrompt, prompts.GetPageContentPrompt(description, kind), 0.4)
	if err != nil {
		return "", fmt.Errorf("generate %s content: %w", kind, err)
	}

	log.Printf("Generated %d bytes of %s content", len(html), kind)
	return html, nil
}

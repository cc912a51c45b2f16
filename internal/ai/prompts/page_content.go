package prompts

import "fmt"

// GetPageContentPrompt builds the prompt for a single page, modal or component of a
// multi-page wireframe.
func GetPageContentPrompt(description, kind string) string {
	var framing string
	switch kind {
	case "modal":
		framing = "a modal dialog shown over an existing page: a centered panel with a title bar, body and action buttons"
	case "component":
		framing = "a single reusable UI component shown on its own, not a full page"
	default:
		framing = "a full application page with header, navigation and main content"
	}

	return fmt.Sprintf(`
		Design %s.

		What it must contain:
		---
		%s
		---

		Return one HTML fragment rooted in a single <div>, using inline styles only
		(primary #0078D4, text #323130, font 'Segoe UI', sans-serif). No <script> tags,
		no explanation, no markdown fences.
	`, framing, description)
}

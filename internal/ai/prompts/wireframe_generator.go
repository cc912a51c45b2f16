package prompts

// WireframeSystemPrompt is shared by every wireframe generation call.
const WireframeSystemPrompt = "You are a UI wireframe designer. You answer with a single self-contained HTML fragment and nothing else."

// Constant for the initial wireframe generation prompt template
func GetWireframeGenerationPrompt() string {
	return `
		A user described the interface they want:

		---
		"%s"
		---

		Produce a wireframe for it following these rules:

		1.  **Output**: one HTML fragment rooted in a single ` + "`<div>`" + `. No ` + "`<html>`" + `, ` + "`<head>`" + ` or ` + "`<script>`" + ` tags.
		2.  **Styling**: inline styles only, Fluent-like look:
			*   Primary: #0078D4
			*   Neutral text: #323130
			*   Background: #FAF9F8
			*   Font: 'Segoe UI', sans-serif
		3.  **Layout**: header, navigation, main content and footer regions where they make sense; flexbox or grid.
		4.  **Content**: realistic labels and sample data, no lorem ipsum.
		5.  **Editability**: plain text nodes for all copy so the user can edit it in place.

		Only return the HTML. Your output is rendered directly in a preview pane.
	`
}

package utils

import (
	"strings"
)

// ExtractHTML strips markdown code fences and any chatter around the markup the
// model returned. Output that contains no tag at all is returned trimmed.
func ExtractHTML(llmOutput string) string {
	cleaned := strings.TrimSpace(llmOutput)
	for _, fence := range []string{"```html", "```HTML", "```"} {
		if i := strings.Index(cleaned, fence); i != -1 {
			rest := cleaned[i+len(fence):]
			if j := strings.Index(rest, "```"); j != -1 {
				rest = rest[:j]
			}
			cleaned = strings.TrimSpace(rest)
			break
		}
	}

	start := strings.Index(cleaned, "<")
	end := strings.LastIndex(cleaned, ">")
	if start == -1 || end == -1 || end < start {
		return cleaned
	}
	return strings.TrimSpace(cleaned[start : end+1])
}

package prompts

import "fmt"

func GetRefinePrompt(instruction string, currentHTML string) (string, string) {
	prompt := `
		User's instruction:
		---
		%s
		---

		Current HTML of the page:
		---
		%s
		---

		Apply the instruction and return the complete updated HTML fragment.
		Keep everything the instruction does not mention unchanged.
	`

	fullprompt := fmt.Sprintf(prompt, instruction, currentHTML)
	refineSystemPrompt := `
		You are a wireframe assistant helping to **update an existing page**.
		Respond ONLY with the full updated HTML fragment.
	`

	return fullprompt, refineSystemPrompt
}

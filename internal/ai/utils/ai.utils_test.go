package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHTML(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "<div>hi</div>", "<div>hi</div>"},
		{"fenced", "```html\n<div>hi</div>\n```", "<div>hi</div>"},
		{"bare fence", "```\n<section/>\n```", "<section/>"},
		{"chatter", "Here is your page:\n<div>ok</div>\nEnjoy!", "<div>ok</div>"},
		{"no markup", "  sorry  ", "sorry"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractHTML(tc.in))
		})
	}
}

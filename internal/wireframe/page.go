package wireframe

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the placeholder template and label of a page.
type Kind string

const (
	KindPage      Kind = "page"
	KindModal     Kind = "modal"
	KindComponent Kind = "component"
)

// HomePageID is the id of the page synthesized when the first content arrives.
const HomePageID = "home-page"

// FirstPageName is the display name of the bootstrapped page.
const FirstPageName = "First Page"

// Page describes one screen, modal or component of the wireframe.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        Kind   `json:"type"`
	// InlineContent is HTML carried on the descriptor itself, e.g. generated
	// when the page was created. Used only when the store has no entry.
	InlineContent string `json:"content,omitempty"`
	// GenerationFailed marks InlineContent as a failed-generation fallback.
	GenerationFailed bool `json:"generationFailed,omitempty"`
}

// contentReady reports whether the page carries generated content.
func (p Page) contentReady() bool {
	return p.InlineContent != "" && !p.GenerationFailed
}

// ParseKind maps a client-supplied type to a Kind. Unknown values fall back to KindPage.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindModal:
		return KindModal
	case KindComponent:
		return KindComponent
	default:
		return KindPage
	}
}

// Label is the human readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindModal:
		return "Modal"
	case KindComponent:
		return "Component"
	default:
		return "Page"
	}
}

func (k Kind) lowerLabel() string {
	return strings.ToLower(k.Label())
}

// NewPageID returns a fresh page id.
func NewPageID() string {
	return "page-" + uuid.New().String()
}

// displayName is the label used in notifications. Description is the fallback.
func (p Page) displayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	if strings.TrimSpace(p.Description) != "" {
		return p.Description
	}
	return p.ID
}

// ValidationError reports the offending field of a rejected page list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MinDescriptionLength is the shortest description accepted as a generation prompt.
const MinDescriptionLength = 10

// ValidatePages checks a page list before any state is touched. When generate is
// set, every page that would need generated content must carry a usable description.
// existing holds the ids already registered; those pages are never regenerated.
func ValidatePages(pages []Page, existing map[string]bool, generate bool) error {
	seen := make(map[string]bool, len(pages))
	for i, p := range pages {
		if strings.TrimSpace(p.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("pages[%d].name", i), Message: "name is required"}
		}
		if p.ID != "" {
			if seen[p.ID] {
				return &ValidationError{Field: fmt.Sprintf("pages[%d].id", i), Message: "duplicate page id " + p.ID}
			}
			seen[p.ID] = true
		}
		if !generate || existing[p.ID] || p.InlineContent != "" {
			continue
		}
		if len(strings.TrimSpace(p.Description)) < MinDescriptionLength {
			return &ValidationError{
				Field:   fmt.Sprintf("pages[%d].description", i),
				Message: fmt.Sprintf("description must be at least %d characters to generate content", MinDescriptionLength),
			}
		}
	}
	return nil
}

// AssignIDs gives every page without an id a fresh one and normalizes kinds.
// The input slice is not modified.
func AssignIDs(pages []Page) []Page {
	out := make([]Page, len(pages))
	for i, p := range pages {
		if p.ID == "" {
			p.ID = NewPageID()
		}
		p.Kind = ParseKind(string(p.Kind))
		out[i] = p
	}
	return out
}

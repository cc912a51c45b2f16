package wireframe

import (
	"fmt"
	"log"
)

// Phase tracks how the registry came to hold its pages.
type Phase int

const (
	// PhaseEmpty: no page has ever existed; the buffer is free-standing.
	PhaseEmpty Phase = iota
	// PhaseImplicit: the single bootstrapped "First Page" is the only page ever registered.
	PhaseImplicit
	// PhaseMulti: the registry has been set by at least one reconcile.
	PhaseMulti
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseImplicit:
		return "implicit"
	case PhaseMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Manager owns the page registry, the per-page content store and the active buffer.
//
// A Manager is not safe for concurrent use. Callers serialize access (see package session).
type Manager struct {
	pages   []Page
	content map[string]string
	active  string
	buffer  string
	phase   Phase
	notify  Notifier
}

// NewManager returns an empty manager. A nil notifier discards messages.
func NewManager(n Notifier) *Manager {
	if n == nil {
		n = discardNotifier{}
	}
	return &Manager{
		content: make(map[string]string),
		notify:  n,
	}
}

// State is a copy of everything the manager holds.
type State struct {
	Pages         []Page            `json:"pages"`
	ActivePageID  string            `json:"activePageId"`
	ActiveContent string            `json:"activeContent"`
	Phase         string            `json:"phase"`
	Content       map[string]string `json:"content,omitempty"`
}

// Snapshot returns a copy of the current state. withContent includes the content store.
func (m *Manager) Snapshot(withContent bool) State {
	s := State{
		Pages:         m.Pages(),
		ActivePageID:  m.active,
		ActiveContent: m.buffer,
		Phase:         m.phase.String(),
	}
	if withContent {
		s.Content = make(map[string]string, len(m.content))
		for k, v := range m.content {
			s.Content[k] = v
		}
	}
	return s
}

// Pages returns a copy of the registry in order.
func (m *Manager) Pages() []Page {
	out := make([]Page, len(m.pages))
	copy(out, m.pages)
	return out
}

// Page looks up a registered page by id.
func (m *Manager) Page(id string) (Page, bool) {
	for _, p := range m.pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Content returns the stored HTML for a page.
func (m *Manager) Content(id string) (string, bool) {
	c, ok := m.content[id]
	return c, ok
}

// ActivePageID returns the active page id, or "" when the buffer is free-standing.
func (m *Manager) ActivePageID() string { return m.active }

// ActiveContent returns the active buffer.
func (m *Manager) ActiveContent() string { return m.buffer }

// Phase reports the bootstrap phase.
func (m *Manager) Phase() Phase { return m.phase }

// BootstrapFirstPage binds content to the well-known first page when no page
// has ever been registered. It reports whether a page was created.
func (m *Manager) BootstrapFirstPage(content string) bool {
	if m.phase != PhaseEmpty || len(m.pages) > 0 {
		return false
	}
	m.pages = []Page{{
		ID:          HomePageID,
		Name:        FirstPageName,
		Description: FirstPageName,
		Kind:        KindPage,
	}}
	m.content[HomePageID] = content
	m.active = HomePageID
	m.buffer = content
	m.phase = PhaseImplicit
	log.Printf("Info: bootstrapped %q with %d bytes of content", HomePageID, len(content))
	return true
}

// RecordActiveContent writes content into the store entry of the active page.
// Without an active page it does nothing.
func (m *Manager) RecordActiveContent(content string) {
	if m.active == "" {
		return
	}
	m.content[m.active] = content
}

// UpdateContent replaces the active buffer, e.g. with a fresh generation result or
// an in-place edit, and keeps the store consistent with it.
func (m *Manager) UpdateContent(content string) {
	m.buffer = content
	if content != "" && m.BootstrapFirstPage(content) {
		return
	}
	m.RecordActiveContent(content)
}

// resolve picks the content for page p: store, then inline content, then a
// synthesized placeholder. Inline content and placeholders are persisted so the
// next resolve takes the store path.
func (m *Manager) resolve(p Page) (string, ContentSource) {
	if c, ok := m.content[p.ID]; ok {
		return c, SourceStore
	}
	if p.InlineContent != "" {
		m.content[p.ID] = p.InlineContent
		return p.InlineContent, SourceInline
	}
	c := Placeholder(p.displayName(), p.Kind)
	m.content[p.ID] = c
	return c, SourcePlaceholder
}

// ContentSource tells where resolved content came from.
type ContentSource string

const (
	SourceStore       ContentSource = "existing"
	SourceInline      ContentSource = "inline"
	SourcePlaceholder ContentSource = "placeholder"
)

func (m *Manager) say(format string, args ...any) {
	m.notify.AddMessage(RoleAssistant, fmt.Sprintf(format, args...))
}

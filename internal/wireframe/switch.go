package wireframe

import "log"

// SwitchOutcome classifies a page switch.
type SwitchOutcome string

const (
	SwitchNoop        SwitchOutcome = "noop"
	SwitchUnknown     SwitchOutcome = "unknown_page"
	SwitchExisting    SwitchOutcome = "existing"
	SwitchInline      SwitchOutcome = "inline"
	SwitchPlaceholder SwitchOutcome = "placeholder"
)

// SwitchResult describes what SwitchPage did.
type SwitchResult struct {
	ActivePageID string        `json:"activePageId"`
	Outcome      SwitchOutcome `json:"outcome"`
}

// SwitchPage makes the page with the given id active. The outgoing page's buffer is
// saved first; the incoming content comes from the store, then the page's inline
// content, then a placeholder. Switching to the active page or an unknown id
// changes nothing.
func (m *Manager) SwitchPage(id string) SwitchResult {
	if id == m.active {
		return SwitchResult{ActivePageID: m.active, Outcome: SwitchNoop}
	}
	target, ok := m.Page(id)
	if !ok {
		log.Printf("WARN: switch to unknown page %q ignored; active page stays %q", id, m.active)
		return SwitchResult{ActivePageID: m.active, Outcome: SwitchUnknown}
	}

	if m.active != "" {
		m.content[m.active] = m.buffer
	}
	m.active = target.ID

	var src ContentSource
	m.buffer, src = m.resolve(target)

	name := target.displayName()
	var out SwitchOutcome
	switch src {
	case SourceStore:
		out = SwitchExisting
		m.say("Switched to %q.", name)
	case SourceInline:
		out = SwitchInline
		m.say("Switched to %q and loaded its generated content. You can edit it in place.", name)
	default:
		out = SwitchPlaceholder
		m.say("Switched to %q. This %s has no content yet: generate it from a description or copy from the first page.", name, target.Kind.lowerLabel())
	}
	return SwitchResult{ActivePageID: m.active, Outcome: out}
}

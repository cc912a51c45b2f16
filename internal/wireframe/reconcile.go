package wireframe

// AddOutcome classifies a reconcile by how many pages were added and whether the
// newly active page arrived with generated content. A failed-generation fallback
// does not count as generated.
type AddOutcome string

const (
	AddedNone        AddOutcome = "none"
	AddedSingle      AddOutcome = "single"
	AddedSingleReady AddOutcome = "single_ready"
	AddedMany        AddOutcome = "many"
	AddedManyReady   AddOutcome = "many_ready"
)

// ReconcileResult describes what ReconcilePages changed.
type ReconcileResult struct {
	Added        []Page        `json:"added"`
	ActivePageID string        `json:"activePageId"`
	Source       ContentSource `json:"source,omitempty"`
	Outcome      AddOutcome    `json:"outcome"`
}

// ReconcilePages replaces the registry with newList, the full edited page list of
// an add-pages dialog. Pages whose ids were not registered before are "added"; the
// first added page becomes active. The outgoing buffer is saved before anything else.
func (m *Manager) ReconcilePages(newList []Page) ReconcileResult {
	existing := make(map[string]bool, len(m.pages))
	for _, p := range m.pages {
		existing[p.ID] = true
	}
	var added []Page
	for _, p := range newList {
		if !existing[p.ID] {
			added = append(added, p)
		}
	}

	// Save the buffer before any pointer move.
	buffer := m.buffer
	switch {
	case m.active != "" && buffer != "":
		m.content[m.active] = buffer
	case m.active == "" && buffer != "" && len(added) > 0:
		m.content[added[0].ID] = buffer
	}

	for _, p := range added {
		if p.InlineContent != "" {
			m.content[p.ID] = p.InlineContent
		}
	}

	pages := make([]Page, len(newList))
	copy(pages, newList)
	m.pages = pages
	m.phase = PhaseMulti

	res := ReconcileResult{Added: added, Outcome: AddedNone}
	if len(added) > 0 {
		first := added[0]
		m.active = first.ID
		m.buffer, res.Source = m.resolve(first)
		res.Outcome = addOutcome(len(added), first.contentReady())
		m.announceAdded(res.Outcome, added)
	} else if len(newList) == 0 {
		m.active = ""
	} else if _, ok := m.Page(m.active); !ok && m.active != "" {
		// Active page was dropped in the dialog; keep its buffer but fall back to none.
		m.active = ""
	}
	res.ActivePageID = m.active
	return res
}

func addOutcome(n int, ready bool) AddOutcome {
	switch {
	case n == 0:
		return AddedNone
	case n == 1 && ready:
		return AddedSingleReady
	case n == 1:
		return AddedSingle
	case ready:
		return AddedManyReady
	default:
		return AddedMany
	}
}

func (m *Manager) announceAdded(o AddOutcome, added []Page) {
	name := added[0].displayName()
	switch o {
	case AddedSingle:
		m.say("Added new %s %q. It is empty for now: describe it and use Generate Content to fill it in.", added[0].Kind.lowerLabel(), name)
	case AddedSingleReady:
		m.say("Added new %s %q. AI content is ready and shown in the preview.", added[0].Kind.lowerLabel(), name)
	case AddedMany:
		m.say("Added %d new pages. Now showing %q; use Generate Content on each page to fill it in.", len(added), name)
	case AddedManyReady:
		m.say("Added %d new pages with AI content ready. Now showing %q.", len(added), name)
	}
}

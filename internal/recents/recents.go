package recents

import (
	"sync"
	"time"
)

// Entry is one recently saved wireframe.
type Entry struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Size        int       `json:"size"`
	SavedAt     time.Time `json:"savedAt"`
}

// List keeps the most recent saves, newest first. Saving a name again moves it to the front.
type List struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	now     func() time.Time
}

// New returns a List holding at most limit entries (minimum 1).
func New(limit int) *List {
	if limit < 1 {
		limit = 1
	}
	return &List{limit: limit, now: time.Now}
}

// OnWireframeSaved records a save. Its signature matches the saved-wireframe hook.
func (l *List) OnWireframeSaved(name, description, html string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{Name: name, Description: description, Size: len(html), SavedAt: l.now()}
	kept := []Entry{e}
	for _, old := range l.entries {
		if old.Name == name {
			continue
		}
		if len(kept) == l.limit {
			break
		}
		kept = append(kept, old)
	}
	l.entries = kept
}

// Entries returns a copy of the list.
func (l *List) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

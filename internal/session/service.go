package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"wireframe_ai_server/internal/export"
	"wireframe_ai_server/internal/storage"
	"wireframe_ai_server/internal/wireframe"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrGenerationInProgress = errors.New("a generation is already running for this session")
	ErrGenerationCancelled  = errors.New("generation cancelled")
	ErrUnknownPage          = errors.New("unknown page")
	ErrGeneratorUnavailable = errors.New("AI generation is not configured")
	ErrNothingToRefine      = errors.New("the active page has no content to refine")

	errStopped = errors.New("stopped by request")
)

// PageGenerator produces HTML for one page from its description.
type PageGenerator interface {
	GeneratePageContent(ctx context.Context, description, kind string) (string, error)
}

// WireframeGenerator produces or edits a whole wireframe from chat input.
type WireframeGenerator interface {
	GenerateWireframe(ctx context.Context, prompt string) (string, error)
	RefineWireframe(ctx context.Context, instruction, currentHTML string) (string, error)
}

// DraftClearer drops the saved add-page form draft after a successful add.
type DraftClearer interface {
	Clear(ctx context.Context, scope, key string) error
}

// Session is one editing session: a page/content manager and its transcript.
type Session struct {
	ID string

	mu         sync.Mutex
	manager    *wireframe.Manager
	transcript *Transcript
	cancel     context.CancelCauseFunc
	lastSeen   time.Time
}

// Service holds all live sessions and runs the operations that need AI calls.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	guard    runGuard

	pages      PageGenerator
	wireframes WireframeGenerator
	drafts     DraftClearer
	timeout    time.Duration
	now        func() time.Time
}

// NewService wires a Service. Any collaborator may be nil; timeout <= 0 means no
// per-generation deadline beyond the caller's context.
func NewService(pages PageGenerator, wireframes WireframeGenerator, drafts DraftClearer, timeout time.Duration) *Service {
	return &Service{
		sessions:   make(map[string]*Session),
		pages:      pages,
		wireframes: wireframes,
		drafts:     drafts,
		timeout:    timeout,
		now:        time.Now,
	}
}

// Create starts a new empty session.
func (s *Service) Create() *Session {
	t := newTranscript()
	sess := &Session{
		ID:         uuid.New().String(),
		manager:    wireframe.NewManager(t),
		transcript: t,
		lastSeen:   s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	log.Printf("Info: created session %s", sess.ID)
	return sess
}

func (s *Service) get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// Delete drops a session, cancelling any generation it runs.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.stop()
	return nil
}

// EvictIdle drops sessions not used for longer than ttl and not generating.
func (s *Service) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) && !s.guard.Running(id) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Printf("Info: evicted %d idle sessions", n)
	}
	return n
}

// Close cancels every running generation and waits for them to unwind.
func (s *Service) Close(ctx context.Context) {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.stop()
	}
	s.mu.Unlock()
	s.guard.WaitAll(ctx)
}

// Snapshot returns the session state. withContent includes every stored page.
func (s *Service) Snapshot(id string, withContent bool) (wireframe.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return wireframe.State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.manager.Snapshot(withContent), nil
}

// Messages returns the session transcript.
func (s *Service) Messages(id string) ([]Message, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return sess.transcript.Messages(), nil
}

// UpdateContent is the edit-back path of the preview: it replaces the active buffer.
func (s *Service) UpdateContent(id, html string) (wireframe.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return wireframe.State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.manager.UpdateContent(html)
	return sess.manager.Snapshot(false), nil
}

// SwitchPage activates a page by id.
func (s *Service) SwitchPage(id, pageID string) (wireframe.SwitchResult, string, error) {
	sess, err := s.get(id)
	if err != nil {
		return wireframe.SwitchResult{}, "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	res := sess.manager.SwitchPage(pageID)
	if res.Outcome == wireframe.SwitchUnknown {
		return res, sess.manager.ActiveContent(), fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	return res, sess.manager.ActiveContent(), nil
}

// Stop cancels the session's in-flight generation. It reports whether one was running.
func (s *Service) Stop(id string) (bool, error) {
	sess, err := s.get(id)
	if err != nil {
		return false, err
	}
	return sess.stop(), nil
}

func (sess *Session) stop() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cancel == nil {
		return false
	}
	sess.cancel(errStopped)
	sess.cancel = nil
	return true
}

// begin takes the session's generation slot and returns a context that ends on
// Stop or when ctx ends. The returned func releases everything begin acquired.
func (s *Service) begin(ctx context.Context, sess *Session) (context.Context, func(), error) {
	if !s.guard.TryLock(sess.ID) {
		return nil, nil, ErrGenerationInProgress
	}
	runCtx, cancel := context.WithCancelCause(ctx)

	sess.mu.Lock()
	sess.cancel = cancel
	sess.mu.Unlock()

	return runCtx, func() {
		sess.mu.Lock()
		sess.cancel = nil
		sess.mu.Unlock()
		cancel(nil)
		s.guard.Unlock(sess.ID)
	}, nil
}

// callContext bounds a single AI call by the generation timeout. Its deadline
// expiring is a failed call, not a stopped run.
func (s *Service) callContext(runCtx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(runCtx, s.timeout)
	}
	return context.WithCancel(runCtx)
}

// cancelled returns ErrGenerationCancelled once the run was stopped or its caller went away.
func cancelled(runCtx context.Context) error {
	if runCtx.Err() == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrGenerationCancelled, context.Cause(runCtx))
}

// Export collects every page of the session for writing. The active page
// contributes its live buffer; pages never visited contribute what a visit would show.
func (s *Service) Export(id string) ([]export.Page, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := sess.manager
	pages := m.Pages()
	if len(pages) == 0 && m.ActiveContent() != "" {
		return []export.Page{{ID: wireframe.HomePageID, Name: wireframe.FirstPageName, Content: m.ActiveContent()}}, nil
	}
	out := make([]export.Page, 0, len(pages))
	for _, p := range pages {
		content, ok := m.Content(p.ID)
		switch {
		case p.ID == m.ActivePageID():
			content = m.ActiveContent()
		case !ok && p.InlineContent != "":
			content = p.InlineContent
		case !ok:
			content = wireframe.Placeholder(p.Name, p.Kind)
		}
		out = append(out, export.Page{ID: p.ID, Name: p.Name, Content: content})
	}
	return out, nil
}

// DraftLocation returns the scope and key of a session's add-page form draft.
func DraftLocation(sessionID string) (scope, key string) {
	return sessionID, storage.AddPageDraftKey
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wireframe_ai_server/internal/wireframe"
)

// AddPages applies the full page list of an add-pages dialog. With generate set,
// new pages without inline content get AI-generated content first; a page whose
// generation fails or times out gets a retry placeholder instead and the add still
// completes. If the run is stopped or the caller goes away, nothing is changed.
func (s *Service) AddPages(ctx context.Context, id string, pages []wireframe.Page, generate bool) (wireframe.ReconcileResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return wireframe.ReconcileResult{}, err
	}
	pages = wireframe.AssignIDs(pages)

	runCtx, done, err := s.begin(ctx, sess)
	if err != nil {
		return wireframe.ReconcileResult{}, err
	}
	defer done()

	sess.mu.Lock()
	existing := make(map[string]bool)
	for _, p := range sess.manager.Pages() {
		existing[p.ID] = true
	}
	sess.mu.Unlock()

	if err := wireframe.ValidatePages(pages, existing, generate); err != nil {
		return wireframe.ReconcileResult{}, err
	}

	var failures []string
	if generate {
		pages, failures, err = s.fillPages(runCtx, pages, existing)
		if err != nil {
			log.Printf("Info: add-pages generation for session %s stopped: %v", id, err)
			return wireframe.ReconcileResult{}, err
		}
	}

	sess.mu.Lock()
	if err := cancelled(runCtx); err != nil {
		sess.mu.Unlock()
		log.Printf("Info: add-pages for session %s stopped before applying: %v", id, err)
		return wireframe.ReconcileResult{}, err
	}
	res := sess.manager.ReconcilePages(pages)
	sess.mu.Unlock()

	for _, name := range failures {
		sess.transcript.AddMessage(wireframe.RoleAssistant, fmt.Sprintf(
			"Could not generate content for %q. A placeholder with a retry button was added instead.", name))
	}

	if s.drafts != nil {
		scope, key := DraftLocation(id)
		if err := s.drafts.Clear(ctx, scope, key); err != nil {
			log.Printf("WARN: failed to clear add-page draft for session %s: %v", id, err)
		}
	}
	return res, nil
}

// fillPages generates inline content for every page that is new and has none.
// Each call gets its own deadline. It returns the names of pages whose generation failed.
func (s *Service) fillPages(runCtx context.Context, pages []wireframe.Page, existing map[string]bool) ([]wireframe.Page, []string, error) {
	out := make([]wireframe.Page, len(pages))
	copy(out, pages)

	var failures []string
	for i, p := range out {
		if existing[p.ID] || p.InlineContent != "" {
			continue
		}
		html, err := s.generatePage(runCtx, p)
		if cerr := cancelled(runCtx); cerr != nil {
			return nil, nil, cerr
		}
		if err != nil {
			log.Printf("WARN: content generation for page %q failed, using fallback: %v", p.Name, err)
			out[i].InlineContent = wireframe.FailedPlaceholder(p.Name, p.Description, p.Kind)
			out[i].GenerationFailed = true
			failures = append(failures, p.Name)
			continue
		}
		out[i].InlineContent = html
	}
	return out, failures, nil
}

func (s *Service) generatePage(runCtx context.Context, p wireframe.Page) (string, error) {
	if s.pages == nil {
		return "", ErrGeneratorUnavailable
	}
	ctx, cancel := s.callContext(runCtx)
	defer cancel()
	return s.pages.GeneratePageContent(ctx, p.Description, string(p.Kind))
}

// Generate turns a chat prompt into a wireframe and makes it the active content.
// On failure the transcript says so and the active content is left as it was.
func (s *Service) Generate(ctx context.Context, id, prompt string) (wireframe.State, error) {
	return s.runWireframe(ctx, id, prompt, func(ctx context.Context, _ string) (string, error) {
		return s.wireframes.GenerateWireframe(ctx, prompt)
	})
}

// Refine applies a chat instruction to the active page.
func (s *Service) Refine(ctx context.Context, id, instruction string) (wireframe.State, error) {
	return s.runWireframe(ctx, id, instruction, func(ctx context.Context, current string) (string, error) {
		if current == "" {
			return "", ErrNothingToRefine
		}
		return s.wireframes.RefineWireframe(ctx, instruction, current)
	})
}

func (s *Service) runWireframe(ctx context.Context, id, userText string, call func(context.Context, string) (string, error)) (wireframe.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return wireframe.State{}, err
	}
	if s.wireframes == nil {
		return wireframe.State{}, ErrGeneratorUnavailable
	}

	runCtx, done, err := s.begin(ctx, sess)
	if err != nil {
		return wireframe.State{}, err
	}
	defer done()

	sess.transcript.AddMessage("user", userText)

	sess.mu.Lock()
	current := sess.manager.ActiveContent()
	sess.mu.Unlock()

	callCtx, cancel := s.callContext(runCtx)
	html, err := call(callCtx, current)
	cancel()
	if cerr := cancelled(runCtx); cerr != nil {
		sess.transcript.AddMessage(wireframe.RoleAssistant, "Generation stopped. Nothing was changed.")
		return wireframe.State{}, cerr
	}
	if err != nil {
		log.Printf("WARN: wireframe generation for session %s failed: %v", id, err)
		msg := "Sorry, the wireframe could not be generated. Please try again."
		switch {
		case errors.Is(err, ErrNothingToRefine):
			msg = "There is no content on this page to refine yet. Describe the UI you want first."
		case errors.Is(err, context.DeadlineExceeded):
			msg = "Sorry, the wireframe could not be generated in time. Please try again."
		}
		sess.transcript.AddMessage(wireframe.RoleAssistant, msg)
		return wireframe.State{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if cerr := cancelled(runCtx); cerr != nil {
		return wireframe.State{}, cerr
	}
	sess.manager.UpdateContent(html)
	sess.transcript.AddMessage(wireframe.RoleAssistant, "Wireframe updated. You can edit it in place or add more pages.")
	return sess.manager.Snapshot(false), nil
}

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireframe_ai_server/internal/wireframe"
)

// fakeGenerator implements PageGenerator and WireframeGenerator with a pluggable func.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []string
	started chan struct{}
	page    func(ctx context.Context, description, kind string) (string, error)
	whole   func(ctx context.Context, prompt, current string) (string, error)
}

func (f *fakeGenerator) GeneratePageContent(ctx context.Context, description, kind string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, description)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	return f.page(ctx, description, kind)
}

func (f *fakeGenerator) GenerateWireframe(ctx context.Context, prompt string) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	return f.whole(ctx, prompt, "")
}

func (f *fakeGenerator) RefineWireframe(ctx context.Context, instruction, currentHTML string) (string, error) {
	return f.whole(ctx, instruction, currentHTML)
}

type fakeDrafts struct {
	cleared []string
}

func (d *fakeDrafts) Clear(_ context.Context, scope, key string) error {
	d.cleared = append(d.cleared, scope+"/"+key)
	return nil
}

func blockUntilCancelled(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestAddPagesWithoutGeneration(t *testing.T) {
	drafts := &fakeDrafts{}
	svc := NewService(nil, nil, drafts, 0)
	sess := svc.Create()
	_, err := svc.UpdateContent(sess.ID, "<p>v2</p>")
	require.NoError(t, err)

	res, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "page-2", Name: "Pricing"},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "page-2", res.ActivePageID)
	assert.Equal(t, wireframe.AddedSingle, res.Outcome)
	state, err := svc.Snapshot(sess.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "<p>v2</p>", state.Content[wireframe.HomePageID])
	assert.Contains(t, state.ActiveContent, "Pricing")
	assert.Equal(t, []string{sess.ID + "/add-page-draft"}, drafts.cleared)
}

func TestAddPagesAssignsMissingIDs(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	sess := svc.Create()

	res, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{{Name: "Landing"}}, false)
	require.NoError(t, err)

	require.Len(t, res.Added, 1)
	assert.NotEmpty(t, res.Added[0].ID)
	assert.Equal(t, res.Added[0].ID, res.ActivePageID)
}

func TestAddPagesGeneratesContent(t *testing.T) {
	gen := &fakeGenerator{page: func(_ context.Context, description, kind string) (string, error) {
		return "<div>" + kind + ": " + description + "</div>", nil
	}}
	svc := NewService(gen, gen, nil, time.Minute)
	sess := svc.Create()

	res, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: "a", Name: "Settings", Description: "Account settings with tabs", Kind: wireframe.KindModal},
		{ID: "b", Name: "Inline", InlineContent: "<div>given</div>"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, wireframe.AddedManyReady, res.Outcome)
	assert.Equal(t, []string{"Account settings with tabs"}, gen.calls)
	state, _ := svc.Snapshot(sess.ID, true)
	assert.Equal(t, "<div>modal: Account settings with tabs</div>", state.ActiveContent)
	assert.Equal(t, "<div>given</div>", state.Content["b"])
}

func TestAddPagesGenerationFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{page: func(context.Context, string, string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")

	res, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "checkout", Name: "Checkout", Description: "Cart summary and payment form"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "checkout", res.ActivePageID)
	assert.Equal(t, wireframe.AddedSingle, res.Outcome)
	state, _ := svc.Snapshot(sess.ID, true)
	assert.Contains(t, state.Content["checkout"], "Checkout")
	assert.Contains(t, state.Content["checkout"], "Retry Generation")
	assert.Equal(t, state.Content["checkout"], state.ActiveContent)

	msgs, _ := svc.Messages(sess.ID)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1].Text, "Could not generate content for \"Checkout\"")
}

func TestAddPagesGenerationTimeoutFallsBack(t *testing.T) {
	gen := &fakeGenerator{page: func(ctx context.Context, description, _ string) (string, error) {
		if description == "Cart summary and payment form" {
			return blockUntilCancelled(ctx, "", "")
		}
		return "<div>" + description + "</div>", nil
	}}
	svc := NewService(gen, gen, nil, 50*time.Millisecond)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")

	res, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "checkout", Name: "Checkout", Description: "Cart summary and payment form"},
		{ID: "pricing", Name: "Pricing", Description: "Three pricing tiers"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "checkout", res.ActivePageID)
	assert.Equal(t, wireframe.AddedMany, res.Outcome)
	state, _ := svc.Snapshot(sess.ID, true)
	assert.Len(t, state.Pages, 3)
	assert.Contains(t, state.ActiveContent, "Retry Generation")
	assert.Equal(t, "<div>Three pricing tiers</div>", state.Content["pricing"])

	msgs, _ := svc.Messages(sess.ID)
	assert.Contains(t, msgs[len(msgs)-1].Text, "Could not generate content for \"Checkout\"")
}

func TestStopDuringLastPageDiscardsItsContent(t *testing.T) {
	var svc *Service
	var sessID string
	gen := &fakeGenerator{page: func(context.Context, string, string) (string, error) {
		_, _ = svc.Stop(sessID)
		return "<div>late</div>", nil
	}}
	svc = NewService(gen, gen, nil, time.Minute)
	sessID = svc.Create().ID
	_, _ = svc.UpdateContent(sessID, "<p>home</p>")
	before, _ := svc.Snapshot(sessID, true)

	_, err := svc.AddPages(context.Background(), sessID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "late", Name: "Late", Description: "Arrives after stop"},
	}, true)
	assert.ErrorIs(t, err, ErrGenerationCancelled)

	after, _ := svc.Snapshot(sessID, true)
	assert.Equal(t, before, after)
}

func TestAddPagesWithoutGeneratorFallsBack(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	sess := svc.Create()

	_, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: "x", Name: "Profile", Description: "User profile with avatar"},
	}, true)
	require.NoError(t, err)

	state, _ := svc.Snapshot(sess.ID, false)
	assert.Contains(t, state.ActiveContent, "Retry Generation")
}

func TestAddPagesValidationLeavesStateUntouched(t *testing.T) {
	gen := &fakeGenerator{page: func(context.Context, string, string) (string, error) { return "<div/>", nil }}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")

	_, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "x", Name: "X", Description: "tiny"},
	}, true)

	var verr *wireframe.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "pages[1].description", verr.Field)
	assert.Empty(t, gen.calls)
	state, _ := svc.Snapshot(sess.ID, false)
	assert.Len(t, state.Pages, 1)
	assert.Equal(t, wireframe.HomePageID, state.ActivePageID)
}

func TestStopCancelsAddPagesWithoutChanges(t *testing.T) {
	gen := &fakeGenerator{started: make(chan struct{}, 1), page: blockUntilCancelled}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")
	before, _ := svc.Snapshot(sess.ID, true)

	errc := make(chan error, 1)
	go func() {
		_, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
			{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
			{ID: "new", Name: "New", Description: "Something brand new here"},
		}, true)
		errc <- err
	}()

	<-gen.started
	stopped, err := svc.Stop(sess.ID)
	require.NoError(t, err)
	assert.True(t, stopped)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrGenerationCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("AddPages did not return after Stop")
	}

	after, _ := svc.Snapshot(sess.ID, true)
	assert.Equal(t, before, after)
}

func TestSecondGenerationIsRejectedWhileRunning(t *testing.T) {
	gen := &fakeGenerator{started: make(chan struct{}, 1), page: blockUntilCancelled}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()
	pages := []wireframe.Page{{ID: "a", Name: "A", Description: "A long enough description"}}

	errc := make(chan error, 1)
	go func() {
		_, err := svc.AddPages(context.Background(), sess.ID, pages, true)
		errc <- err
	}()
	<-gen.started

	_, err := svc.AddPages(context.Background(), sess.ID, pages, true)
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	_, _ = svc.Stop(sess.ID)
	<-errc

	// The slot is free again once the first run returned.
	gen.started = nil
	gen.page = func(context.Context, string, string) (string, error) { return "<div>ok</div>", nil }
	_, err = svc.AddPages(context.Background(), sess.ID, pages, true)
	assert.NoError(t, err)
}

func TestSwitchPage(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")
	_, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "ai", Name: "AI", InlineContent: "<div>AI</div>"},
		{ID: "empty", Name: "Empty"},
	}, false)
	require.NoError(t, err)

	res, html, err := svc.SwitchPage(sess.ID, wireframe.HomePageID)
	require.NoError(t, err)
	assert.Equal(t, wireframe.SwitchExisting, res.Outcome)
	assert.Equal(t, "<p>home</p>", html)

	res, html, err = svc.SwitchPage(sess.ID, "empty")
	require.NoError(t, err)
	assert.Equal(t, wireframe.SwitchPlaceholder, res.Outcome)
	assert.Contains(t, html, "Empty")

	_, html, err = svc.SwitchPage(sess.ID, "missing")
	assert.ErrorIs(t, err, ErrUnknownPage)
	assert.Contains(t, html, "Empty")
}

func TestGenerateUpdatesActiveContent(t *testing.T) {
	gen := &fakeGenerator{whole: func(_ context.Context, prompt, current string) (string, error) {
		if current != "" {
			return current + "<footer>" + prompt + "</footer>", nil
		}
		return "<div>" + prompt + "</div>", nil
	}}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()

	state, err := svc.Generate(context.Background(), sess.ID, "login form")
	require.NoError(t, err)
	assert.Equal(t, "<div>login form</div>", state.ActiveContent)
	assert.Equal(t, wireframe.HomePageID, state.ActivePageID)

	state, err = svc.Refine(context.Background(), sess.ID, "add footer")
	require.NoError(t, err)
	assert.Equal(t, "<div>login form</div><footer>add footer</footer>", state.ActiveContent)

	msgs, _ := svc.Messages(sess.ID)
	require.Len(t, msgs, 4)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "login form", msgs[0].Text)
}

func TestGenerateFailureKeepsContent(t *testing.T) {
	gen := &fakeGenerator{whole: func(context.Context, string, string) (string, error) {
		return "", errors.New("boom")
	}}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>keep</p>")

	_, err := svc.Generate(context.Background(), sess.ID, "something")
	require.Error(t, err)

	state, _ := svc.Snapshot(sess.ID, false)
	assert.Equal(t, "<p>keep</p>", state.ActiveContent)
	msgs, _ := svc.Messages(sess.ID)
	assert.Contains(t, msgs[len(msgs)-1].Text, "could not be generated")
}

func TestGenerateTimeoutIsAFailureNotAStop(t *testing.T) {
	gen := &fakeGenerator{whole: blockUntilCancelled}
	svc := NewService(gen, gen, nil, 50*time.Millisecond)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>keep</p>")

	_, err := svc.Generate(context.Background(), sess.ID, "something")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrGenerationCancelled)

	state, _ := svc.Snapshot(sess.ID, false)
	assert.Equal(t, "<p>keep</p>", state.ActiveContent)
	msgs, _ := svc.Messages(sess.ID)
	assert.Contains(t, msgs[len(msgs)-1].Text, "in time")
}

func TestRefineWithoutContent(t *testing.T) {
	gen := &fakeGenerator{whole: func(context.Context, string, string) (string, error) { return "<div/>", nil }}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()

	_, err := svc.Refine(context.Background(), sess.ID, "make it blue")
	assert.ErrorIs(t, err, ErrNothingToRefine)
}

func TestGenerateWithoutGenerator(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	sess := svc.Create()
	_, err := svc.Generate(context.Background(), sess.ID, "x")
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestUnknownSession(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	_, err := svc.Snapshot("nope", false)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete("nope"), ErrSessionNotFound)
}

func TestEvictIdle(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	old := svc.Create()
	now = now.Add(2 * time.Hour)
	fresh := svc.Create()

	assert.Equal(t, 1, svc.EvictIdle(time.Hour))
	_, err := svc.Snapshot(old.ID, false)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Snapshot(fresh.ID, false)
	assert.NoError(t, err)
}

func TestExportUsesLiveBufferAndPlaceholders(t *testing.T) {
	svc := NewService(nil, nil, nil, 0)
	sess := svc.Create()
	_, _ = svc.UpdateContent(sess.ID, "<p>home</p>")
	_, _ = svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
		{ID: wireframe.HomePageID, Name: wireframe.FirstPageName},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C", InlineContent: "<div>c</div>"},
	}, false)
	_, _ = svc.UpdateContent(sess.ID, "<p>b edited</p>")

	pages, err := svc.Export(sess.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "<p>home</p>", pages[0].Content)
	assert.Equal(t, "<p>b edited</p>", pages[1].Content)
	assert.Equal(t, "<div>c</div>", pages[2].Content)
}

func TestCloseCancelsRunningGenerations(t *testing.T) {
	gen := &fakeGenerator{started: make(chan struct{}, 1), page: blockUntilCancelled}
	svc := NewService(gen, gen, nil, 0)
	sess := svc.Create()

	errc := make(chan error, 1)
	go func() {
		_, err := svc.AddPages(context.Background(), sess.ID, []wireframe.Page{
			{ID: "a", Name: "A", Description: "A long enough description"},
		}, true)
		errc <- err
	}()
	<-gen.started

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc.Close(ctx)
	assert.ErrorIs(t, <-errc, ErrGenerationCancelled)
}

package session

import (
	"context"
	"sync"
)

// runGuard ensures only one generation per session runs at a time.
type runGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
	wg      sync.WaitGroup
}

// TryLock marks sessionID as running. Returns false if it already is.
func (g *runGuard) TryLock(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]struct{})
	}
	if _, ok := g.running[sessionID]; ok {
		return false
	}
	g.running[sessionID] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock releases a lock taken by a successful TryLock.
func (g *runGuard) Unlock(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, sessionID)
	g.wg.Done()
}

// Running reports whether sessionID holds the lock.
func (g *runGuard) Running(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[sessionID]
	return ok
}

// WaitAll blocks until every running generation finished or ctx is done.
func (g *runGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

package server

import (
	"context"
	"sync"
)

// Generation orders the responses of one dashboard connection.
// Each Begin supersedes every earlier request: their contexts are cancelled
// and their results are refused by Apply.
type Generation struct {
	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

// Begin starts a new request derived from parent and returns its token.
func (g *Generation) Begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	g.current++
	g.cancel = cancel
	return ctx, g.current
}

// IsCurrent reports whether token belongs to the latest request.
func (g *Generation) IsCurrent(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return token == g.current
}

// Apply runs fn only if token is still current. The check and fn happen under
// the same lock, so a newer Begin cannot interleave with a stale write.
func (g *Generation) Apply(token uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.current {
		return false
	}
	fn()
	return true
}

// Stop cancels the in-flight request, if any.
func (g *Generation) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

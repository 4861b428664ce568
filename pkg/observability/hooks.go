// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module never import a metrics backend. Instead they emit
// events through small hook interfaces whose defaults do nothing; the
// application registers real implementations at startup.
//
//	func main() {
//	    observability.SetViewerHooks(&myViewerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Emitters fetch the current hooks on every call:
//
//	start := time.Now()
//	f := tree.Project(doc, term)
//	observability.Viewer().OnProject(term, f.Len(), len(f.Matches()), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Viewer Hooks
// =============================================================================

// ViewerHooks receives events from a viewer session.
type ViewerHooks interface {
	// OnLoad fires after a document was read and parsed.
	OnLoad(ctx context.Context, size int, duration time.Duration, err error)

	// OnProject fires after the tree projection was rebuilt for a search term.
	OnProject(term string, rows, matches int, duration time.Duration)

	// OnToggle fires for every tree or graph toggle, changed or not.
	OnToggle(target string, recursive, changed bool)

	// OnLayout fires after a graph snapshot was positioned.
	OnLayout(nodes, visible int, duration time.Duration)

	// OnRender fires after a graph was rendered to an output format.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	// OnRequest fires once a request was served. route is the matched
	// pattern, not the raw URL.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopViewerHooks is a no-op implementation of ViewerHooks.
type NoopViewerHooks struct{}

func (NoopViewerHooks) OnLoad(context.Context, int, time.Duration, error)           {}
func (NoopViewerHooks) OnProject(string, int, int, time.Duration)                   {}
func (NoopViewerHooks) OnToggle(string, bool, bool)                                 {}
func (NoopViewerHooks) OnLayout(int, int, time.Duration)                            {}
func (NoopViewerHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	viewerHooks ViewerHooks = NoopViewerHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetViewerHooks registers custom viewer hooks. nil is ignored.
func SetViewerHooks(h ViewerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks. nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Viewer returns the registered viewer hooks.
func Viewer() ViewerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults. Tests use it.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	viewerHooks = NoopViewerHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}

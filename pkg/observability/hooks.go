// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the hooks registered here instead of
// depending on a metrics or tracing backend. The defaults are no-ops; a binary
// registers real implementations once at startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&promLayoutHooks{})
//	    observability.SetGeometryHooks(&promGeometryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks around the work they describe:
//
//	observability.Layout().OnPassStart(ctx, ws.Name, windows)
//	// ... lay out the workspace ...
//	observability.Layout().OnPassComplete(ctx, ws.Name, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout passes and the pipeline runner.
type LayoutHooks interface {
	// OnPassStart fires before a workspace is laid out.
	OnPassStart(ctx context.Context, workspace string, windows int)
	// OnPassComplete fires after a workspace pass, successful or not.
	OnPassComplete(ctx context.Context, workspace string, duration time.Duration, err error)
}

// =============================================================================
// Geometry Hooks
// =============================================================================

// GeometryHooks receives one event per window-geometry operation.
type GeometryHooks interface {
	// OnGeometryCall records a read or write of a window frame. op is one of
	// "top-left", "center", "set-frame" or "set-top-left".
	OnGeometryCall(ctx context.Context, op string, windowID uint32, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPassStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnPassComplete(context.Context, string, time.Duration, error) {}

// NoopGeometryHooks is a no-op implementation of GeometryHooks.
type NoopGeometryHooks struct{}

func (NoopGeometryHooks) OnGeometryCall(context.Context, string, uint32, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	geometryHooks GeometryHooks = NoopGeometryHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout pass.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetGeometryHooks registers custom geometry hooks.
func SetGeometryHooks(h GeometryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		geometryHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Geometry returns the registered geometry hooks.
func Geometry() GeometryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return geometryHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	geometryHooks = NoopGeometryHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about search execution, cache
// operations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSearchStart(ctx, rows, cols, colors)
//	// ... run the loop ...
//	observability.Search().OnSearchComplete(ctx, status, iterations, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the rectangle-free search loop.
type SearchHooks interface {
	// OnSearchStart records the start of a search run.
	OnSearchStart(ctx context.Context, rows, cols, colors int)

	// OnProgress records a new best (minimum) violation count.
	OnProgress(ctx context.Context, iteration, violations int)

	// OnSearchComplete records a finished run with its terminal status.
	OnSearchComplete(ctx context.Context, status string, iterations int, duration time.Duration)
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
// Render Hooks
// =============================================================================

// RenderHooks receives events from grid rendering.
type RenderHooks interface {
	// OnRenderStart records the start of a render.
	OnRenderStart(ctx context.Context, format string)

	// OnRenderComplete records a finished render.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, int, int, int)                  {}
func (NoopSearchHooks) OnProgress(context.Context, int, int)                          {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
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

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
	renderHooks = NoopRenderHooks{}
}

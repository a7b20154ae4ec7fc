// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about line lifecycles, frame rendering, the
// frame cache and the session server.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLifecycleHooks(&myLifecycleHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Lifecycle().OnLineSpawned(id, slot, vertical, t)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Lifecycle Hooks
// =============================================================================

// LifecycleHooks receives events from the line lifecycle manager. Times are
// animation seconds, not wall clock.
type LifecycleHooks interface {
	// OnLineSpawned records a new line entering the reveal phase.
	OnLineSpawned(id, slot int, vertical bool, t float64)

	// OnSlotReused records a spawn that found no free slot and took the
	// oldest live line's slot.
	OnSlotReused(slot int, t float64)

	// OnLineFading records the start of a line's fade-out.
	OnLineFading(id int, t float64)

	// OnLineRemoved records a faded line leaving the live set.
	OnLineRemoved(id int, t float64)

	// OnFrame records one update of the manager.
	OnFrame(t float64, lines int, duration time.Duration)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the frame rendering pipeline.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string, frames int)
	OnRenderComplete(ctx context.Context, formats []string, frames int, duration time.Duration, err error)
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
// Server Hooks
// =============================================================================

// ServerHooks receives events from the session HTTP server.
type ServerHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLifecycleHooks is a no-op implementation of LifecycleHooks.
type NoopLifecycleHooks struct{}

func (NoopLifecycleHooks) OnLineSpawned(int, int, bool, float64) {}
func (NoopLifecycleHooks) OnSlotReused(int, float64)             {}
func (NoopLifecycleHooks) OnLineFading(int, float64)             {}
func (NoopLifecycleHooks) OnLineRemoved(int, float64)            {}
func (NoopLifecycleHooks) OnFrame(float64, int, time.Duration)   {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	lifecycleHooks LifecycleHooks = NoopLifecycleHooks{}
	renderHooks    RenderHooks    = NoopRenderHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	serverHooks    ServerHooks    = NoopServerHooks{}
	hooksMu        sync.RWMutex
)

// SetLifecycleHooks registers custom lifecycle hooks.
// This should be called once at application startup before any manager runs.
func SetLifecycleHooks(h LifecycleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lifecycleHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
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

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Lifecycle returns the registered lifecycle hooks.
func Lifecycle() LifecycleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lifecycleHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
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

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	lifecycleHooks = NoopLifecycleHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}

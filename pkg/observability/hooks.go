// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; main decides what
// receives them. Every hook set has a no-op default, so nothing is paid
// for unless a consumer registers something.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetDumpHooks(observability.NewLogHooks(logger))
//
// Libraries call hooks to emit events:
//
//	observability.Dump().OnDumpStart(ctx, "form.toml")
//	// ... traverse and serialize ...
//	observability.Dump().OnDumpComplete(ctx, "form.toml", widgets, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dump Hooks
// =============================================================================

// DumpHooks receives events from the dump pipeline.
type DumpHooks interface {
	// Build events: decoding a snapshot into a live tree.
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, widgets int, duration time.Duration, err error)

	// Dump events: traversing a live tree.
	OnDumpStart(ctx context.Context, source string)
	OnDumpComplete(ctx context.Context, source string, widgets int, duration time.Duration, err error)

	// Render events: producing output formats from a document.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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

// HTTPHooks receives events from the inspector's HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// Script Hooks
// =============================================================================

// ScriptHooks receives events from the scripting bridge.
type ScriptHooks interface {
	OnScriptRun(ctx context.Context, id string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDumpHooks is a no-op implementation of DumpHooks.
type NoopDumpHooks struct{}

func (NoopDumpHooks) OnBuildStart(context.Context, string)                               {}
func (NoopDumpHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopDumpHooks) OnDumpStart(context.Context, string)                                {}
func (NoopDumpHooks) OnDumpComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopDumpHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopDumpHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopScriptHooks is a no-op implementation of ScriptHooks.
type NoopScriptHooks struct{}

func (NoopScriptHooks) OnScriptRun(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dumpHooks   DumpHooks   = NoopDumpHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	scriptHooks ScriptHooks = NoopScriptHooks{}
	hooksMu     sync.RWMutex
)

// SetDumpHooks registers custom dump hooks. Nil is ignored.
func SetDumpHooks(h DumpHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dumpHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetScriptHooks registers custom script hooks. Nil is ignored.
func SetScriptHooks(h ScriptHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scriptHooks = h
	}
}

// Dump returns the registered dump hooks.
func Dump() DumpHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dumpHooks
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

// Script returns the registered script hooks.
func Script() ScriptHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scriptHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dumpHooks = NoopDumpHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
	scriptHooks = NoopScriptHooks{}
}

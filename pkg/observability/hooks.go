// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about figure composition, rendering and the artifact cache.
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
//	    counters := &observability.Counters{}
//	    observability.SetFigureHooks(counters)
//	    observability.SetCacheHooks(counters)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Figure().OnComposeStart(ctx, name)
//	// ... compose ...
//	observability.Figure().OnComposeComplete(ctx, name, points, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Figure Hooks
// =============================================================================

// FigureHooks receives events from the figure pipeline.
type FigureHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, name string)
	OnComposeComplete(ctx context.Context, name string, points int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, name string, formats []string)
	OnRenderComplete(ctx context.Context, name string, formats []string, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopFigureHooks is a no-op implementation of FigureHooks.
type NoopFigureHooks struct{}

func (NoopFigureHooks) OnComposeStart(context.Context, string) {}
func (NoopFigureHooks) OnComposeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopFigureHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopFigureHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Counters
// =============================================================================

// Counters implements FigureHooks and CacheHooks by counting events. It is
// safe for concurrent use, so one value can observe a parallel batch.
type Counters struct {
	Composed      atomic.Int64
	ComposeFailed atomic.Int64
	Rendered      atomic.Int64
	RenderFailed  atomic.Int64
	CacheHits     atomic.Int64
	CacheMisses   atomic.Int64
	CacheBytes    atomic.Int64
}

func (c *Counters) OnComposeStart(context.Context, string) {}

func (c *Counters) OnComposeComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		c.ComposeFailed.Add(1)
		return
	}
	c.Composed.Add(1)
}

func (c *Counters) OnRenderStart(context.Context, string, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, _ []string, _ time.Duration, err error) {
	if err != nil {
		c.RenderFailed.Add(1)
		return
	}
	c.Rendered.Add(1)
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.CacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.CacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.CacheBytes.Add(int64(size))
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	figureHooks FigureHooks = NoopFigureHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetFigureHooks registers custom figure hooks.
// This should be called once at application startup before any pipeline operations.
func SetFigureHooks(h FigureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		figureHooks = h
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

// Figure returns the registered figure hooks.
func Figure() FigureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return figureHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	figureHooks = NoopFigureHooks{}
	cacheHooks = NoopCacheHooks{}
}

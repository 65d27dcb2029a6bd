// Package observability defines the events clawplot reports while it reads
// frames, renders figures, writes products, consults the image cache and
// serves HTTP requests.
//
// Library packages emit events through the accessors (Pipeline, Cache,
// HTTP) and never import a metrics backend. Until something is registered
// every event goes to a no-op implementation. The Prometheus backend in
// internal/metrics registers itself with the Set functions:
//
//	m := metrics.New()
//	m.Register()
//	defer observability.Reset()
//
// Emitting an event:
//
//	start := time.Now()
//	f, err := frame.Read(dir, n)
//	observability.Pipeline().OnFrameRead(ctx, n, cells, time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the printframes pipeline.
type PipelineHooks interface {
	OnFrameRead(ctx context.Context, frameno, cells int, duration time.Duration, err error)
	OnFigureRendered(ctx context.Context, figno int, format string, duration time.Duration, err error)
	// OnProductWritten is called per written file; kind is "image", "html"
	// or "latex".
	OnProductWritten(ctx context.Context, kind string, size int)
	OnRunComplete(ctx context.Context, frames, files int, duration time.Duration, err error)
}

// CacheHooks receives image cache lookups and stores. keyType names the
// kind of key, currently always "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives requests served by the plot server. route is the
// matched router pattern such as "/api/frames/{n}", never the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type noop struct{}

func (noop) OnFrameRead(context.Context, int, int, time.Duration, error)         {}
func (noop) OnFigureRendered(context.Context, int, string, time.Duration, error) {}
func (noop) OnProductWritten(context.Context, string, int)                       {}
func (noop) OnRunComplete(context.Context, int, int, time.Duration, error)       {}
func (noop) OnCacheHit(context.Context, string)                                  {}
func (noop) OnCacheMiss(context.Context, string)                                 {}
func (noop) OnCacheSet(context.Context, string, int)                             {}
func (noop) OnRequest(context.Context, string, string, int, time.Duration)       {}

// hookSet is replaced as a whole on every Set call, so readers never see a
// half-updated registry.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var defaults = hookSet{pipeline: noop{}, cache: noop{}, http: noop{}}

var current atomic.Pointer[hookSet]

func init() { Reset() }

func update(fn func(*hookSet)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers h for pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks registers h for cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers h for server events. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset drops every registered hook.
func Reset() {
	s := defaults
	current.Store(&s)
}

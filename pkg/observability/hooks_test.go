package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *countingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *countingHooks) OnFrameRead(context.Context, int, int, time.Duration, error) {
	h.record("frame")
}
func (h *countingHooks) OnFigureRendered(context.Context, int, string, time.Duration, error) {
	h.record("figure")
}
func (h *countingHooks) OnProductWritten(context.Context, string, int) { h.record("product") }
func (h *countingHooks) OnRunComplete(context.Context, int, int, time.Duration, error) {
	h.record("run")
}
func (h *countingHooks) OnCacheHit(context.Context, string)      { h.record("hit") }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.record("miss") }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.record("set") }
func (h *countingHooks) OnRequest(context.Context, string, string, int, time.Duration) {
	h.record("request")
}

func emitAll(ctx context.Context) {
	Pipeline().OnFrameRead(ctx, 3, 400, time.Millisecond, nil)
	Pipeline().OnFigureRendered(ctx, 0, "png", time.Millisecond, nil)
	Pipeline().OnProductWritten(ctx, "image", 2048)
	Pipeline().OnRunComplete(ctx, 11, 25, time.Second, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 2048)
	HTTP().OnRequest(ctx, "GET", "/api/frames", 200, time.Millisecond)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	emitAll(context.Background())
}

func TestSetHooks(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	h := &countingHooks{}
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	emitAll(context.Background())
	if len(h.events) != 8 {
		t.Fatalf("got %d events, want 8: %v", len(h.events), h.events)
	}

	Reset()
	emitAll(context.Background())
	if len(h.events) != 8 {
		t.Errorf("events after Reset reached old hooks: %v", h.events)
	}
}

func TestSetKeepsOtherCategories(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	pipe, web := &countingHooks{}, &countingHooks{}
	SetPipelineHooks(pipe)
	SetHTTPHooks(web)
	emitAll(context.Background())

	if len(pipe.events) != 4 {
		t.Errorf("pipeline hooks got %v", pipe.events)
	}
	if len(web.events) != 1 || web.events[0] != "request" {
		t.Errorf("http hooks got %v", web.events)
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	h := &countingHooks{}
	SetPipelineHooks(h)
	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)
	if Pipeline() != PipelineHooks(h) {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}
}

func TestConcurrentSetAndEmit(t *testing.T) {
	t.Cleanup(Reset)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(&countingHooks{})
				return
			}
			emitAll(context.Background())
		}()
	}
	wg.Wait()
}

package observability

import (
	"context"
	"testing"
	"time"
)

type countingSearchHooks struct {
	starts, progress, completes int
}

func (h *countingSearchHooks) OnSearchStart(context.Context, int, int, int) { h.starts++ }
func (h *countingSearchHooks) OnProgress(context.Context, int, int)         { h.progress++ }
func (h *countingSearchHooks) OnSearchComplete(context.Context, string, int, time.Duration) {
	h.completes++
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("default search hooks should be noop")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("default cache hooks should be noop")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("default render hooks should be noop")
	}
}

func TestSetAndReset(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	sh := &countingSearchHooks{}
	ch := &countingCacheHooks{}
	SetSearchHooks(sh)
	SetCacheHooks(ch)

	Search().OnSearchStart(ctx, 10, 10, 4)
	Search().OnProgress(ctx, 5, 3)
	Search().OnSearchComplete(ctx, "converged", 12, time.Second)
	Cache().OnCacheHit(ctx, "solution")
	Cache().OnCacheMiss(ctx, "solution")
	Cache().OnCacheSet(ctx, "solution", 128)

	if sh.starts != 1 || sh.progress != 1 || sh.completes != 1 {
		t.Errorf("search hook counts = %+v", *sh)
	}
	if ch.hits != 1 || ch.misses != 1 || ch.sets != 1 {
		t.Errorf("cache hook counts = %+v", *ch)
	}

	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset did not restore noop search hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	defer Reset()
	sh := &countingSearchHooks{}
	SetSearchHooks(sh)
	SetSearchHooks(nil)
	if Search() != SearchHooks(sh) {
		t.Error("nil registration should be ignored")
	}
}

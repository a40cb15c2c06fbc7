package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "brookweald-cc", nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	results := make(chan any, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "club:brookweald-cc", loader)
			if err != nil {
				results <- err
				return
			}
			results <- v
		}()
	}

	close(start)
	wg.Wait()
	close(results)
	for v := range results {
		if got, ok := v.(string); !ok || got != "brookweald-cc" {
			t.Fatalf("unexpected result: %v", v)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "stats:brookweald-cc:2025", loader); err != nil {
			t.Fatalf("GetOrLoad %d error: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "stats:brookweald-cc:2024", 1)
	store.Set(ctx, "stats:brookweald-cc:2025", 2)
	store.Set(ctx, "club:brookweald-cc", 3)

	store.DeletePrefix(ctx, "stats:brookweald-cc:")

	if _, ok := store.Get(ctx, "stats:brookweald-cc:2024"); ok {
		t.Fatalf("expected 2024 stats entry to be evicted")
	}
	if _, ok := store.Get(ctx, "stats:brookweald-cc:2025"); ok {
		t.Fatalf("expected 2025 stats entry to be evicted")
	}
	if _, ok := store.Get(ctx, "club:brookweald-cc"); !ok {
		t.Fatalf("expected club entry to survive")
	}
}

func TestStore_Get_ExpiresEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "roster:brookweald-cc", "players")

	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "roster:brookweald-cc"); ok {
		t.Fatalf("expected entry to expire")
	}
}

package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32
	var shared atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, wasShared := g.Do("roster:brookweald-cc", func() (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "roster", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "roster" {
				t.Errorf("unexpected value: %v", v)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("expected %d shared results, got %d", workers-1, got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	v1, err, _ := g.Do("stats:2024", func() (any, error) { return 2024, nil })
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	v2, err, _ := g.Do("stats:2025", func() (any, error) { return 2025, nil })
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if v1 != 2024 || v2 != 2025 {
		t.Fatalf("unexpected values: %v, %v", v1, v2)
	}
}

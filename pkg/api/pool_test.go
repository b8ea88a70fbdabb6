package api

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPoolSessionSlotLifecycle(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 2, MaxSlowWorkers: 1})

	if err := pool.AcquireFast(context.Background()); err != nil {
		t.Fatalf("AcquireFast failed: %v", err)
	}
	if got := pool.Stats().ActiveFast; got != 1 {
		t.Errorf("active session ops = %d, want 1", got)
	}

	pool.ReleaseFast()
	stats := pool.Stats()
	if stats.ActiveFast != 0 {
		t.Errorf("active session ops after release = %d, want 0", stats.ActiveFast)
	}
	if stats.TotalFast != 1 {
		t.Errorf("total session ops = %d, want 1", stats.TotalFast)
	}
}

func TestPoolStreamSlotsAreBounded(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 10, MaxSlowWorkers: 2})

	ctx := context.Background()
	if err := pool.AcquireSlow(ctx); err != nil {
		t.Fatalf("first stream slot: %v", err)
	}
	if err := pool.AcquireSlow(ctx); err != nil {
		t.Fatalf("second stream slot: %v", err)
	}
	if got := pool.Stats().ActiveSlow; got != 2 {
		t.Errorf("active streams = %d, want 2", got)
	}

	// A third stream must wait; with a short deadline the wait
	// surfaces as DeadlineExceeded instead of a hang.
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := pool.AcquireSlow(waitCtx); err != context.DeadlineExceeded {
		t.Errorf("third stream slot: err = %v, want DeadlineExceeded", err)
	}

	pool.ReleaseSlow()
	pool.ReleaseSlow()
	if got := pool.Stats().TotalSlow; got != 2 {
		t.Errorf("total streams = %d, want 2", got)
	}
}

func TestPoolAcquireHonorsCancellation(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 1, MaxSlowWorkers: 1})

	if err := pool.AcquireFast(context.Background()); err != nil {
		t.Fatalf("AcquireFast failed: %v", err)
	}
	defer pool.ReleaseFast()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pool.AcquireFast(cancelled); err != context.Canceled {
		t.Errorf("AcquireFast on full pool: err = %v, want Canceled", err)
	}
}

func TestPoolConcurrentSessionOps(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 5, MaxSlowWorkers: 1})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pool.AcquireFast(context.Background()); err != nil {
				t.Errorf("AcquireFast failed: %v", err)
				return
			}
			time.Sleep(5 * time.Millisecond)
			pool.ReleaseFast()
		}()
	}
	wg.Wait()

	if got := pool.Stats().TotalFast; got != 10 {
		t.Errorf("total session ops = %d, want 10", got)
	}
}

func TestPoolDefaults(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{})
	stats := pool.Stats()
	if stats.MaxFast != 100 {
		t.Errorf("MaxFast = %d, want 100", stats.MaxFast)
	}
	if stats.MaxSlow != 4 {
		t.Errorf("MaxSlow = %d, want 4", stats.MaxSlow)
	}
}

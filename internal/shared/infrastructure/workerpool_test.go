package infrastructure

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_ExecutesTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()

	var counter int64
	for i := 0; i < 20; i++ {
		err := pool.Submit(func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	pool.Wait()

	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Errorf("Expected 20 tasks executed, got %d", got)
	}
}

func TestWorkerPool_CollectsErrors(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()

	taskErr := errors.New("task failed")
	if err := pool.Submit(func() error { return taskErr }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	pool.Wait()

	select {
	case err := <-pool.Errors():
		if !errors.Is(err, taskErr) {
			t.Errorf("Expected task error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Expected an error on the errors channel")
	}
}

func TestWorkerPool_MapBatchesCoversEveryIndex(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	const count = 2500
	out := make([]int, count)
	pool.MapBatches(count, 100, func(i int) {
		out[i] = i + 1
	})

	for i, v := range out {
		if v != i+1 {
			t.Fatalf("Index %d not processed, got %d", i, v)
		}
	}
}

func TestWorkerPool_MapBatchesEmptyRange(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	called := false
	pool.MapBatches(0, 100, func(i int) { called = true })

	if called {
		t.Error("Expected no calls for an empty range")
	}
}

func TestWorkerPool_MapBatchesOnStoppedPool(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Stop()

	// Les lots refusés s'exécutent dans la goroutine appelante
	out := make([]int, 10)
	pool.MapBatches(10, 3, func(i int) {
		out[i] = i + 1
	})

	for i, v := range out {
		if v != i+1 {
			t.Fatalf("Index %d not processed on stopped pool, got %d", i, v)
		}
	}
}

func TestWorkerPool_SubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Stop()

	if err := pool.Submit(func() error { return nil }); err == nil {
		t.Error("Expected error when submitting to a stopped pool")
	}
}

func BenchmarkWorkerPool_Submit(b *testing.B) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		pool.Submit(func() error { return nil })
	}
}

package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		workers int
		want    int
	}{
		{4, 4},
		{1, 1},
		{0, runtime.GOMAXPROCS(0)},
		{-5, runtime.GOMAXPROCS(0)},
	}

	for _, tt := range tests {
		pool := NewWorkerPool(tt.workers)
		if got := pool.Workers(); got != tt.want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", tt.workers, got, tt.want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	seen := make([]atomic.Bool, 100)
	tasks := make([]Task, len(seen))
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			counter.Add(1)
			seen[i].Store(true)
			return nil
		}
	}

	if err := pool.ExecuteAll(context.Background(), tasks); err != nil {
		t.Fatalf("ExecuteAll() = %v", err)
	}
	if counter.Load() != int64(len(tasks)) {
		t.Errorf("counter = %d, want %d", counter.Load(), len(tasks))
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Errorf("task %d did not run", i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.ExecuteAll(context.Background(), nil); err != nil {
		t.Errorf("ExecuteAll(nil) = %v, want nil", err)
	}
}

func TestWorkerPool_ExecuteAll_Error(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	errBoom := errors.New("boom")
	var after atomic.Int64
	tasks := []Task{
		func(context.Context) error { return errBoom },
		func(context.Context) error { after.Add(1); return nil },
		func(context.Context) error { after.Add(1); return nil },
	}

	err := pool.ExecuteAll(context.Background(), tasks)
	if !errors.Is(err, errBoom) {
		t.Fatalf("ExecuteAll() = %v, want %v", err, errBoom)
	}
	// One worker runs tasks in order, so nothing after the failure starts.
	if n := after.Load(); n != 0 {
		t.Errorf("%d tasks ran after the failure, want 0", n)
	}
}

func TestWorkerPool_ExecuteAll_Cancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	err := pool.ExecuteAll(ctx, []Task{func(context.Context) error {
		ran.Store(true)
		return nil
	}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExecuteAll() = %v, want %v", err, context.Canceled)
	}
	if ran.Load() {
		t.Error("task ran under a cancelled context")
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	err := pool.ExecuteAll(context.Background(), []Task{func(context.Context) error { return nil }})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("ExecuteAll() after Close = %v, want %v", err, ErrClosed)
	}
}

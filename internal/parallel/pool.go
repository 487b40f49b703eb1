// Package parallel runs independent rendering jobs on a fixed set of
// goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned by ExecuteAll after Close.
var ErrClosed = errors.New("parallel: pool closed")

// Task is one unit of work. The context is cancelled once another task of
// the same batch has failed.
type Task func(ctx context.Context) error

// WorkerPool is a pool of goroutines sharing one work queue.
//
// WorkerPool is safe for concurrent use. A task must not call ExecuteAll
// on the pool running it.
type WorkerPool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup

	// mu guards closed and keeps Close from closing the queue while a
	// batch is still being queued.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for work := range p.queue {
		work()
	}
}

// ExecuteAll runs every task and waits for them to finish.
//
// When a task fails, tasks that have not started yet are skipped and the
// context passed to running tasks is cancelled. The returned error joins
// every task error, plus ctx.Err() when ctx itself was cancelled.
func (p *WorkerPool) ExecuteAll(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}

	batch, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(tasks)+1)
	var done sync.WaitGroup
	done.Add(len(tasks))

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrClosed
	}
	for i, task := range tasks {
		p.queue <- func() {
			defer done.Done()
			if batch.Err() != nil {
				return
			}
			if err := task(batch); err != nil {
				errs[i] = err
				cancel()
			}
		}
	}
	p.mu.RUnlock()

	done.Wait()
	errs[len(tasks)] = ctx.Err()
	return errors.Join(errs...)
}

// Close waits for queued work to complete and stops the workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

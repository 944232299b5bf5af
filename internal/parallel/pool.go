// Package parallel runs independent sort jobs on a fixed set of goroutines.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Run when the pool no longer accepts work.
var ErrClosed = errors.New("parallel: pool closed")

// Job is one unit of work, typically sorting and writing a single file.
type Job func() error

// WorkerPool is a pool of goroutines for batch sorting.
//
// The pool distributes jobs across multiple workers, each with its own
// queue. Workers steal from other queues when their own is empty, so a few
// large images do not leave the rest of the pool idle.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds per-worker job queues.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

// drain executes all remaining work in a queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every job and waits for all of them. It returns the joined
// errors of the failed jobs in submission order; a job that panics counts
// as failed. Run returns ErrClosed without running anything once the pool
// has been closed.
func (p *WorkerPool) Run(jobs []Job) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if len(jobs) == 0 {
		return nil
	}

	errs := make([]error, len(jobs))
	var pending sync.WaitGroup
	pending.Add(len(jobs))

	for i, job := range jobs {
		wrapped := func() {
			defer pending.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("parallel: job %d panicked: %v", i, r)
				}
			}()
			errs[i] = job()
		}

		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			errs[i] = ErrClosed
			pending.Done()
		}
	}

	pending.Wait()
	return errors.Join(errs...)
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

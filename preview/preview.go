// Package preview recomputes sort previews on a background goroutine.
//
// A Worker holds at most one computation in flight. Requests submitted
// while it is busy are dropped rather than queued, so a caller driving
// previews from a timer or slider never builds a backlog: the next tick
// after the current job finishes simply submits the latest state.
//
// Delivery never blocks. A reader that falls behind finds only the most
// recent results in the channel; older unread ones are replaced.
package preview

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pixelsort"
)

// ErrPanic wraps a panic recovered from a preview computation.
var ErrPanic = errors.New("preview: computation panicked")

// Request is the input of one preview computation.
type Request struct {
	Image  *pixelsort.Image
	Params pixelsort.Params
	Region pixelsort.Region
	Mask   *pixelsort.Mask
}

// snapshot returns a deep copy of r that shares no memory with the caller.
func (r Request) snapshot() Request {
	s := Request{Params: r.Params.Copy(), Region: r.Region}
	if r.Image != nil {
		s.Image = r.Image.Clone()
	}
	if r.Mask != nil {
		s.Mask = r.Mask.Clone()
	}
	return s
}

// Result is the outcome of one preview computation.
//
// On failure Image is nil and Err describes the failure; the caller should
// keep showing its previous state.
type Result struct {
	// Seq numbers accepted requests from 1 in submission order.
	Seq   uint64
	Image *pixelsort.Image
	Err   error
}

// SortFunc computes a preview. It owns req for the duration of the call.
type SortFunc func(req Request) (*pixelsort.Image, error)

// Worker runs preview computations one at a time.
//
// Thread safety: all methods are safe for concurrent use.
type Worker struct {
	sort    SortFunc
	results chan Result

	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup

	busy atomic.Bool
	seq  atomic.Uint64

	deliverMu sync.Mutex // serializes deliver
	delivered uint64     // highest Seq queued so far
}

// New starts a Worker. By default it sorts with pixelsort.SortRegion.
func New(opts ...Option) *Worker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Worker{
		sort:    o.sort,
		results: make(chan Result, o.buffer),
	}
}

// Submit starts a computation for a private snapshot of req and returns
// true. If a computation is already in flight, or the worker is closed, req
// is dropped and Submit returns false.
func (w *Worker) Submit(req Request) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}
	if !w.busy.CompareAndSwap(false, true) {
		pixelsort.Logger().Debug("preview: request dropped, worker busy")
		return false
	}

	seq := w.seq.Add(1)
	snap := req.snapshot()
	w.wg.Add(1)
	go w.run(seq, snap)
	return true
}

func (w *Worker) run(seq uint64, req Request) {
	defer w.wg.Done()

	img, err := w.compute(req)
	res := Result{Seq: seq, Image: img, Err: err}
	if err != nil {
		res.Image = nil
		pixelsort.Logger().Warn("preview: computation failed", "seq", seq, "err", err)
	}

	// Free the slot before delivery so a caller reacting to the result can
	// submit again immediately.
	w.busy.Store(false)
	w.deliver(res)
}

// deliver queues res without blocking. When the buffer is full the oldest
// queued result is discarded to make room. A result older than one already
// queued is discarded instead.
func (w *Worker) deliver(res Result) {
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()

	if res.Seq < w.delivered {
		return
	}
	w.delivered = res.Seq

	for {
		select {
		case w.results <- res:
			return
		default:
		}
		select {
		case stale := <-w.results:
			pixelsort.Logger().Debug("preview: unread result replaced", "seq", stale.Seq)
		default:
		}
	}
}

func (w *Worker) compute(req Request) (img *pixelsort.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return w.sort(req)
}

// Results returns the channel results are delivered on. It is closed by
// Close.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Busy reports whether a computation is in flight.
func (w *Worker) Busy() bool {
	return w.busy.Load()
}

// Close stops accepting requests, waits for the in-flight computation and
// closes the results channel. Results queued by then can still be read.
// Close is safe to call multiple times.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.wg.Wait()
	close(w.results)
}

package motif

import (
	"context"
	"errors"
	"sync"
)

// Job computes one motif. It must return promptly once ctx is cancelled.
type Job func(ctx context.Context) (*Result, error)

// Reply is the single answer to a submission.
type Reply struct {
	Result *Result
	Err    error
}

type task struct {
	seq        uint64
	cancel     context.CancelFunc
	superseded bool
}

// Dispatcher runs motif jobs in the background with latest-wins semantics
// per key. Submitting under a key that already has a job in flight cancels
// that job; its caller receives ErrSuperseded and never sees its result.
type Dispatcher struct {
	mu     sync.Mutex
	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	seq    uint64
	active map[string]*task
	closed bool
}

// NewDispatcher returns a dispatcher whose jobs derive from parent.
func NewDispatcher(parent context.Context) *Dispatcher {
	ctx, stop := context.WithCancel(parent)
	return &Dispatcher{
		ctx:    ctx,
		stop:   stop,
		active: make(map[string]*task),
	}
}

// Submit starts job under key and returns a channel that receives exactly
// one Reply.
func (d *Dispatcher) Submit(key string, job Job) <-chan Reply {
	reply := make(chan Reply, 1)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		reply <- Reply{Err: ErrDispatcherClosed}
		return reply
	}
	if prev, ok := d.active[key]; ok {
		prev.superseded = true
		prev.cancel()
		Logger().Debug("superseding job", "key", key, "seq", prev.seq)
	}
	d.seq++
	ctx, cancel := context.WithCancel(d.ctx)
	t := &task{seq: d.seq, cancel: cancel}
	d.active[key] = t
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()

		res, err := job(ctx)

		d.mu.Lock()
		superseded := t.superseded
		if d.active[key] == t {
			delete(d.active, key)
		}
		d.mu.Unlock()

		switch {
		case superseded:
			Logger().Warn("job superseded", "key", key, "seq", t.seq)
			reply <- Reply{Err: ErrSuperseded}
		case err != nil:
			if !errors.Is(err, context.Canceled) {
				Logger().Warn("job failed", "key", key, "seq", t.seq, "err", err)
			}
			reply <- Reply{Err: err}
		default:
			Logger().Info("job completed", "key", key, "seq", t.seq)
			reply <- Reply{Result: res}
		}
	}()
	return reply
}

// Cancel cancels the in-flight job for key, if any. Its caller receives
// ErrSuperseded.
func (d *Dispatcher) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.active[key]
	if !ok {
		return false
	}
	t.superseded = true
	t.cancel()
	delete(d.active, key)
	return true
}

// Pending returns the number of jobs in flight.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// Close cancels every job, waits for them to reply and rejects later
// submissions.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.stop()
	d.wg.Wait()
}

// Run submits job under key and waits for its reply or ctx.
func (d *Dispatcher) Run(ctx context.Context, key string, job Job) (*Result, error) {
	select {
	case r := <-d.Submit(key, job):
		return r.Result, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

package dispatch

import (
	"context"
	"reflect"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Async is a thread-safe dispatcher whose Dispatch drains the per-type
// queues in parallel on an Executor. Connect, Enqueue, Send, and QueueSize
// behave exactly as on Synchronized; only dispatching differs.
//
// Use NewAsync; the zero value is not usable.
type Async struct {
	inner *Synchronized
	exec  Executor
}

// AsyncOption configures an Async dispatcher.
type AsyncOption func(*Async)

// WithExecutor sets the executor that runs the per-type drains. The default
// runs each drain on its own goroutine.
func WithExecutor(exec Executor) AsyncOption {
	return func(d *Async) {
		if exec != nil {
			d.exec = exec
		}
	}
}

// NewAsync creates an empty async dispatcher.
func NewAsync(opts ...AsyncOption) *Async {
	d := &Async{
		inner: NewSynchronized(),
		exec:  goExecutor{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Async) lookup(key reflect.Type) (runner, bool) {
	return d.inner.lookup(key)
}

func (d *Async) materialize(key reflect.Type, build func() runner) runner {
	return d.inner.materialize(key, build)
}

func (d *Async) threadsafe() bool { return true }

// Dispatch drains the queue of every event type registered at the time of
// the call, posting one drain task per event type to the executor and
// waiting for the whole group. Within one event type, events are still
// delivered in FIFO order; across event types the drains run in parallel.
//
// A callback panic on this path is recovered into a *PanicError and
// returned once the group completes. If ctx is cancelled, Dispatch stops
// waiting and returns ctx.Err(); tasks already posted run to completion on
// the executor.
func (d *Async) Dispatch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, r := range d.inner.snapshot() {
		done := make(chan error, 1)
		d.exec.Go(func() {
			done <- drain(r)
		})
		g.Go(func() error {
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	return g.Wait()
}

// QueueSize returns the total number of enqueued events across all event
// types.
func (d *Async) QueueSize() int {
	return d.inner.QueueSize()
}

// Clear drops all queued events without invoking any callbacks.
func (d *Async) Clear() {
	d.inner.Clear()
}

func drain(r runner) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	r.dispatch()
	return nil
}

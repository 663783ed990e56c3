package signal

import "iter"

// Synchronized is a thread-safe registry of func(T) callbacks. It may be
// used from any number of goroutines; parallelism is supplied by the caller.
//
// Mutations replace an immutable snapshot of the callback sequence under a
// mutex, and Publish iterates the snapshot it captured with no lock held.
// Consequences of that design:
//
//   - Callbacks never run under a handler lock, so a callback may call
//     Connect, Disconnect, Publish, or DisconnectAll on the same handler
//     without deadlocking.
//   - A publish invokes exactly the callbacks captured at its start.
//     Connects and disconnects that land mid-publish take effect for later
//     publishes, including a callback disconnecting its neighbor: the
//     neighbor still runs in the current publish.
//   - Disconnect is race-free with a concurrent publish; a captured callback
//     is kept alive by the snapshot until the publish finishes with it.
//
// Use NewSynchronized; the zero value is not usable.
type Synchronized[T any] struct {
	state *cow[func(T)]
}

// NewSynchronized creates an empty thread-safe handler.
func NewSynchronized[T any]() *Synchronized[T] {
	return &Synchronized[T]{state: &cow[func(T)]{}}
}

// Connect registers a callback that will be invoked when the signal is
// published.
//
// The returned Connection references the handler weakly: it never keeps the
// handler alive, and disconnecting after the handler is gone is a no-op.
func (h *Synchronized[T]) Connect(fn func(T)) Connection {
	return h.state.connect(fn)
}

// Publish fires the signal, invoking every callback in the current snapshot
// in insertion order. No handler lock is held while callbacks run. A
// panicking callback aborts the publish; callbacks after it in the snapshot
// are not invoked and the handler's registrations are unaffected.
func (h *Synchronized[T]) Publish(v T) {
	for _, c := range h.state.load() {
		c.fn(v)
	}
}

// Len returns the number of connected callbacks.
func (h *Synchronized[T]) Len() int {
	return h.state.size()
}

// DisconnectAll disconnects every callback. Publishes that already captured
// a snapshot complete with it.
func (h *Synchronized[T]) DisconnectAll() {
	h.state.removeAll()
}

// Clone creates a handler holding the callbacks captured from h's current
// snapshot. Connections issued by h never refer to callbacks in the clone.
func (h *Synchronized[T]) Clone() *Synchronized[T] {
	return &Synchronized[T]{state: h.state.clone()}
}

// SynchronizedResult is a thread-safe registry of func(T) R callbacks. It
// behaves like Synchronized, and additionally collects callback return
// values in snapshot order.
//
// Use NewSynchronizedResult; the zero value is not usable.
type SynchronizedResult[T, R any] struct {
	state *cow[func(T) R]
}

// NewSynchronizedResult creates an empty thread-safe result handler.
func NewSynchronizedResult[T, R any]() *SynchronizedResult[T, R] {
	return &SynchronizedResult[T, R]{state: &cow[func(T) R]{}}
}

// Connect registers a callback that will be invoked when the signal is
// published.
func (h *SynchronizedResult[T, R]) Connect(fn func(T) R) Connection {
	return h.state.connect(fn)
}

// Publish fires the signal and returns the callback results in snapshot
// order. No handler lock is held while callbacks run.
func (h *SynchronizedResult[T, R]) Publish(v T) []R {
	snap := h.state.load()
	if len(snap) == 0 {
		return nil
	}
	results := make([]R, 0, len(snap))
	for _, c := range snap {
		results = append(results, c.fn(v))
	}
	return results
}

// All fires the signal lazily over the snapshot captured at the call: each
// callback runs only when its element of the returned sequence is consumed.
// The sequence is finite and single-use; ranging over it a second time
// yields nothing.
func (h *SynchronizedResult[T, R]) All(v T) iter.Seq[R] {
	snap := h.state.load()
	consumed := false
	return func(yield func(R) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, c := range snap {
			if !yield(c.fn(v)) {
				return
			}
		}
	}
}

// Len returns the number of connected callbacks.
func (h *SynchronizedResult[T, R]) Len() int {
	return h.state.size()
}

// DisconnectAll disconnects every callback.
func (h *SynchronizedResult[T, R]) DisconnectAll() {
	h.state.removeAll()
}

// Clone creates a handler holding the callbacks captured from h's current
// snapshot.
func (h *SynchronizedResult[T, R]) Clone() *SynchronizedResult[T, R] {
	return &SynchronizedResult[T, R]{state: h.state.clone()}
}

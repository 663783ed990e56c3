package signal

import "iter"

// Handler is a single-threaded registry of func(T) callbacks. Publish
// invokes every connected callback in insertion order.
//
// A Handler performs no locking; all access must come from one goroutine.
// Callbacks may connect, disconnect, or publish on the same handler while a
// publish is in flight: a callback disconnected mid-publish is not invoked
// again in that publish, and a callback connected mid-publish is invoked by
// it (the iteration observes appends).
//
// The zero value is an empty handler ready for use.
type Handler[T any] struct {
	callbacks list[func(T)]
}

// New creates an empty Handler.
func New[T any]() *Handler[T] {
	return &Handler[T]{}
}

// Connect registers a callback that will be invoked when the signal is
// published. The returned Connection can disconnect it again.
//
// The connection holds a strong reference to the handler; single-threaded
// handlers trust the caller not to use a connection in ways that outlive
// their interest in the handler.
func (h *Handler[T]) Connect(fn func(T)) Connection {
	return h.callbacks.connect(fn)
}

// Publish fires the signal, invoking every connected callback with v in
// insertion order. A panicking callback aborts the publish; callbacks after
// it are not invoked and the handler's registrations are unaffected.
func (h *Handler[T]) Publish(v T) {
	h.callbacks.begin()
	defer h.callbacks.end()

	for i := 0; i < len(h.callbacks.cells); i++ {
		c := h.callbacks.cells[i]
		if c.removed {
			continue
		}
		c.fn(v)
	}
}

// Len returns the number of connected callbacks.
func (h *Handler[T]) Len() int {
	return h.callbacks.size()
}

// DisconnectAll disconnects every callback.
func (h *Handler[T]) DisconnectAll() {
	h.callbacks.removeAll()
}

// ResultHandler is a single-threaded registry of func(T) R callbacks.
// It behaves like Handler, and additionally collects callback return values.
//
// The zero value is an empty handler ready for use.
type ResultHandler[T, R any] struct {
	callbacks list[func(T) R]
}

// NewResult creates an empty ResultHandler.
func NewResult[T, R any]() *ResultHandler[T, R] {
	return &ResultHandler[T, R]{}
}

// Connect registers a callback that will be invoked when the signal is
// published.
func (h *ResultHandler[T, R]) Connect(fn func(T) R) Connection {
	return h.callbacks.connect(fn)
}

// Publish fires the signal and returns the callback results in insertion
// order.
func (h *ResultHandler[T, R]) Publish(v T) []R {
	h.callbacks.begin()
	defer h.callbacks.end()

	results := make([]R, 0, h.callbacks.size())
	for i := 0; i < len(h.callbacks.cells); i++ {
		c := h.callbacks.cells[i]
		if c.removed {
			continue
		}
		results = append(results, c.fn(v))
	}
	return results
}

// All fires the signal lazily: each callback runs only when its element of
// the returned sequence is consumed. The sequence is finite and single-use;
// ranging over it a second time yields nothing.
func (h *ResultHandler[T, R]) All(v T) iter.Seq[R] {
	consumed := false
	return func(yield func(R) bool) {
		if consumed {
			return
		}
		consumed = true

		h.callbacks.begin()
		defer h.callbacks.end()

		for i := 0; i < len(h.callbacks.cells); i++ {
			c := h.callbacks.cells[i]
			if c.removed {
				continue
			}
			if !yield(c.fn(v)) {
				return
			}
		}
	}
}

// Len returns the number of connected callbacks.
func (h *ResultHandler[T, R]) Len() int {
	return h.callbacks.size()
}

// DisconnectAll disconnects every callback.
func (h *ResultHandler[T, R]) DisconnectAll() {
	h.callbacks.removeAll()
}

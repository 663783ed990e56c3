package dispatch

import (
	"reflect"

	"github.com/dshills/eventstorm/signal"
)

// Registry is the interface over which the package-level typed operations
// (Connect, Enqueue, Send, QueueSize) work. It is implemented by Dispatcher,
// Synchronized, and Async, and cannot be implemented outside this package.
type Registry interface {
	// lookup returns the entry for key without creating it.
	lookup(key reflect.Type) (runner, bool)

	// materialize returns the entry for key, inserting build() if absent.
	materialize(key reflect.Type, build func() runner) runner

	// threadsafe reports whether entries need internal locking.
	threadsafe() bool
}

// Dispatcher is a single-threaded event dispatcher. It performs no locking;
// all access, including through connections it issued, must come from one
// goroutine.
type Dispatcher struct {
	table map[reflect.Type]runner
}

// New creates an empty single-threaded dispatcher.
func New() *Dispatcher {
	return &Dispatcher{table: make(map[reflect.Type]runner)}
}

func (d *Dispatcher) lookup(key reflect.Type) (runner, bool) {
	r, ok := d.table[key]
	return r, ok
}

func (d *Dispatcher) materialize(key reflect.Type, build func() runner) runner {
	if r, ok := d.table[key]; ok {
		return r
	}
	r := build()
	d.table[key] = r
	return r
}

func (d *Dispatcher) threadsafe() bool { return false }

// Dispatch drains every event type's queue in turn, invoking the callbacks
// registered for each drained event. The order in which event types are
// visited is unspecified. Events that callbacks enqueue for the type being
// drained, or for a type first used during this call, are deferred to the
// next Dispatch call; events enqueued for another type whose queue has not
// been drained yet in this call are delivered by this call.
func (d *Dispatcher) Dispatch() {
	// Iterate a capture of the current entries: a callback may materialize
	// a new event type, and that type's events belong to the next dispatch.
	runners := make([]runner, 0, len(d.table))
	for _, r := range d.table {
		runners = append(runners, r)
	}
	for _, r := range runners {
		r.dispatch()
	}
}

// QueueSize returns the total number of enqueued events across all event
// types. For a single type, use the package-level QueueSize function.
func (d *Dispatcher) QueueSize() int {
	total := 0
	for _, r := range d.table {
		total += r.size()
	}
	return total
}

// Clear drops all queued events without invoking any callbacks.
func (d *Dispatcher) Clear() {
	for _, r := range d.table {
		r.clear()
	}
}

// Connect registers fn for events of type E and returns its Connection.
// The first use of an event type materializes its internal handler/queue
// pair; every later operation on E reuses it.
func Connect[E any](r Registry, fn func(E)) signal.Connection {
	return dispatcherFor[E](r).connect(fn)
}

// Enqueue appends events to E's queue for a later Dispatch.
func Enqueue[E any](r Registry, events ...E) {
	if len(events) == 0 {
		return
	}
	dispatcherFor[E](r).enqueue(events)
}

// Send immediately invokes the callbacks registered for E once per event,
// in order, without touching E's queue.
func Send[E any](r Registry, events ...E) {
	if len(events) == 0 {
		return
	}
	dispatcherFor[E](r).send(events)
}

// QueueSize returns the number of enqueued events of type E. An event type
// that was never used reports 0 and is not materialized.
func QueueSize[E any](r Registry) int {
	if run, ok := r.lookup(reflect.TypeFor[E]()); ok {
		return run.size()
	}
	return 0
}

func dispatcherFor[E any](r Registry) discrete[E] {
	key := reflect.TypeFor[E]()
	if run, ok := r.lookup(key); ok {
		return run.(discrete[E])
	}
	run := r.materialize(key, func() runner {
		if r.threadsafe() {
			return newMTDiscrete[E]()
		}
		return &stDiscrete[E]{}
	})
	return run.(discrete[E])
}

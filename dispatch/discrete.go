package dispatch

import "github.com/dshills/eventstorm/signal"

// runner is the type-erased face of a per-event-type dispatcher. The
// dispatchers hold their entries through this interface; everything typed
// goes through discrete[E].
type runner interface {
	dispatch()
	clear()
	size() int
}

// discrete is the typed face of a per-event-type dispatcher: one signal
// handler plus one event queue for a single event type E.
type discrete[E any] interface {
	runner
	connect(fn func(E)) signal.Connection
	enqueue(events []E)
	send(events []E)
}

// stDiscrete backs Dispatcher entries. Single-threaded, so the queue is a
// bare slice.
type stDiscrete[E any] struct {
	handler signal.Handler[E]
	events  []E
}

func (d *stDiscrete[E]) connect(fn func(E)) signal.Connection {
	return d.handler.Connect(fn)
}

func (d *stDiscrete[E]) enqueue(events []E) {
	d.events = append(d.events, events...)
}

func (d *stDiscrete[E]) send(events []E) {
	for _, e := range events {
		d.handler.Publish(e)
	}
}

// dispatch publishes the queued events in FIFO order. Moving the slice out
// first and iterating the local copy lets callbacks enqueue more events;
// those are seen by the next dispatch, not this one.
func (d *stDiscrete[E]) dispatch() {
	buf := d.events
	d.events = nil
	for _, e := range buf {
		d.handler.Publish(e)
	}
}

func (d *stDiscrete[E]) clear() {
	d.events = nil
}

func (d *stDiscrete[E]) size() int {
	return len(d.events)
}

// mtDiscrete backs Synchronized and Async entries.
type mtDiscrete[E any] struct {
	handler *signal.Synchronized[E]
	queue   eventQueue[E]
}

func newMTDiscrete[E any]() *mtDiscrete[E] {
	return &mtDiscrete[E]{handler: signal.NewSynchronized[E]()}
}

func (d *mtDiscrete[E]) connect(fn func(E)) signal.Connection {
	return d.handler.Connect(fn)
}

func (d *mtDiscrete[E]) enqueue(events []E) {
	d.queue.push(events)
}

func (d *mtDiscrete[E]) send(events []E) {
	for _, e := range events {
		d.handler.Publish(e)
	}
}

func (d *mtDiscrete[E]) dispatch() {
	for _, e := range d.queue.drain() {
		d.handler.Publish(e)
	}
}

func (d *mtDiscrete[E]) clear() {
	d.queue.clear()
}

func (d *mtDiscrete[E]) size() int {
	return d.queue.size()
}

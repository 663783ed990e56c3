// Package dispatch provides typed event dispatchers: keyed registries that
// route events to callbacks by the event's Go type.
//
// # Model
//
// Each event type gets its own private pairing of a signal handler and a
// FIFO event queue, created lazily on first use. Producers either Send
// events (immediate delivery, no queue touch) or Enqueue them; consumers
// call Dispatch to drain every queue. Dispatch drains each queue into a
// local buffer before invoking callbacks, so events a callback enqueues for
// the type being drained are deferred to the next dispatch cycle.
//
// Because Go methods cannot introduce type parameters, the per-event-type
// operations are package functions over a dispatcher:
//
//	d := dispatch.NewSynchronized()
//	conn := dispatch.Connect(d, func(e SaveRequested) { ... })
//	dispatch.Enqueue(d, SaveRequested{Path: "a.txt"})
//	d.Dispatch()
//	conn.Disconnect()
//
// # Variants
//
//   - Dispatcher: single-threaded, no locking.
//   - Synchronized: safe for concurrent use. A sync.RWMutex guards
//     the type registry (shared for lookup, exclusive for first-use
//     creation), and Dispatch snapshots the registered entries before
//     invoking any callback, so callbacks may connect or enqueue
//     previously-unseen event types without deadlocking.
//   - Async: a Synchronized dispatcher whose Dispatch drains the per-type
//     queues in parallel on an Executor, awaiting the whole group.
//
// Lock ordering within the package is registry lock, then queue lock, then
// signal snapshot lock; no lock is ever held while a callback runs.
//
// # Event Type Identity
//
// Events are routed on exact type identity (reflect.Type). Two events are
// routed to the same callbacks iff they have the same dynamic type;
// assignability and embedding are not considered.
package dispatch

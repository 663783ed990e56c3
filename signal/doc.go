// Package signal provides callback registries for a single function
// signature. Producers fire a signal with Publish; every registered callback
// is invoked with the published arguments, and for result-bearing handlers
// the return values are collected in registration order.
//
// # Handler Variants
//
// Four registries cover the void/result and single-threaded/thread-safe axes:
//
//   - Handler[T]: single-threaded, callbacks func(T)
//   - ResultHandler[T, R]: single-threaded, callbacks func(T) R
//   - Synchronized[T]: thread-safe, callbacks func(T)
//   - SynchronizedResult[T, R]: thread-safe, callbacks func(T) R
//
// The single-threaded variants perform no locking and must be confined to
// one goroutine. The synchronized variants may be used from any number of
// goroutines.
//
// # Snapshot Publication
//
// The synchronized handlers publish through an immutable copy-on-write
// snapshot: every mutation (connect, disconnect, disconnect-all) builds a
// fresh callback sequence under a mutex and swaps a single pointer, while
// Publish takes a reference to the current snapshot and iterates it with no
// lock held. Publishers therefore never block writers for longer than the
// pointer swap, writers never block publishers, and a callback may freely
// connect, disconnect, or publish on the same handler without deadlocking.
// A publish that has already captured its snapshot still invokes callbacks
// that are disconnected mid-flight; the next publish sees the new set.
//
// # Connections
//
// Connect returns a Connection: a small value that can disconnect the
// registered callback. Copies of a Connection share the capability and
// Disconnect is idempotent. ScopedConnection ties disconnection to scope
// exit via Close:
//
//	conn := signal.Scoped(h.Connect(onChange))
//	defer conn.Close()
//
// # Basic Usage
//
//	h := signal.New[string]()
//	conn := h.Connect(func(msg string) { fmt.Println("got:", msg) })
//	h.Publish("hello")
//	conn.Disconnect()
package signal

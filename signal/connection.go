package signal

import "sync/atomic"

// Connection is a handle to a registered callback. It is created by the
// Connect method of a handler and can be used to disconnect the callback.
//
// Copies of a Connection share the disconnect capability: the first
// Disconnect call on any copy releases the callback, and later calls on any
// copy are no-ops. The zero value is a connection that was never live.
type Connection struct {
	state *connState
}

// connState holds the disconnect closure for one registration. The closure
// is swapped to nil on the first disconnect, which makes Disconnect
// idempotent across every copy of the Connection.
type connState struct {
	disconnect atomic.Pointer[func()]
}

// newConnection wraps a disconnect closure. Handlers call this from Connect.
func newConnection(disconnect func()) Connection {
	s := &connState{}
	s.disconnect.Store(&disconnect)
	return Connection{state: s}
}

// Connected reports whether the connection still refers to a registered
// callback's disconnect capability. It returns false for the zero value and
// after any copy of this connection has disconnected.
func (c Connection) Connected() bool {
	return c.state != nil && c.state.disconnect.Load() != nil
}

// Disconnect releases the referenced callback from its registry if the
// connection is still live, then marks the connection dead. It is safe to
// call any number of times, on the zero value, and after the registry itself
// has been dropped.
func (c Connection) Disconnect() {
	if c.state == nil {
		return
	}
	if fn := c.state.disconnect.Swap(nil); fn != nil {
		(*fn)()
	}
}

// ScopedConnection is a Connection that disconnects when closed. Tie it to a
// scope with defer:
//
//	conn := signal.Scoped(h.Connect(fn))
//	defer conn.Close()
//
// A ScopedConnection should not be copied; hand off ownership with Release.
type ScopedConnection struct {
	conn Connection
}

// Scoped wraps a Connection so it disconnects on Close.
func Scoped(c Connection) ScopedConnection {
	return ScopedConnection{conn: c}
}

// Connected reports whether the underlying connection is still live.
func (s *ScopedConnection) Connected() bool {
	return s.conn.Connected()
}

// Close disconnects the underlying connection. Idempotent.
func (s *ScopedConnection) Close() {
	s.conn.Disconnect()
}

// Release detaches and returns the underlying Connection without
// disconnecting it. After Release, Close is a no-op.
func (s *ScopedConnection) Release() Connection {
	c := s.conn
	s.conn = Connection{}
	return c
}

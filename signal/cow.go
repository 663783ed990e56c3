package signal

import (
	"sync"
	"weak"
)

// cow is the copy-on-write callback store shared by Synchronized and
// SynchronizedResult. The current snapshot is an immutable slice of shared
// cells: every mutation builds a fresh slice under mu and swaps the field,
// and publishers iterate whatever snapshot they loaded with no lock held.
//
// A cow is always heap-allocated by its handler's constructor so that
// connections can reference it weakly: disconnecting must not keep a dropped
// handler alive, and must be a safe no-op once the handler is collected.
type cow[F any] struct {
	mu   sync.Mutex
	snap []*cell[F] // immutable once stored; nil when empty
}

func (s *cow[F]) connect(fn F) Connection {
	c := &cell[F]{fn: fn}

	s.mu.Lock()
	next := make([]*cell[F], len(s.snap)+1)
	copy(next, s.snap)
	next[len(next)-1] = c
	s.snap = next
	s.mu.Unlock()

	ref := weak.Make(s)
	return newConnection(func() {
		if state := ref.Value(); state != nil {
			state.remove(c)
		}
	})
}

// remove builds a snapshot without the first cell matching c. A publish that
// already captured the old snapshot still invokes c; the cell itself is
// freed when the last snapshot referencing it is dropped.
func (s *cow[F]) remove(c *cell[F]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, have := range s.snap {
		if have != c {
			continue
		}
		if len(s.snap) == 1 {
			s.snap = nil
			return
		}
		next := make([]*cell[F], 0, len(s.snap)-1)
		next = append(next, s.snap[:i]...)
		next = append(next, s.snap[i+1:]...)
		s.snap = next
		return
	}
}

// load returns the current snapshot. Callers iterate it without the lock.
func (s *cow[F]) load() []*cell[F] {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()
	return snap
}

func (s *cow[F]) size() int {
	s.mu.Lock()
	n := len(s.snap)
	s.mu.Unlock()
	return n
}

func (s *cow[F]) removeAll() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// clone captures the current snapshot in a fresh store. Snapshots are
// immutable, so the two stores can share the backing slice; the first
// mutation on either side copies it.
func (s *cow[F]) clone() *cow[F] {
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()
	return &cow[F]{snap: snap}
}

package dispatch

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAsync_DispatchDeliversAll(t *testing.T) {
	d := NewAsync()
	var values, names atomic.Int64

	Connect(d, func(valueEvent) { values.Add(1) })
	Connect(d, func(otherEvent) { names.Add(1) })

	for i := 0; i < 100; i++ {
		Enqueue(d, valueEvent{i})
	}
	Enqueue(d, otherEvent{"a"}, otherEvent{"b"})

	if err := d.Dispatch(context.Background()); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if got := values.Load(); got != 100 {
		t.Errorf("value deliveries = %d, want 100", got)
	}
	if got := names.Load(); got != 2 {
		t.Errorf("name deliveries = %d, want 2", got)
	}
	if d.QueueSize() != 0 {
		t.Errorf("QueueSize() = %d, want 0", d.QueueSize())
	}
}

func TestAsync_FIFOWithinType(t *testing.T) {
	d := NewAsync()
	var mu sync.Mutex
	var record []int

	Connect(d, func(e valueEvent) {
		mu.Lock()
		record = append(record, e.v)
		mu.Unlock()
	})

	for i := 0; i < 50; i++ {
		Enqueue(d, valueEvent{i})
	}
	if err := d.Dispatch(context.Background()); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !slices.IsSorted(record) || len(record) != 50 {
		t.Errorf("within-type order broken: %v", record)
	}
}

func TestAsync_CallbackPanic(t *testing.T) {
	d := NewAsync()
	Connect(d, func(valueEvent) { panic("boom") })
	Enqueue(d, valueEvent{1})

	err := d.Dispatch(context.Background())

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Dispatch() error = %v, want *PanicError", err)
	}
	if pe.Value != "boom" {
		t.Errorf("PanicError.Value = %v, want boom", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("PanicError.Stack is empty")
	}
}

func TestAsync_ContextCancellation(t *testing.T) {
	d := NewAsync()
	release := make(chan struct{})
	defer close(release)

	Connect(d, func(valueEvent) { <-release })
	Enqueue(d, valueEvent{1})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Dispatch(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Dispatch() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch did not return after cancellation")
	}
}

func TestAsync_WithPoolExecutor(t *testing.T) {
	pool := NewPoolExecutor(2)
	defer pool.Shutdown()

	d := NewAsync(WithExecutor(pool))
	var delivered atomic.Int64
	Connect(d, func(valueEvent) { delivered.Add(1) })
	Connect(d, func(otherEvent) { delivered.Add(1) })

	Enqueue(d, valueEvent{1}, valueEvent{2})
	Enqueue(d, otherEvent{"x"})

	if err := d.Dispatch(context.Background()); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := delivered.Load(); got != 3 {
		t.Errorf("delivered = %d, want 3", got)
	}
}

func TestPoolExecutor(t *testing.T) {
	t.Run("runs tasks", func(t *testing.T) {
		pool := NewPoolExecutor(4)
		var ran atomic.Int64
		var wg sync.WaitGroup

		for i := 0; i < 64; i++ {
			wg.Add(1)
			pool.Go(func() {
				defer wg.Done()
				ran.Add(1)
			})
		}
		wg.Wait()
		pool.Shutdown()

		if got := ran.Load(); got != 64 {
			t.Errorf("ran %d tasks, want 64", got)
		}
	})

	t.Run("shutdown idempotent", func(t *testing.T) {
		pool := NewPoolExecutor(1)
		pool.Shutdown()
		pool.Shutdown()
	})

	t.Run("inline after shutdown", func(t *testing.T) {
		pool := NewPoolExecutor(1)
		pool.Shutdown()

		ran := false
		pool.Go(func() { ran = true })
		if !ran {
			t.Error("task posted after Shutdown did not run")
		}
	})

	t.Run("size floor", func(t *testing.T) {
		pool := NewPoolExecutor(0)
		defer pool.Shutdown()

		done := make(chan struct{})
		pool.Go(func() { close(done) })
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("task never ran")
		}
	})
}

func TestAsync_SendAndQueueSize(t *testing.T) {
	d := NewAsync()
	var sent atomic.Int64
	Connect(d, func(valueEvent) { sent.Add(1) })

	Send(d, valueEvent{1})
	if got := sent.Load(); got != 1 {
		t.Errorf("Send delivered %d, want 1", got)
	}

	Enqueue(d, valueEvent{2})
	if got := QueueSize[valueEvent](d); got != 1 {
		t.Errorf("QueueSize = %d, want 1", got)
	}
	d.Clear()
	if got := d.QueueSize(); got != 0 {
		t.Errorf("QueueSize after Clear = %d, want 0", got)
	}
}

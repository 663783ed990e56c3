package dispatch

import "testing"

func BenchmarkDispatcher_EnqueueDispatch(b *testing.B) {
	d := New()
	Connect(d, func(valueEvent) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Enqueue(d, valueEvent{i})
		d.Dispatch()
	}
}

func BenchmarkDispatcher_Send(b *testing.B) {
	d := New()
	Connect(d, func(valueEvent) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Send(d, valueEvent{i})
	}
}

func BenchmarkSynchronized_Send(b *testing.B) {
	d := NewSynchronized()
	Connect(d, func(valueEvent) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Send(d, valueEvent{i})
	}
}

func BenchmarkSynchronized_EnqueueParallel(b *testing.B) {
	d := NewSynchronized()
	Connect(d, func(valueEvent) {})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Enqueue(d, valueEvent{1})
		}
	})
	b.StopTimer()
	d.Clear()
}

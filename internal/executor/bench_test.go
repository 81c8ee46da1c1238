package executor

import (
	"context"
	"testing"
)

func BenchmarkMap_ThreadPool(b *testing.B) {
	reg := NewRegistry(testLogger())
	defer reg.ShutdownAll()

	items := make([]int, 64)
	for i := range items {
		items[i] = i
	}

	fn := func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Map(context.Background(), reg, fn, items, Options{
			Name:    "bench-thread",
			Kind:    KindThread,
			Workers: 8,
		}); err != nil {
			b.Fatalf("Map failed: %v", err)
		}
	}
}

func BenchmarkMap_ProcessPoolChunked(b *testing.B) {
	reg := NewRegistry(testLogger())
	defer reg.ShutdownAll()

	items := make([]int, 64)
	for i := range items {
		items[i] = i
	}

	fn := func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Map(context.Background(), reg, fn, items, Options{
			Name:      "bench-process",
			Kind:      KindProcess,
			Workers:   4,
			ChunkSize: 8,
		}); err != nil {
			b.Fatalf("Map failed: %v", err)
		}
	}
}

func BenchmarkRegistry_GetOrCreate_Hit(b *testing.B) {
	reg := NewRegistry(testLogger())
	defer reg.ShutdownAll()

	if _, err := reg.GetOrCreate("hot", KindThread, 4); err != nil {
		b.Fatalf("GetOrCreate failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.GetOrCreate("hot", KindThread, 4); err != nil {
			b.Fatalf("GetOrCreate failed: %v", err)
		}
	}
}

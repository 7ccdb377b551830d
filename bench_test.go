package ringq //nolint:testpackage // it's OK to be just ringq

import (
	"container/list"
	"math/rand/v2"
	"slices"
	"testing"
)

func BenchmarkPushAscending(b *testing.B) {
	b.ReportAllocs()
	q, _ := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := q.Push(i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPushDescending(b *testing.B) {
	b.ReportAllocs()
	q, _ := New[int]()
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		if err := q.Push(i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPushRandom(b *testing.B) {
	b.ReportAllocs()
	q, _ := New[int]()
	rng := rand.New(rand.NewPCG(1, 2))
	values := make([]int, b.N)
	for i := range values {
		values[i] = rng.Int()
	}
	b.ResetTimer()
	for _, v := range values {
		if err := q.Push(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmplaceAscending(b *testing.B) {
	b.ReportAllocs()
	q, _ := NewFunc(baseLess)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := q.Emplace(func(v *base) {
			v.index = i
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPushCapacity100(b *testing.B) {
	b.ReportAllocs()
	q, _ := New[int](WithCapacity(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := q.Push(i); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkListSortBaseline keeps the top values in a container/list, clearing it once it grows past the
// capacity and re-sorting after each insertion.
func BenchmarkListSortBaseline(b *testing.B) {
	b.ReportAllocs()
	l := list.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if l.Len() > DefaultCapacity {
			l.Init()
		}
		l.PushBack(i)
		// insertion sort of the last element
		for e := l.Back(); e.Prev() != nil && e.Prev().Value.(int) > e.Value.(int); {
			l.MoveBefore(e, e.Prev())
		}
	}
}

// BenchmarkSortedSliceBaseline keeps the top values in a slice, sorting on every insertion.
func BenchmarkSortedSliceBaseline(b *testing.B) {
	b.ReportAllocs()
	s := make([]int, 0, DefaultCapacity+1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s = append(s, i)
		slices.Sort(s)
		if len(s) > DefaultCapacity {
			s = slices.Delete(s, 0, 1)
		}
	}
}

func BenchmarkPoolGetPut(b *testing.B) {
	b.ReportAllocs()
	pool, _ := NewPool[int](64, DefaultMaxPools)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := pool.Get()
		if err != nil {
			b.Fatal(err)
		}
		if errPut := pool.Put(h); errPut != nil {
			b.Fatal(errPut)
		}
	}
}

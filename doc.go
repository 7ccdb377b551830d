// Package ringq provides a bounded, always-sorted queue that retains the K largest elements ever pushed
// ("keep the top-K scores seen so far").
// Elements are stored in slots handed out by a pool allocator that obtains memory in bulk, one fixed-size pool at
// a time, and recycles slots through a free list, so steady-state pushes do not allocate.
// Overflowing the capacity evicts the smallest element, never the oldest one.
//
// Example:
//
//	import "github.com/yago-123/ringq"
//
//	// Keep the 3 largest scores
//	q, err := ringq.New[int](ringq.WithCapacity(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer q.Close()
//
//	for _, score := range []int{7, 42, 3, 19, 8} {
//	    if err := q.Push(score); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	// Prints 8 19 42
//	for score := range q.All() {
//	    fmt.Println(score)
//	}
//
//	// Remove 19 while walking with an iterator
//	for it := q.Begin(); !it.Equal(q.End()); {
//	    if it.Value() == 19 {
//	        it, _ = q.Erase(it)
//	        continue
//	    }
//	    it = it.Next()
//	}
//
// A Pool can also be used on its own to recycle fixed-size slots of any type through Get and Put.
//
// Neither Queue nor Pool is safe for concurrent use. A pool whose backing memory cannot be obtained terminates the
// process by default, see WithAllocFailureHandler.
package ringq

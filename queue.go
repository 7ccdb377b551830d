package ringq

import (
	"cmp"
	"fmt"
	"iter"
)

// Queue keeps the Cap() largest elements ever pushed, in ascending order. Elements live in slots of a Pool owned by
// the queue and are linked into a circular doubly-linked list anchored by a sentinel slot, so pushing does not
// allocate once the first pool exists.
//
// Insertion scans from the largest element towards the smallest. That is linear, but close to constant when new
// elements tend to be larger than the ones already queued, which is the access pattern the queue is built for.
//
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	pool     *Pool[entry[T]]
	less     func(a, b T) bool
	sentinel Handle
	length   int
	capacity int
	onRemove func(T)
	closed   bool
}

// New constructs a Queue ordered by the natural ascending order of T.
func New[T cmp.Ordered](opts ...Option) (*Queue[T], error) {
	return NewFunc(cmp.Less[T], opts...)
}

// NewFunc constructs a Queue ordered by less, which must be a strict weak ordering. A comparator that is not
// yields an unspecified order and eviction choice, never a crash.
func NewFunc[T any](less func(a, b T) bool, opts ...Option) (*Queue[T], error) {
	if less == nil {
		return nil, fmt.Errorf("comparator must not be nil")
	}

	o := defaultOptions()
	o.apply(opts)

	if o.capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, o.capacity)
	}

	slotsPerPool := o.slotsPerPool
	if slotsPerPool == 0 {
		slotsPerPool = o.capacity + queueSpareSlots
	}

	pool, err := newPool[entry[T]](slotsPerPool, o.maxPools, o)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// The sentinel takes a slot for its links only and keeps it until Close
	sentinel, err := pool.Get()
	if err != nil {
		return nil, fmt.Errorf("reserve sentinel: %w", err)
	}

	q := &Queue[T]{
		pool:     pool,
		less:     less,
		sentinel: sentinel,
		capacity: o.capacity,
	}
	s := q.entry(sentinel)
	s.prev, s.next = sentinel, sentinel
	return q, nil
}

// SetOnRemove registers fn to be called exactly once with every element that leaves the queue, whether evicted,
// popped, erased, or cleared. Passing nil removes the hook.
func (q *Queue[T]) SetOnRemove(fn func(T)) {
	q.onRemove = fn
}

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool {
	return q.length == 0
}

// Len returns the number of elements held.
func (q *Queue[T]) Len() int {
	return q.length
}

// Cap returns how many elements the queue retains at most.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// Front returns the smallest element.
func (q *Queue[T]) Front() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.entry(q.entry(q.sentinel).next).value, nil
}

// Back returns the largest element.
func (q *Queue[T]) Back() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.entry(q.entry(q.sentinel).prev).value, nil
}

// Push inserts a copy of v. If the queue then exceeds its capacity the smallest element is evicted, which is v
// itself when v is smaller than everything held by a full queue.
func (q *Queue[T]) Push(v T) error {
	if q.closed {
		return ErrClosed
	}

	// 'at' is the first element smaller than v, walking down from the largest
	at := q.entry(q.sentinel).prev
	for at != q.sentinel && !q.less(q.entry(at).value, v) {
		at = q.entry(at).prev
	}

	h, err := q.pool.Get()
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	q.entry(h).value = v

	q.linkAfter(at, h)
	return nil
}

// Emplace obtains a slot first and lets build construct the element directly in the queue's storage, then inserts it
// like Push does. build receives a zero T. If build or the comparator panics, the slot goes back to the pool and
// the panic continues.
func (q *Queue[T]) Emplace(build func(v *T)) error {
	if q.closed {
		return ErrClosed
	}

	h, err := q.pool.Get()
	if err != nil {
		return fmt.Errorf("emplace: %w", err)
	}
	n := q.entry(h)

	linked := false
	defer func() {
		if !linked {
			q.release(h)
		}
	}()
	build(&n.value)

	at := q.entry(q.sentinel).prev
	for at != q.sentinel && !q.less(q.entry(at).value, n.value) {
		at = q.entry(at).prev
	}

	linked = true
	q.linkAfter(at, h)
	return nil
}

// Pop removes the smallest element. It does nothing on an empty queue.
func (q *Queue[T]) Pop() {
	if q.length > 0 {
		q.remove(q.entry(q.sentinel).next)
	}
}

// Erase removes the element under it and returns an iterator to the element that followed it. The relative order
// of the remaining elements is unchanged.
func (q *Queue[T]) Erase(it Iterator[T]) (Iterator[T], error) {
	if it.q != q || !it.Valid() {
		return Iterator[T]{}, ErrInvalidIterator
	}

	next := q.entry(it.h).next
	q.remove(it.h)
	return q.iter(next), nil
}

// Clear removes every element, smallest first.
func (q *Queue[T]) Clear() {
	if q.closed {
		return
	}

	h := q.entry(q.sentinel).next
	for h != q.sentinel {
		next := q.entry(h).next
		q.remove(h)
		h = next
	}

	s := q.entry(q.sentinel)
	s.prev, s.next = q.sentinel, q.sentinel
	q.length = 0
}

// Close clears the queue and releases all of its pools. Push and Emplace report ErrClosed afterwards.
func (q *Queue[T]) Close() {
	if q.closed {
		return
	}
	q.Clear()
	q.pool.Close()
	q.closed = true
}

// Begin returns an iterator to the smallest element, or End() when the queue is empty.
func (q *Queue[T]) Begin() Iterator[T] {
	if q.closed {
		return Iterator[T]{q: q, h: q.sentinel}
	}
	return q.iter(q.entry(q.sentinel).next)
}

// End returns the past-the-last iterator. It is also the position before the first element.
func (q *Queue[T]) End() Iterator[T] {
	if q.closed {
		return Iterator[T]{q: q, h: q.sentinel}
	}
	return q.iter(q.sentinel)
}

// All yields the elements in ascending order. The queue must not be modified while ranging.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if q.length == 0 {
			return
		}
		for h := q.entry(q.sentinel).next; h != q.sentinel; h = q.entry(h).next {
			if !yield(q.entry(h).value) {
				return
			}
		}
	}
}

// Backward yields the elements in descending order. The queue must not be modified while ranging.
func (q *Queue[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if q.length == 0 {
			return
		}
		for h := q.entry(q.sentinel).prev; h != q.sentinel; h = q.entry(h).prev {
			if !yield(q.entry(h).value) {
				return
			}
		}
	}
}

// PoolStats reports the usage of the queue's allocator. The sentinel counts as one live slot.
func (q *Queue[T]) PoolStats() PoolStats {
	return q.pool.Stats()
}

// linkAfter splices h right after at and evicts the minimum if the queue overflowed.
func (q *Queue[T]) linkAfter(at, h Handle) {
	prev := q.entry(at)
	n := q.entry(h)

	q.entry(prev.next).prev = h
	n.next = prev.next
	n.prev = at
	prev.next = h
	q.length++

	// Over capacity: drop the head, possibly the element just linked
	if q.length > q.capacity {
		q.remove(q.entry(q.sentinel).next)
	}
}

// remove unlinks a live element and hands its slot back to the pool.
func (q *Queue[T]) remove(h Handle) {
	n := q.entry(h)
	q.entry(n.prev).next = n.next
	q.entry(n.next).prev = n.prev
	q.length--

	v := n.value
	q.release(h)

	if q.onRemove != nil {
		q.onRemove(v)
	}
}

// release hands a slot owned by the queue back to the pool. A refusal means the list points at a slot the pool
// doesn't consider handed out.
func (q *Queue[T]) release(h Handle) {
	if err := q.pool.Put(h); err != nil {
		panic(fmt.Errorf("ringq: list corrupted: %w", err))
	}
}

func (q *Queue[T]) entry(h Handle) *entry[T] {
	return &q.pool.at(h).value
}

func (q *Queue[T]) iter(h Handle) Iterator[T] {
	return Iterator[T]{q: q, h: h, gen: q.pool.at(h).gen}
}

// holds reports whether h still carries the element an iterator of generation gen pointed at.
func (q *Queue[T]) holds(h Handle, gen uint32) bool {
	return !q.closed && h != q.sentinel && q.pool.live(h) && q.pool.at(h).gen == gen
}

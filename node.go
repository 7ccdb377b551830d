package ringq

// Handle addresses one slot of a Pool. It stays stable for the whole lifetime of the pool.
type Handle uint32

// NilHandle is the null handle, returned alongside an error when no slot could be handed out.
const NilHandle = ^Handle(0)

// entry is the queue's node record. It does not know whether value holds a live element, the pool bitmap does.
type entry[T any] struct {
	value T
	prev  Handle
	next  Handle
}

// Iterator is a bidirectional cursor over the elements of a Queue, in ascending order. The zero Iterator belongs
// to no queue.
//
// An iterator is invalidated when the element it points at leaves the queue; iterators to other elements stay
// valid. The generation captured at creation lets the queue detect an invalidated iterator even after its slot
// got recycled for a newer element.
type Iterator[T any] struct {
	q   *Queue[T]
	h   Handle
	gen uint32
}

// Value returns the element under the cursor. It panics with ErrInvalidIterator when called on End() or on an
// invalidated iterator.
func (it Iterator[T]) Value() T {
	if !it.Valid() {
		panic(ErrInvalidIterator)
	}
	return it.q.entry(it.h).value
}

// Valid reports whether the iterator points at an element that is still in its queue.
func (it Iterator[T]) Valid() bool {
	return it.q != nil && it.q.holds(it.h, it.gen)
}

// Next moves to the following, larger element. Moving past the last element yields End(), and End().Next() is
// Begin().
func (it Iterator[T]) Next() Iterator[T] {
	it.mustLink()
	return it.q.iter(it.q.entry(it.h).next)
}

// Prev moves to the preceding, smaller element. End().Prev() is the last element.
func (it Iterator[T]) Prev() Iterator[T] {
	it.mustLink()
	return it.q.iter(it.q.entry(it.h).prev)
}

// Equal reports whether both iterators point at the same node of the same queue.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.q == other.q && it.h == other.h
}

// mustLink guards traversal: only the sentinel and live elements have meaningful links.
func (it Iterator[T]) mustLink() {
	if it.q == nil || it.q.closed {
		panic(ErrInvalidIterator)
	}
	if it.h != it.q.sentinel && !it.Valid() {
		panic(ErrInvalidIterator)
	}
}

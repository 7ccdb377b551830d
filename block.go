package ringq

// slot is one storage cell of a block. The owning block's bitmap is its tag: while the bit is clear only next is
// meaningful (free list link), while it is set only value is.
type slot[T any] struct {
	value T
	// next free slot, NilHandle at the free list tail
	next Handle
	// bumped every time the slot is vacated so stale handles can be told apart from recycled ones
	gen uint32
}

// block represents one bulk-allocated pool of fixed-size slots.
type block[T any] struct {
	slots     []slot[T]
	used      []uint64 // bitmap words: 1 means handed out
	freeCount uint64   // how many slots are still free
	size      uint64   // total slots
}

// newBlock obtains the backing memory for size slots in a single allocation.
func newBlock[T any](size uint64) *block[T] {
	words := int((size + 63) / 64)
	return &block[T]{
		slots:     make([]slot[T], size),
		used:      make([]uint64, words),
		freeCount: size,
		size:      size,
	}
}

// occupy sets the bit at idx, turning the slot into a live one
func (b *block[T]) occupy(idx uint64) error {
	if idx >= b.size {
		return ErrOutOfRange
	}

	wi := idx / 64
	bit := idx % 64

	if b.used[wi]&(1<<bit) != 0 {
		return ErrNotAllocated
	}

	b.used[wi] |= 1 << bit
	b.freeCount--
	return nil
}

// vacate clears the bit at idx and drops whatever value the slot held
func (b *block[T]) vacate(idx uint64) error {
	if idx >= b.size {
		return ErrOutOfRange
	}

	// Calculate the word index and bit position
	wi := idx / 64
	bit := idx % 64

	// Check if the slot is already free
	if b.used[wi]&(1<<bit) == 0 {
		return ErrNotAllocated
	}

	var zero T
	s := &b.slots[idx]
	s.value = zero
	s.gen++

	b.used[wi] &^= 1 << bit
	b.freeCount++
	return nil
}

// occupied reports whether the slot at idx is currently handed out
func (b *block[T]) occupied(idx uint64) bool {
	if idx >= b.size {
		return false
	}
	return b.used[idx/64]&(1<<(idx%64)) != 0
}

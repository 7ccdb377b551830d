package ringq

import (
	"fmt"
	"math/bits"
	"unsafe"
)

// Pool hands out and recycles fixed-size slots carved from a bounded number of bulk-allocated blocks. Slots are
// chained into a free list, so Get and Put never allocate except when a new block is created.
//
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	// bulk-allocated blocks, in creation order. Never released before Close
	blocks []*block[T]
	// number of slots per block
	slotsPerPool uint64
	// maximum number of blocks that can be created
	maxPools int

	// free list head (next slot handed out) and tail (last slot put back)
	head Handle
	tail Handle
	// number of slots currently chained in the free list
	free uint64

	// bytes reserved across all blocks
	reserved uint64
	// 0 means unlimited
	memoryLimit    uint64
	onAllocFailure func(error)

	closed bool
}

// PoolStats describes how much of a Pool is in use.
type PoolStats struct {
	Pools         int
	MaxPools      int
	SlotsPerPool  int
	Live          int
	Free          int
	ReservedBytes uint64
}

// NewPool constructs a Pool whose blocks hold slotsPerPool slots each, creating at most maxPools blocks.
//
//	slotsPerPool – slots obtained per bulk allocation (> 0)
//	maxPools     – hard limit on blocks; once reached and drained, Get reports ErrPoolExhausted
//
// The first block is allocated right away. Only WithMemoryLimit and WithAllocFailureHandler are relevant here.
func NewPool[T any](slotsPerPool, maxPools int, opts ...Option) (*Pool[T], error) {
	o := defaultOptions()
	o.apply(opts)
	return newPool[T](slotsPerPool, maxPools, o)
}

func newPool[T any](slotsPerPool, maxPools int, o options) (*Pool[T], error) {
	if slotsPerPool <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlotsPerPool, slotsPerPool)
	}
	if maxPools <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxPools, maxPools)
	}

	// Every handle, including NilHandle, must stay representable
	if uint64(slotsPerPool)*uint64(maxPools) >= uint64(NilHandle) {
		return nil, fmt.Errorf("%w: %d pools of %d slots overflow the handle space",
			ErrInvalidSlotsPerPool, maxPools, slotsPerPool)
	}

	p := &Pool[T]{
		blocks:         make([]*block[T], 0, maxPools),
		slotsPerPool:   uint64(slotsPerPool),
		maxPools:       maxPools,
		head:           NilHandle,
		tail:           NilHandle,
		memoryLimit:    o.memoryLimit,
		onAllocFailure: o.onAllocFailure,
	}
	if err := p.grow(); err != nil {
		return nil, err
	}
	return p, nil
}

// Get hands out one free slot. The slot's value is the zero T.
//
// When the slot handed out is the last one in the free list, a new block is created straight away so the caller
// never observes a stall while pools remain. Once every block is created and drained, Get returns ErrPoolExhausted.
func (p *Pool[T]) Get() (Handle, error) {
	if p.closed {
		return NilHandle, ErrClosed
	}

	// Free list ran dry: either the pool limit was hit, or the last greedy growth failed and is retried here
	if p.head == NilHandle {
		if err := p.grow(); err != nil {
			return NilHandle, err
		}
	}

	h := p.head
	if h == p.tail {
		p.head, p.tail = NilHandle, NilHandle
		// Exhaustion or allocation failure surfaces on the next Get, this slot is still good
		_ = p.grow()
	} else {
		p.head = p.at(h).next
	}

	blk, idx := p.locate(h)
	if err := blk.occupy(idx); err != nil {
		return NilHandle, fmt.Errorf("free list corrupted at handle %d: %w", h, err)
	}
	blk.slots[idx].next = NilHandle
	p.free--
	return h, nil
}

// Put returns a slot to the tail of the free list. Its value is dropped and the handle must not be used again
// until Get hands it out anew.
func (p *Pool[T]) Put(h Handle) error {
	if p.closed {
		return ErrClosed
	}

	blk, idx, err := p.lookup(h)
	if err != nil {
		return err
	}
	if errVacate := blk.vacate(idx); errVacate != nil {
		return fmt.Errorf("release handle %d: %w", h, errVacate)
	}

	blk.slots[idx].next = NilHandle
	if p.tail == NilHandle {
		p.head = h
	} else {
		p.at(p.tail).next = h
	}
	p.tail = h
	p.free++
	return nil
}

// Value returns a pointer to the storage of a handed out slot. The pointer stays valid until the slot is Put back.
func (p *Pool[T]) Value(h Handle) (*T, error) {
	if p.closed {
		return nil, ErrClosed
	}

	blk, idx, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	if !blk.occupied(idx) {
		return nil, fmt.Errorf("read handle %d: %w", h, ErrNotAllocated)
	}
	return &blk.slots[idx].value, nil
}

// Stats reports the current usage of the pool.
func (p *Pool[T]) Stats() PoolStats {
	var live uint64
	for _, blk := range p.blocks {
		live += blk.size - blk.freeCount
	}
	return PoolStats{
		Pools:         len(p.blocks),
		MaxPools:      p.maxPools,
		SlotsPerPool:  int(p.slotsPerPool),
		Live:          int(live),
		Free:          int(p.free),
		ReservedBytes: p.reserved,
	}
}

// Close releases every block at once. Handles and pointers obtained from the pool are invalid afterwards.
func (p *Pool[T]) Close() {
	p.blocks = nil
	p.head, p.tail = NilHandle, NilHandle
	p.free = 0
	p.reserved = 0
	p.closed = true
}

// grow creates one more block and appends all of its slots to the free list.
func (p *Pool[T]) grow() error {
	if len(p.blocks) >= p.maxPools {
		return fmt.Errorf("%w: %d pools of %d slots in use", ErrPoolExhausted, len(p.blocks), p.slotsPerPool)
	}

	blk, err := p.allocBlock()
	if err != nil {
		// The default handler never returns
		p.onAllocFailure(err)
		return err
	}

	base := Handle(uint64(len(p.blocks)) * p.slotsPerPool)
	p.blocks = append(p.blocks, blk)

	// Chain the fresh slots in address order
	for i := uint64(0); i < p.slotsPerPool; i++ {
		next := NilHandle
		if i+1 < p.slotsPerPool {
			next = base + Handle(i+1)
		}
		blk.slots[i].next = next
	}

	if p.tail == NilHandle {
		p.head = base
	} else {
		p.at(p.tail).next = base
	}
	p.tail = base + Handle(p.slotsPerPool-1)
	p.free += p.slotsPerPool
	return nil
}

// allocBlock obtains the backing memory of one block, turning every way that can fail into ErrPoolAlloc.
func (p *Pool[T]) allocBlock() (blk *block[T], err error) {
	var zero slot[T]
	hi, size := bits.Mul64(uint64(unsafe.Sizeof(zero)), p.slotsPerPool)
	if hi != 0 {
		return nil, fmt.Errorf("%w: block of %d slots overflows", ErrPoolAlloc, p.slotsPerPool)
	}
	if p.memoryLimit > 0 && p.reserved+size > p.memoryLimit {
		return nil, fmt.Errorf("%w: %d more bytes exceed the limit of %d (%d reserved)",
			ErrPoolAlloc, size, p.memoryLimit, p.reserved)
	}

	defer func() {
		if r := recover(); r != nil {
			blk = nil
			err = fmt.Errorf("%w: %v", ErrPoolAlloc, r)
		}
	}()

	blk = newBlock[T](p.slotsPerPool)
	p.reserved += size
	return blk, nil
}

// locate splits a handle known to be in range into its block and slot index.
func (p *Pool[T]) locate(h Handle) (*block[T], uint64) {
	return p.blocks[uint64(h)/p.slotsPerPool], uint64(h) % p.slotsPerPool
}

// lookup is locate with bounds checking.
func (p *Pool[T]) lookup(h Handle) (*block[T], uint64, error) {
	if h == NilHandle || uint64(h) >= uint64(len(p.blocks))*p.slotsPerPool {
		return nil, 0, fmt.Errorf("handle %d: %w", h, ErrOutOfRange)
	}
	blk, idx := p.locate(h)
	return blk, idx, nil
}

// at returns the slot behind a handle known to be in range.
func (p *Pool[T]) at(h Handle) *slot[T] {
	blk, idx := p.locate(h)
	return &blk.slots[idx]
}

// live reports whether h is in range and currently handed out.
func (p *Pool[T]) live(h Handle) bool {
	blk, idx, err := p.lookup(h)
	return err == nil && blk.occupied(idx)
}

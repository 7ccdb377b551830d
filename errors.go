package ringq

import "errors"

var (
	// ErrPoolExhausted indicates every slot of every pool is handed out and no more pools may be created
	ErrPoolExhausted = errors.New("pool exhausted")
	// ErrPoolAlloc indicates the backing memory of a new pool could not be obtained
	ErrPoolAlloc = errors.New("pool allocation failed")
	// ErrOutOfRange indicates the handle is outside the allocated pools
	ErrOutOfRange = errors.New("handle out of range")
	// ErrNotAllocated indicates an attempt to release or read a slot that isn't handed out
	ErrNotAllocated = errors.New("slot not allocated")
	// ErrClosed indicates the pool or queue was already torn down
	ErrClosed = errors.New("closed")

	// ErrInvalidSlotsPerPool indicates a pool would hold no slots
	ErrInvalidSlotsPerPool = errors.New("slots per pool must be positive")
	// ErrInvalidMaxPools indicates a pool limit below one
	ErrInvalidMaxPools = errors.New("max pools must be positive")
	// ErrInvalidCapacity indicates a queue capacity below one
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrEmpty indicates the queue holds no elements
	ErrEmpty = errors.New("queue is empty")
	// ErrInvalidIterator indicates the iterator points at the sentinel, another queue, or a removed element
	ErrInvalidIterator = errors.New("invalid iterator")
	// ErrInvalidSnapshot indicates a snapshot that cannot be restored
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

package ringq

import "github.com/tebeka/atexit"

const (
	// DefaultCapacity is the number of elements a Queue retains when WithCapacity is not given
	DefaultCapacity = 10
	// DefaultMaxPools is the number of pools an allocator may create before reporting exhaustion
	DefaultMaxPools = 10
	// queueSpareSlots covers the sentinel plus the element that is linked before the minimum gets evicted
	queueSpareSlots = 2
)

type options struct {
	capacity       int
	slotsPerPool   int
	maxPools       int
	memoryLimit    uint64
	onAllocFailure func(error)
}

// Option configures a Queue or a Pool. Sizing options (capacity, slots per pool, max pools) are only read by the
// Queue constructors, NewPool takes its sizing as arguments.
type Option func(*options)

func defaultOptions() options {
	return options{
		capacity:       DefaultCapacity,
		maxPools:       DefaultMaxPools,
		onAllocFailure: failFast,
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// failFast terminates the process once the backing memory of a pool cannot be obtained. Handlers registered with
// atexit still run before exiting.
func failFast(err error) {
	atexit.Fatalf("ringq: %v", err)
}

// WithCapacity sets how many of the largest elements a Queue retains.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithSlotsPerPool sets the number of slots obtained per bulk allocation. The Queue default is capacity+2, enough
// for the sentinel and the transient overflow element to fit in the first pool.
func WithSlotsPerPool(n int) Option {
	return func(o *options) {
		o.slotsPerPool = n
	}
}

// WithMaxPools bounds how many pools the allocator may create.
func WithMaxPools(n int) Option {
	return func(o *options) {
		o.maxPools = n
	}
}

// WithMemoryLimit caps the bytes reserved across all pools. A pool that would cross the limit counts as a failed
// allocation. Zero means no limit.
func WithMemoryLimit(bytes uint64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithAllocFailureHandler replaces the fail-fast policy applied when a pool cannot be allocated. If the handler
// returns, the failing call reports ErrPoolAlloc instead of terminating the process.
//
// The handler runs once per failed attempt. Handing out the last free slot also tries to grow, and the slot is
// returned even when that fails, so the handler fires there and again on the next Get, which retries the growth.
func WithAllocFailureHandler(fn func(error)) Option {
	return func(o *options) {
		if fn == nil {
			fn = failFast
		}
		o.onAllocFailure = fn
	}
}

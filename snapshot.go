package ringq

import "fmt"

// Snapshot captures the contents of a Queue for export/import (no serialization).
// Values holds the elements in ascending order.
type Snapshot[T any] struct {
	Capacity int // maximum number of elements retained
	Values   []T // queued elements, smallest first
}

// NewFromSnapshot constructs a Queue ordered by less holding the snapshot's elements. The snapshot's capacity
// overrides any WithCapacity option. Values must already be ascending under less, as Snapshot produces them;
// otherwise they are sorted on the way in.
func NewFromSnapshot[T any](s *Snapshot[T], less func(a, b T) bool, opts ...Option) (*Queue[T], error) {
	// Validate snapshot consistency
	if s == nil || s.Capacity <= 0 {
		return nil, fmt.Errorf("%w: incomplete configuration", ErrInvalidSnapshot)
	}
	if len(s.Values) > s.Capacity {
		return nil, fmt.Errorf("%w: %d values exceed capacity %d", ErrInvalidSnapshot, len(s.Values), s.Capacity)
	}

	opts = append(opts[:len(opts):len(opts)], WithCapacity(s.Capacity))
	q, err := NewFunc(less, opts...)
	if err != nil {
		return nil, err
	}

	// Ascending input hits the tail on the first comparison
	for _, v := range s.Values {
		if errPush := q.Push(v); errPush != nil {
			q.Close()
			return nil, fmt.Errorf("restore value: %w", errPush)
		}
	}

	return q, nil
}

// Snapshot creates a copy of the Queue's current contents. Elements are copied by value.
func (q *Queue[T]) Snapshot() *Snapshot[T] {
	values := make([]T, 0, q.length)
	for v := range q.All() {
		values = append(values, v)
	}

	return &Snapshot[T]{
		Capacity: q.capacity,
		Values:   values,
	}
}

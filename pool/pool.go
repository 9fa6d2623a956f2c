// Package pool provides a slot array with a free-list of reclaimed indices.
//
// Slots are addressed by index and never move: releasing a slot only marks it
// inactive, so iterating while releasing is safe. Growth appends new slots and
// may reallocate the backing array, so callers must not hold *T across Acquire.
package pool

import "errors"

// ErrExhausted is returned by Acquire when a bounded pool has no free slot.
var ErrExhausted = errors.New("pool: exhausted")

type slot[T any] struct {
	value  T
	active bool
}

// Pool holds values of T in stable slots.
type Pool[T any] struct {
	slots []slot[T]
	free  []int
	limit int // 0 = unbounded
	count int
}

// New creates a pool. limit caps the number of slots; 0 means unbounded.
// capacity pre-allocates the backing array.
func New[T any](capacity, limit int) *Pool[T] {
	if limit > 0 && capacity > limit {
		capacity = limit
	}
	return &Pool[T]{
		slots: make([]slot[T], 0, capacity),
		free:  make([]int, 0, capacity),
		limit: limit,
	}
}

// Acquire returns the index of a free slot, reusing the most recently released
// index before growing. The slot value is zeroed.
func (p *Pool[T]) Acquire() (int, error) {
	var idx int
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		if p.limit > 0 && len(p.slots) >= p.limit {
			return -1, ErrExhausted
		}
		p.slots = append(p.slots, slot[T]{})
		idx = len(p.slots) - 1
	}

	var zero T
	p.slots[idx] = slot[T]{value: zero, active: true}
	p.count++
	return idx, nil
}

// Release marks the slot inactive and pushes it onto the free-list.
// Releasing an inactive or out-of-range index is a no-op and returns false.
func (p *Pool[T]) Release(idx int) bool {
	if !p.Active(idx) {
		return false
	}
	p.slots[idx].active = false
	p.free = append(p.free, idx)
	p.count--
	return true
}

// Active reports whether idx is a live slot.
func (p *Pool[T]) Active(idx int) bool {
	return idx >= 0 && idx < len(p.slots) && p.slots[idx].active
}

// Get returns a pointer to the slot value, or nil if idx is not active.
// The pointer is valid until the next Acquire.
func (p *Pool[T]) Get(idx int) *T {
	if !p.Active(idx) {
		return nil
	}
	return &p.slots[idx].value
}

// ForEachActive calls fn for every active slot in index order.
// fn may Release any slot, including idx. fn must not Acquire from the same
// pool: growth can move the backing array out from under v.
func (p *Pool[T]) ForEachActive(fn func(idx int, v *T)) {
	n := len(p.slots)
	for i := 0; i < n; i++ {
		if !p.slots[i].active {
			continue
		}
		fn(i, &p.slots[i].value)
	}
}

// Range is ForEachActive with early exit: iteration stops when fn returns false.
func (p *Pool[T]) Range(fn func(idx int, v *T) bool) {
	n := len(p.slots)
	for i := 0; i < n; i++ {
		if !p.slots[i].active {
			continue
		}
		if !fn(i, &p.slots[i].value) {
			return
		}
	}
}

// Count returns the number of active slots.
func (p *Pool[T]) Count() int {
	return p.count
}

// Len returns the number of allocated slots, active or not.
func (p *Pool[T]) Len() int {
	return len(p.slots)
}

// Limit returns the slot cap (0 = unbounded).
func (p *Pool[T]) Limit() int {
	return p.limit
}

// FreeLen returns the number of indices waiting for reuse.
func (p *Pool[T]) FreeLen() int {
	return len(p.free)
}

// Reset deactivates every slot and clears the free-list. Allocated capacity is kept.
func (p *Pool[T]) Reset() {
	p.slots = p.slots[:0]
	p.free = p.free[:0]
	p.count = 0
}

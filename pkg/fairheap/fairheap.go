package fairheap

import "container/heap"

/*
FairHeap is a max-priority queue with a fair tie-break: every entry equal to
the current maximum lives in an unordered pool (eqBest), strictly lesser
entries live in a binary max-heap (allOthers). Pop and Peek choose uniformly
at random from the pool, so no best-valued entry is favoured by insertion or
memory order.
*/
type FairHeap[T any] struct {
	eqBest    []T
	allOthers maxHeap[T]
	rng       Rand
}

// Create a new, empty heap. 'cmp' defines the ordering of the entries
// (negative if a < b, 0 if equal, positive if a > b), 'rng' is used to pick
// among tied entries.
func New[T any](cmp func(a, b T) int, rng Rand) *FairHeap[T] {
	if rng == nil {
		rng = Shared()
	}
	return &FairHeap[T]{
		allOthers: maxHeap[T]{cmp: cmp},
		rng:       rng,
	}
}

func (h *FairHeap[T]) Push(item T) {
	if len(h.eqBest) == 0 {
		h.eqBest = append(h.eqBest, item)
		return
	}

	switch c := h.allOthers.cmp(item, h.eqBest[0]); {
	case c > 0:
		h.demote()
		h.eqBest = append(h.eqBest, item)
	case c == 0:
		h.eqBest = append(h.eqBest, item)
	default:
		heap.Push(&h.allOthers, item)
	}
}

// Remove and return one of the maximal entries, chosen uniformly at random.
// Returns false if the heap is empty.
func (h *FairHeap[T]) Pop() (T, bool) {
	var zero T
	if len(h.eqBest) == 0 {
		return zero, false
	}

	i := h.rng.IntN(len(h.eqBest))
	item := h.eqBest[i]
	last := len(h.eqBest) - 1
	h.eqBest[i] = h.eqBest[last]
	h.eqBest[last] = zero
	h.eqBest = h.eqBest[:last]

	if len(h.eqBest) == 0 {
		h.promote()
	}
	return item, true
}

// Same selection as Pop, without removing the entry
func (h *FairHeap[T]) Peek() (T, bool) {
	if len(h.eqBest) == 0 {
		var zero T
		return zero, false
	}
	return h.eqBest[h.rng.IntN(len(h.eqBest))], true
}

func (h *FairHeap[T]) Len() int {
	return len(h.eqBest) + h.allOthers.Len()
}

// The pool is refilled on every pop, so it is empty only if the whole heap is
func (h *FairHeap[T]) IsEmpty() bool {
	return len(h.eqBest) == 0
}

// Drain the heap into a slice in non-increasing order: the tied maximum
// entries first (in pool order), then the rest heap-sorted. The heap is empty
// afterwards, use Clone first to keep it.
func (h *FairHeap[T]) IntoSorted() []T {
	result := make([]T, 0, h.Len())
	result = append(result, h.eqBest...)
	for h.allOthers.Len() > 0 {
		result = append(result, heap.Pop(&h.allOthers).(T))
	}
	h.eqBest = nil
	return result
}

// Copy of the heap, sharing the random source
func (h *FairHeap[T]) Clone() *FairHeap[T] {
	return &FairHeap[T]{
		eqBest: append([]T(nil), h.eqBest...),
		allOthers: maxHeap[T]{
			items: append([]T(nil), h.allOthers.items...),
			cmp:   h.allOthers.cmp,
		},
		rng: h.rng,
	}
}

// Move the whole pool into the ordered heap
func (h *FairHeap[T]) demote() {
	for _, item := range h.eqBest {
		heap.Push(&h.allOthers, item)
	}
	clear(h.eqBest)
	h.eqBest = h.eqBest[:0]
}

// Refill the pool with the next equivalence class of the ordered heap
func (h *FairHeap[T]) promote() {
	if h.allOthers.Len() == 0 {
		return
	}

	first := heap.Pop(&h.allOthers).(T)
	h.eqBest = append(h.eqBest, first)
	for h.allOthers.Len() > 0 && h.allOthers.cmp(h.allOthers.items[0], first) == 0 {
		h.eqBest = append(h.eqBest, heap.Pop(&h.allOthers).(T))
	}
}

// container/heap adapter, ordered as a max-heap by 'cmp'
type maxHeap[T any] struct {
	items []T
	cmp   func(a, b T) int
}

func (m maxHeap[T]) Len() int           { return len(m.items) }
func (m maxHeap[T]) Less(i, j int) bool { return m.cmp(m.items[i], m.items[j]) > 0 }
func (m maxHeap[T]) Swap(i, j int)      { m.items[i], m.items[j] = m.items[j], m.items[i] }

func (m *maxHeap[T]) Push(x any) {
	m.items = append(m.items, x.(T))
}

func (m *maxHeap[T]) Pop() any {
	var zero T
	n := len(m.items) - 1
	item := m.items[n]
	m.items[n] = zero
	m.items = m.items[:n]
	return item
}

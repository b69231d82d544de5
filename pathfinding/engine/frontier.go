package engine

// frontierEntry is one pending node. seq orders entries that share a priority.
type frontierEntry[N any] struct {
	item     N
	priority float64
	seq      uint64
}

// Frontier is a min-priority multiset of pending nodes.
//
// The same item may be inserted any number of times; older entries simply
// become stale. Entries with equal priority are extracted in insertion order.
type Frontier[N any] struct {
	entries []frontierEntry[N]
	nextSeq uint64
}

// NewFrontier creates an empty frontier
func NewFrontier[N any]() *Frontier[N] {
	return &Frontier[N]{}
}

// Len returns the number of entries, stale ones included
func (f *Frontier[N]) Len() int {
	return len(f.entries)
}

// Reset drops every entry and restarts the insertion counter
func (f *Frontier[N]) Reset() {
	clear(f.entries)
	f.entries = f.entries[:0]
	f.nextSeq = 0
}

// Insert adds item with the given priority
func (f *Frontier[N]) Insert(item N, priority float64) {
	f.entries = append(f.entries, frontierEntry[N]{item: item, priority: priority, seq: f.nextSeq})
	f.nextSeq++
	f.siftUp(len(f.entries) - 1)
}

// ExtractMin removes and returns the entry with the lowest priority.
// It returns ErrEmptyFrontier when there is nothing to extract.
func (f *Frontier[N]) ExtractMin() (N, float64, error) {
	n := len(f.entries)
	if n == 0 {
		var zero N
		return zero, 0, ErrEmptyFrontier
	}

	root := f.entries[0]
	last := n - 1
	f.entries[0] = f.entries[last]
	f.entries[last] = frontierEntry[N]{}
	f.entries = f.entries[:last]
	if last > 0 {
		f.siftDown(0)
	}
	return root.item, root.priority, nil
}

func (f *Frontier[N]) less(i, j int) bool {
	a, b := f.entries[i], f.entries[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (f *Frontier[N]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !f.less(i, parent) {
			return
		}
		f.entries[i], f.entries[parent] = f.entries[parent], f.entries[i]
		i = parent
	}
}

func (f *Frontier[N]) siftDown(i int) {
	n := len(f.entries)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		best := left
		if right := left + 1; right < n && f.less(right, left) {
			best = right
		}
		if !f.less(best, i) {
			return
		}
		f.entries[i], f.entries[best] = f.entries[best], f.entries[i]
		i = best
	}
}

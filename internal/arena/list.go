package arena

// List is an ordered sequence of arena IDs, used for a node's children and
// a workspace's floating list. It supports O(1) append, O(n) index-based
// insert/remove, stable sort by comparator, and linear predicate search —
// the operations spec.md's "ordered-sequence helper" requires.
//
// The tiling order in List is also the arrangement order and the tab
// order, so callers must not reorder it except through an explicit
// operation (e.g. a "move left/right" command).
type List struct {
	items []ID
}

// Len reports the number of elements.
func (l *List) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List) At(i int) ID { return l.items[i] }

// Slice returns the underlying elements. Callers must not mutate the
// returned slice.
func (l *List) Slice() []ID { return l.items }

// Append adds id to the end of the list.
func (l *List) Append(id ID) {
	l.items = append(l.items, id)
}

// InsertAt inserts id at index i, shifting later elements right. i may
// equal Len() to append.
func (l *List) InsertAt(i int, id ID) {
	l.items = append(l.items, invalidID)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = id
}

// RemoveAt deletes the element at index i, shifting later elements left.
func (l *List) RemoveAt(i int) {
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = invalidID
	l.items = l.items[:len(l.items)-1]
}

// IndexOf returns the index of id, or -1 if absent.
func (l *List) IndexOf(id ID) int {
	for i, v := range l.items {
		if v == id {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of id, reporting whether it was
// found.
func (l *List) Remove(id ID) bool {
	i := l.IndexOf(id)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// Find returns the first element for which pred returns true, and true if
// one was found.
func (l *List) Find(pred func(ID) bool) (ID, bool) {
	for _, v := range l.items {
		if pred(v) {
			return v, true
		}
	}
	return invalidID, false
}

// Swap exchanges the elements at indices i and j, used by commands that
// reorder tiling siblings in place (e.g. "move left/right").
func (l *List) Swap(i, j int) {
	l.items[i], l.items[j] = l.items[j], l.items[i]
}

// SortStable reorders the list using less as the stable-sort comparator.
func (l *List) SortStable(less func(a, b ID) bool) {
	// insertion sort: lists here are small (sibling counts rarely exceed a
	// few dozen), and stability matters more than asymptotic complexity.
	for i := 1; i < len(l.items); i++ {
		for j := i; j > 0 && less(l.items[j], l.items[j-1]); j-- {
			l.items[j], l.items[j-1] = l.items[j-1], l.items[j]
		}
	}
}

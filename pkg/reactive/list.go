package reactive

// ConstantList is a fixed sequence. Registration is accepted and ignored.
type ConstantList[T any] struct {
	items []T
}

// NewConstantList copies items into a constant list.
func NewConstantList[T any](items ...T) *ConstantList[T] {
	return &ConstantList[T]{items: append([]T(nil), items...)}
}

// Get returns the item at index i. It panics if i is out of range.
func (l *ConstantList[T]) Get(i int) T {
	return l.items[i]
}

// Len returns the number of items.
func (l *ConstantList[T]) Len() int {
	return len(l.items)
}

// AddObserver is a no-op.
func (l *ConstantList[T]) AddObserver(ListObserver) {}

// DeleteObserver is a no-op.
func (l *ConstantList[T]) DeleteObserver(ListObserver) {}

// ReactiveList is a mutable sequence. Splice is its only mutation primitive;
// Push, Pop, Shift and Unshift are expressed through it, so every change
// reaches observers through a single notification path.
type ReactiveList[T any] struct {
	id        uint64
	items     []T
	observers registry[ListObserver]
	cascade   cascade
}

// NewList creates a mutable list holding a copy of items.
func NewList[T any](items ...T) *ReactiveList[T] {
	return &ReactiveList[T]{
		id:    nextID(),
		items: append([]T(nil), items...),
	}
}

// Get returns the item at index i. It panics if i is out of range.
func (l *ReactiveList[T]) Get(i int) T {
	return l.items[i]
}

// Len returns the number of items.
func (l *ReactiveList[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the current items.
func (l *ReactiveList[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// ID returns the unique identifier of this list.
func (l *ReactiveList[T]) ID() uint64 {
	return l.id
}

// Splice removes deleteCount items at start, inserts items at start and
// notifies observers with the normalized patch. Arguments follow array splice
// conventions: a negative start counts back from the end, start is clamped to
// [0, Len()], and deleteCount is clamped to the items actually available.
// The notification reports the clamped start and the number of items really
// removed. Splice returns the removed items.
func (l *ReactiveList[T]) Splice(start, deleteCount int, items ...T) []T {
	n := len(l.items)
	if start < 0 {
		start = max(n+start, 0)
	} else if start > n {
		start = n
	}
	deleteCount = min(max(deleteCount, 0), n-start)

	removed := make([]T, deleteCount)
	copy(removed, l.items[start:start+deleteCount])

	next := make([]T, 0, n-deleteCount+len(items))
	next = append(next, l.items[:start]...)
	next = append(next, items...)
	next = append(next, l.items[start+deleteCount:]...)
	l.items = next

	l.notify(start, deleteCount, len(items))
	return removed
}

// Push appends items. Equivalent to Splice(Len(), 0, items...).
func (l *ReactiveList[T]) Push(items ...T) {
	l.Splice(l.Len(), 0, items...)
}

// Unshift prepends items. Equivalent to Splice(0, 0, items...).
func (l *ReactiveList[T]) Unshift(items ...T) {
	l.Splice(0, 0, items...)
}

// Pop removes the last item. Equivalent to Splice(Len()-1, 1).
// The boolean is false when the list was empty.
func (l *ReactiveList[T]) Pop() (T, bool) {
	return first(l.Splice(l.Len()-1, 1))
}

// Shift removes the first item. Equivalent to Splice(0, 1).
// The boolean is false when the list was empty.
func (l *ReactiveList[T]) Shift() (T, bool) {
	return first(l.Splice(0, 1))
}

// AddObserver registers o. Registering the same observer again has no effect.
func (l *ReactiveList[T]) AddObserver(o ListObserver) {
	l.observers.add(o)
}

// DeleteObserver deregisters o. Unknown observers are ignored.
func (l *ReactiveList[T]) DeleteObserver(o ListObserver) {
	l.observers.remove(o)
}

// ObserverCount returns the number of registered observers.
func (l *ReactiveList[T]) ObserverCount() int {
	return l.observers.len()
}

func (l *ReactiveList[T]) notify(start, deleteCount, insertedCount int) {
	subs := l.observers.snapshot()
	if len(subs) == 0 {
		return
	}

	l.cascade.enter(l.id)
	defer l.cascade.leave()

	for _, o := range subs {
		o.UpdateRange(start, deleteCount, insertedCount)
	}
}

func first[T any](items []T) (T, bool) {
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[0], true
}

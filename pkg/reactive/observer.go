package reactive

// Observer is notified when an observable it subscribed to changes.
// The notification carries no value; the observer calls Get to re-pull.
type Observer interface {
	Update()
}

// ListObserver is notified when a list changes, with a range patch
// descriptor: deleteCount items were removed at start and insertedCount
// items now occupy their place.
type ListObserver interface {
	UpdateRange(start, deleteCount, insertedCount int)
}

// Subscribable is the registration half of an observable.
type Subscribable interface {
	AddObserver(o Observer)
	DeleteObserver(o Observer)
}

// Observable is a value that can be read and observed.
type Observable[T any] interface {
	Subscribable
	Get() T
}

// Untyped is satisfied by every scalar observable in this package,
// whatever its value type. It lets callers observe values they only need
// to format.
type Untyped interface {
	Subscribable
	untyped() any
}

// ObservableList is an indexed sequence that can be observed.
type ObservableList[T any] interface {
	Get(i int) T
	Len() int
	AddObserver(o ListObserver)
	DeleteObserver(o ListObserver)
}

// ObserverFunc adapts a function to Observer. Use NewObserver to obtain a
// handle with stable identity; functions themselves are not comparable.
type ObserverFunc struct {
	fn func()
}

// NewObserver returns an observer that calls fn on every notification.
func NewObserver(fn func()) *ObserverFunc {
	return &ObserverFunc{fn: fn}
}

// Update calls the wrapped function.
func (o *ObserverFunc) Update() {
	if o.fn != nil {
		o.fn()
	}
}

// ListObserverFunc adapts a function to ListObserver.
type ListObserverFunc struct {
	fn func(start, deleteCount, insertedCount int)
}

// NewListObserver returns a list observer that calls fn on every patch.
func NewListObserver(fn func(start, deleteCount, insertedCount int)) *ListObserverFunc {
	return &ListObserverFunc{fn: fn}
}

// UpdateRange calls the wrapped function.
func (o *ListObserverFunc) UpdateRange(start, deleteCount, insertedCount int) {
	if o.fn != nil {
		o.fn(start, deleteCount, insertedCount)
	}
}

// registry is an insertion-ordered observer collection owned by exactly one
// observable. Membership is by observer identity, so observers must have a
// comparable dynamic type (pointers in practice). Slots are index-stable:
// removal vacates a slot and compaction happens once half the slots are free.
type registry[O comparable] struct {
	slots []O
	index map[O]int
	free  int
}

// add registers o. Adding an observer twice has no further effect.
func (r *registry[O]) add(o O) {
	var zero O
	if o == zero {
		return
	}
	if r.index == nil {
		r.index = make(map[O]int)
	}
	if _, ok := r.index[o]; ok {
		return
	}
	r.index[o] = len(r.slots)
	r.slots = append(r.slots, o)
}

// remove deregisters o. Removing an unknown observer is a no-op.
func (r *registry[O]) remove(o O) {
	i, ok := r.index[o]
	if !ok {
		return
	}
	delete(r.index, o)

	var zero O
	r.slots[i] = zero
	r.free++

	if r.free > len(r.slots)/2 {
		r.compact()
	}
}

// compact drops vacated slots and rebuilds the index.
func (r *registry[O]) compact() {
	var zero O
	kept := r.slots[:0]
	for _, o := range r.slots {
		if o != zero {
			r.index[o] = len(kept)
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(r.slots); i++ {
		r.slots[i] = zero
	}
	r.slots = kept
	r.free = 0
}

// snapshot returns the registered observers in insertion order.
// Notification iterates the snapshot, so observers added or removed during a
// cascade only take effect for the next notification.
func (r *registry[O]) snapshot() []O {
	n := len(r.slots) - r.free
	if n == 0 {
		return nil
	}
	var zero O
	out := make([]O, 0, n)
	for _, o := range r.slots {
		if o != zero {
			out = append(out, o)
		}
	}
	return out
}

// len returns the number of registered observers.
func (r *registry[O]) len() int {
	return len(r.slots) - r.free
}

// contains reports whether o is registered.
func (r *registry[O]) contains(o O) bool {
	_, ok := r.index[o]
	return ok
}

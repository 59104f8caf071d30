package reactive

import "reflect"

// Reactive is a mutable scalar observable.
//
// Set is equality gated: writing a value equal to the current one has no
// effect at all. Otherwise the value is replaced and every observer
// registered at that moment is notified once, synchronously, in
// registration order.
type Reactive[T any] struct {
	id        uint64
	value     T
	observers registry[Observer]
	cascade   cascade

	// equal decides whether a write changes the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool
}

// New creates a mutable scalar holding initial.
func New[T any](initial T) *Reactive[T] {
	return &Reactive[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value. It has no side effects.
func (r *Reactive[T]) Get() T {
	return r.value
}

func (r *Reactive[T]) untyped() any { return r.value }

// Set stores value and notifies observers if it differs from the current value.
func (r *Reactive[T]) Set(value T) {
	if r.equals(r.value, value) {
		return
	}
	r.value = value
	r.notify()
}

// Update replaces the value with fn(current), subject to the same equality gate as Set.
func (r *Reactive[T]) Update(fn func(T) T) {
	r.Set(fn(r.value))
}

// WithEquals configures the equality used by Set. Use it to normalize
// distinct representations of one logical value, for example "1.0" and "1".
func (r *Reactive[T]) WithEquals(fn func(T, T) bool) *Reactive[T] {
	r.equal = fn
	return r
}

// AddObserver registers o. Registering the same observer again has no effect.
func (r *Reactive[T]) AddObserver(o Observer) {
	r.observers.add(o)
}

// DeleteObserver deregisters o. Unknown observers are ignored.
func (r *Reactive[T]) DeleteObserver(o Observer) {
	r.observers.remove(o)
}

// ObserverCount returns the number of registered observers.
func (r *Reactive[T]) ObserverCount() int {
	return r.observers.len()
}

// HasObserver reports whether o is registered.
func (r *Reactive[T]) HasObserver(o Observer) bool {
	return r.observers.contains(o)
}

// ID returns the unique identifier of this observable.
func (r *Reactive[T]) ID() uint64 {
	return r.id
}

func (r *Reactive[T]) notify() {
	subs := r.observers.snapshot()
	if len(subs) == 0 {
		return
	}

	r.cascade.enter(r.id)
	defer r.cascade.leave()

	for _, o := range subs {
		o.Update()
	}
}

func (r *Reactive[T]) equals(a, b T) bool {
	if r.equal != nil {
		return r.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case string:
		return sameAs(av, any(b))
	case bool:
		return sameAs(av, any(b))
	case int:
		return sameAs(av, any(b))
	case int8:
		return sameAs(av, any(b))
	case int16:
		return sameAs(av, any(b))
	case int32:
		return sameAs(av, any(b))
	case int64:
		return sameAs(av, any(b))
	case uint:
		return sameAs(av, any(b))
	case uint8:
		return sameAs(av, any(b))
	case uint16:
		return sameAs(av, any(b))
	case uint32:
		return sameAs(av, any(b))
	case uint64:
		return sameAs(av, any(b))
	case float32:
		return sameAs(av, any(b))
	case float64:
		return sameAs(av, any(b))
	default:
		return reflect.DeepEqual(a, b)
	}
}

func sameAs[C comparable](a C, b any) bool {
	bv, ok := b.(C)
	return ok && a == bv
}

package reactive

import "fmt"

// Derived is an observable computed from other observables on every Get.
// It stores nothing and owns no observers: AddObserver and DeleteObserver
// forward to every source, so an observer of a derived value is notified
// once per source that changes.
type Derived[T any] struct {
	sources []Subscribable
	compute func() T
}

// Get recomputes the value from the current source values.
func (d *Derived[T]) Get() T {
	return d.compute()
}

func (d *Derived[T]) untyped() any { return d.compute() }

// Format derives the fmt.Sprint text of o. It observes the same sources
// as o; a constant stays constant.
func Format(o Untyped) Observable[string] {
	if IsConstant(o) {
		return NewConstant(fmt.Sprint(o.untyped()))
	}
	return &Derived[string]{
		sources: []Subscribable{o},
		compute: func() string { return fmt.Sprint(o.untyped()) },
	}
}

// AddObserver registers o on every source.
func (d *Derived[T]) AddObserver(o Observer) {
	for _, s := range d.sources {
		s.AddObserver(o)
	}
}

// DeleteObserver deregisters o from every source.
func (d *Derived[T]) DeleteObserver(o Observer) {
	for _, s := range d.sources {
		s.DeleteObserver(o)
	}
}

// Sources returns the observables this value is derived from, in order.
func (d *Derived[T]) Sources() []Subscribable {
	out := make([]Subscribable, len(d.sources))
	copy(out, d.sources)
	return out
}

// Map derives a value from a single source.
func Map[A, R any](a Observable[A], fn func(A) R) *Derived[R] {
	return &Derived[R]{
		sources: []Subscribable{a},
		compute: func() R { return fn(a.Get()) },
	}
}

// Map2 derives a value from two sources, read in order.
func Map2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) *Derived[R] {
	return &Derived[R]{
		sources: []Subscribable{a, b},
		compute: func() R {
			av := a.Get()
			return fn(av, b.Get())
		},
	}
}

// Map3 derives a value from three sources, read in order.
func Map3[A, B, C, R any](a Observable[A], b Observable[B], c Observable[C], fn func(A, B, C) R) *Derived[R] {
	return &Derived[R]{
		sources: []Subscribable{a, b, c},
		compute: func() R {
			av := a.Get()
			bv := b.Get()
			return fn(av, bv, c.Get())
		},
	}
}

// MapN derives a value from any number of sources of one type. fn receives
// the source values positionally, in source order.
func MapN[T, R any](sources []Observable[T], fn func(...T) R) *Derived[R] {
	srcs := make([]Observable[T], len(sources))
	copy(srcs, sources)

	subs := make([]Subscribable, len(srcs))
	for i, s := range srcs {
		subs[i] = s
	}

	return &Derived[R]{
		sources: subs,
		compute: func() R {
			values := make([]T, len(srcs))
			for i, s := range srcs {
				values[i] = s.Get()
			}
			return fn(values...)
		},
	}
}

package reactive

// Constant is an observable that never changes. Registration is accepted and
// ignored since a constant never notifies.
type Constant[T any] struct {
	value T
}

// NewConstant wraps value.
func NewConstant[T any](value T) *Constant[T] {
	return &Constant[T]{value: value}
}

// Get returns the wrapped value.
func (c *Constant[T]) Get() T {
	return c.value
}

// AddObserver is a no-op.
func (c *Constant[T]) AddObserver(Observer) {}

// DeleteObserver is a no-op.
func (c *Constant[T]) DeleteObserver(Observer) {}

// IsConstant reports whether o is known never to notify.
func IsConstant(o Subscribable) bool {
	_, ok := o.(interface{ constant() })
	return ok
}

func (c *Constant[T]) constant() {}

func (c *Constant[T]) untyped() any { return c.value }

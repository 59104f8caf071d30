package reactive

import "sync/atomic"

// maxCascadeDepth bounds how many times one observable may be re-entered by
// notifications it started itself. Zero means unlimited.
var maxCascadeDepth atomic.Int64

// SetMaxCascadeDepth sets the reentry limit for notification cascades and
// returns the previous value. With the default of 0 a cyclic dependency
// graph recurses until the goroutine stack is exhausted. With n > 0, a
// Set or Splice that would re-enter the same observable's notification more
// than n levels deep panics with a *CascadeError instead.
func SetMaxCascadeDepth(n int) int {
	if n < 0 {
		n = 0
	}
	return int(maxCascadeDepth.Swap(int64(n)))
}

// MaxCascadeDepth returns the current reentry limit.
func MaxCascadeDepth() int {
	return int(maxCascadeDepth.Load())
}

// cascade tracks how deeply one observable's notification is nested.
type cascade struct {
	depth int
}

// enter records a nested notification and panics when over the limit.
func (c *cascade) enter(id uint64) {
	c.depth++
	if limit := int(maxCascadeDepth.Load()); limit > 0 && c.depth > limit {
		depth := c.depth
		c.depth--
		panic(&CascadeError{ID: id, Depth: depth})
	}
}

func (c *cascade) leave() {
	if c.depth > 0 {
		c.depth--
	}
}

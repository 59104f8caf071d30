package reactive

import (
	"errors"
	"fmt"
)

// ErrCascadeTooDeep is matched by the panic value raised when an observable
// is re-entered by its own notification cascade more often than allowed.
// See SetMaxCascadeDepth.
var ErrCascadeTooDeep = errors.New("axon: notification cascade too deep")

// CascadeError describes a cascade that exceeded the configured depth.
type CascadeError struct {
	// ID identifies the observable whose notification was re-entered.
	ID uint64

	// Depth is the reentry depth that tripped the limit.
	Depth int
}

// Error implements the error interface.
func (e *CascadeError) Error() string {
	return fmt.Sprintf("axon: observable %d re-entered %d times during one cascade", e.ID, e.Depth)
}

// Is reports whether target is ErrCascadeTooDeep.
func (e *CascadeError) Is(target error) bool {
	return target == ErrCascadeTooDeep
}

package server

import (
	"errors"
	"fmt"

	axerrors "github.com/vango-dev/axon/internal/errors"
	"github.com/vango-dev/axon/pkg/protocol"
	"github.com/vango-dev/axon/pkg/reactive"
)

var (
	// ErrSessionClosed is returned when operating on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrEventQueueFull is returned when a session cannot accept more events.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrUnknownNode is returned for events addressed to a node the
	// session's document does not contain.
	ErrUnknownNode = errors.New("server: unknown node")
)

// HandlerError reports a panic raised while a session handled an event
// or a dispatched function.
type HandlerError struct {
	SessionID string
	NodeID    uint64
	EventType string
	Panic     any
	Stack     []byte
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	if e.EventType == "" {
		return fmt.Sprintf("server: session %s: panic: %v", e.SessionID, e.Panic)
	}
	return fmt.Sprintf("server: session %s: %s on node %d: panic: %v",
		e.SessionID, e.EventType, e.NodeID, e.Panic)
}

// Unwrap returns the panic value when it is an error, so callers can match
// e.g. reactive.ErrCascadeTooDeep with errors.Is.
func (e *HandlerError) Unwrap() error {
	err, _ := e.Panic.(error)
	return err
}

// classify maps an event error to its registered error and the code sent
// to the client. Errors without a registered code are server errors.
func classify(err error) (*axerrors.AxonError, protocol.ErrorCode) {
	var he *HandlerError
	switch {
	case errors.Is(err, reactive.ErrCascadeTooDeep):
		return axerrors.New("E001").Wrap(err), protocol.ErrCascadeTooDeep
	case errors.As(err, &he):
		return axerrors.New("E002").Wrap(err), protocol.ErrHandlerPanic
	case errors.Is(err, ErrUnknownNode):
		return axerrors.New("E062").Wrap(err), protocol.ErrUnknownNode
	default:
		return axerrors.Newf(axerrors.CategoryRuntime, "Event failed").Wrap(err), protocol.ErrServerError
	}
}

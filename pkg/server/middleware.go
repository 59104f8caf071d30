package server

import (
	"context"

	"github.com/vango-dev/axon/pkg/protocol"
)

// EventContext carries one client event through the middleware chain.
type EventContext struct {
	ctx     context.Context
	Session *Session
	Event   *protocol.Event
}

// NewEventContext creates an EventContext. The server builds these itself;
// it is exported for testing middleware.
func NewEventContext(ctx context.Context, s *Session, ev *protocol.Event) *EventContext {
	return &EventContext{ctx: ctx, Session: s, Event: ev}
}

// PendingPatches returns the number of patches the event has produced so
// far. It is zero without a session.
func (c *EventContext) PendingPatches() int {
	if c.Session == nil {
		return 0
	}
	return c.Session.doc.Pending()
}

// Context returns the context for the event. It is cancelled when the
// session closes.
func (c *EventContext) Context() context.Context {
	return c.ctx
}

// SetContext replaces the context seen by later middleware.
func (c *EventContext) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// Middleware wraps the handling of client events. Handle must call next
// to continue the chain and return its error, or return early to drop the
// event.
type Middleware interface {
	Handle(c *EventContext, next func() error) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(c *EventContext, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(c *EventContext, next func() error) error {
	return f(c, next)
}

// chain composes mws around final. The first middleware runs outermost.
func chain(mws []Middleware, final func(*EventContext) error) func(*EventContext) error {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], h
		h = func(c *EventContext) error {
			return mw.Handle(c, func() error { return next(c) })
		}
	}
	return h
}

// Hooks observe the session lifecycle. Nil fields are skipped.
type Hooks struct {
	// OnSessionStart runs once the session's view is mounted.
	OnSessionStart func(s *Session)

	// OnSessionClose runs once when a started session closes.
	OnSessionClose func(s *Session)

	// OnPatches runs after each flush with the number of patches sent.
	OnPatches func(s *Session, count int)
}

type hookList []Hooks

func (hs hookList) sessionStart(s *Session) {
	for _, h := range hs {
		if h.OnSessionStart != nil {
			h.OnSessionStart(s)
		}
	}
}

func (hs hookList) sessionClose(s *Session) {
	for _, h := range hs {
		if h.OnSessionClose != nil {
			h.OnSessionClose(s)
		}
	}
}

func (hs hookList) patches(s *Session, n int) {
	for _, h := range hs {
		if h.OnPatches != nil {
			h.OnPatches(s, n)
		}
	}
}

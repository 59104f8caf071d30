package server

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	axerrors "github.com/vango-dev/axon/internal/errors"
	"github.com/vango-dev/axon/pkg/bind"
	"github.com/vango-dev/axon/pkg/protocol"
)

// App builds a fresh view for a session. It is called on the session's
// event loop, so the observables it creates belong to that session.
type App func() bind.NodeProducer

// Session is one connected client with its own view and observables.
type Session struct {
	// ID is a unique, time-ordered session identifier.
	ID string

	conn   *websocket.Conn
	doc    *RemoteDocument
	root   *bind.Root
	app    App
	config *SessionConfig
	logger *slog.Logger
	hooks  hookList

	handle func(*EventContext) error

	ctx        context.Context
	cancel     context.CancelFunc
	events     chan *protocol.Event
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	onClose    func(*Session)

	// lifecycle pairs the start and close hooks.
	lifecycle sync.Mutex
	started   bool

	// mu serializes writes to conn.
	mu sync.Mutex

	// sendSeq is only touched on the event loop.
	sendSeq uint64

	createdAt  time.Time
	lastActive atomic.Int64
	eventCount atomic.Uint64
	patchCount atomic.Uint64
	bytesSent  atomic.Uint64
	bytesRecv  atomic.Uint64
}

// SessionStats is a snapshot of session counters.
type SessionStats struct {
	ID         string
	CreatedAt  time.Time
	LastActive time.Time
	Events     uint64
	Patches    uint64
	BytesSent  uint64
	BytesRecv  uint64
}

// generateSessionID returns a new ULID string.
func generateSessionID() string {
	return ulid.Make().String()
}

// newSession creates a session. conn may be nil, in which case frames are
// dropped; the loops other than EventLoop must not be started then.
func newSession(conn *websocket.Conn, app App, config *SessionConfig, mws []Middleware, hooks hookList, logger *slog.Logger) *Session {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := generateSessionID()
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()

	s := &Session{
		ID:         id,
		conn:       conn,
		doc:        NewRemoteDocument(),
		app:        app,
		config:     config,
		logger:     logger.With("session_id", id),
		hooks:      hooks,
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan *protocol.Event, config.MaxEventQueue),
		dispatchCh: make(chan func(), config.MaxEventQueue),
		done:       make(chan struct{}),
		createdAt:  now,
	}
	s.lastActive.Store(now.UnixNano())
	s.handle = chain(mws, s.processEvent)
	return s
}

// Start starts all session loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// ReadLoop reads frames from the client until the connection fails.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		s.touch()
		s.bytesRecv.Add(uint64(len(msg)))

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			ae := axerrors.New("E061").Wrap(err)
			s.logger.Error("frame decode error", "code", ae.Code, "error", err)
			s.sendError(protocol.ErrInvalidFrame, ae.FormatCompact())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
			s.sendError(protocol.ErrInvalidFrame, axerrors.New("E061").FormatCompact())
		}
	}
}

// handleEventFrame decodes and queues an event from the client.
func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		ae := axerrors.New("E061").WithDetail("Malformed event payload").Wrap(err)
		s.logger.Error("event decode error", "code", ae.Code, "error", err)
		s.sendError(protocol.ErrInvalidEvent, ae.FormatCompact())
		return
	}
	if err := s.QueueEvent(ev); err != nil {
		s.sendError(protocol.ErrQueueFull, "Event queue full")
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// EventLoop mounts the view, then handles events and dispatched functions
// one at a time until the session closes. It owns every observable of the
// session.
func (s *Session) EventLoop() {
	defer s.unmount()

	if !s.mount() {
		s.Close()
		return
	}
	s.lifecycle.Lock()
	if !s.closed.Load() {
		s.started = true
		s.hooks.sessionStart(s)
	}
	s.lifecycle.Unlock()

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case fn := <-s.dispatchCh:
			s.executeDispatch(fn)
		case <-s.done:
			return
		}
	}
}

// mount builds the view and sends the initial tree.
func (s *Session) mount() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("mount panic", "panic", r, "stack", string(debug.Stack()))
			s.sendError(protocol.ErrServerError, "Internal error")
			ok = false
		}
	}()

	s.root = bind.Mount(s.doc, s.doc.Container(), s.app())
	s.flush()
	s.logger.Info("session started")
	return true
}

func (s *Session) unmount() {
	if s.root != nil {
		s.root.Unmount()
		s.root = nil
	}
}

// handleEvent runs one client event through the middleware chain, then
// flushes the resulting patches.
func (s *Session) handleEvent(ev *protocol.Event) {
	s.eventCount.Add(1)

	c := &EventContext{ctx: s.ctx, Session: s, Event: ev}
	if err := s.handle(c); err != nil {
		s.reportError(err)
	}
	s.flush()
}

// processEvent delivers the event to the document's listeners.
func (s *Session) processEvent(c *EventContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			s.logger.Error("handler panic",
				"panic", r,
				"node", c.Event.ID,
				"type", c.Event.Type,
				"stack", string(stack))
			err = &HandlerError{
				SessionID: s.ID,
				NodeID:    c.Event.ID,
				EventType: c.Event.Type,
				Panic:     r,
				Stack:     stack,
			}
		}
	}()
	return s.doc.Dispatch(c.Event)
}

// executeDispatch runs fn on the event loop with panic recovery, then
// flushes.
func (s *Session) executeDispatch(fn func()) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				s.logger.Error("dispatch panic", "panic", r, "stack", string(stack))
				s.reportError(&HandlerError{SessionID: s.ID, Panic: r, Stack: stack})
			}
		}()
		fn()
	}()
	s.flush()
}

// reportError logs err under its registered code and tells the client.
// Panics were already logged with their stack when recovered.
func (s *Session) reportError(err error) {
	ae, code := classify(err)
	switch code {
	case protocol.ErrUnknownNode:
		s.logger.Warn("event for unknown node", "code", ae.Code, "error", err)
	case protocol.ErrHandlerPanic, protocol.ErrCascadeTooDeep:
	default:
		s.logger.Error("event error", "error", err)
	}
	s.sendError(code, ae.FormatCompact())
}

// flush sends queued patches as one or more frames.
func (s *Session) flush() {
	patches := s.doc.Flush()
	if len(patches) == 0 {
		return
	}

	frames, err := protocol.ChunkPatches(s.sendSeq+1, patches)
	if err != nil {
		s.logger.Error("patch encode error", "error", err)
		s.sendError(protocol.ErrServerError, "Patch too large")
		return
	}
	s.sendSeq += uint64(len(frames))

	for _, f := range frames {
		data, err := f.Encode()
		if err != nil {
			s.logger.Error("frame encode error", "error", err)
			return
		}
		if err := s.write(data); err != nil {
			s.logger.Error("write error", "error", err)
			s.Close()
			return
		}
	}

	s.patchCount.Add(uint64(len(patches)))
	s.hooks.patches(s, len(patches))

	s.logger.Debug("sent patches",
		"seq", s.sendSeq,
		"count", len(patches),
		"frames", len(frames))
}

// write sends one binary message.
func (s *Session) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return nil
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

// sendError sends a non-fatal error frame to the client.
func (s *Session) sendError(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(protocol.NewError(code, message))
	data, err := protocol.NewFrame(protocol.FrameError, payload).Encode()
	if err != nil {
		return
	}
	if err := s.write(data); err != nil && !errors.Is(err, ErrSessionClosed) {
		s.logger.Debug("error frame not sent", "error", err)
	}
}

// QueueEvent queues a client event for the event loop.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- ev:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "node", ev.ID)
		return ErrEventQueueFull
	}
}

// Dispatch runs fn on the session's event loop and flushes the patches it
// causes. Use it to update a session's observables from other goroutines.
func (s *Session) Dispatch(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.dispatchCh <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		s.logger.Warn("dispatch queue full, discarding callback")
		return ErrEventQueueFull
	}
}

// Close closes the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()

	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}

	s.lifecycle.Lock()
	if s.started {
		s.hooks.sessionClose(s)
	}
	s.lifecycle.Unlock()
	if s.onClose != nil {
		s.onClose(s)
	}

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load())
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Context returns a context cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Document returns the session's document. Only the event loop may use it.
func (s *Session) Document() *RemoteDocument {
	return s.doc
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		CreatedAt:  s.createdAt,
		LastActive: time.Unix(0, s.lastActive.Load()),
		Events:     s.eventCount.Load(),
		Patches:    s.patchCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}

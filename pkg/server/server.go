package server

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	clientdist "github.com/vango-dev/axon/client/dist"
	axerrors "github.com/vango-dev/axon/internal/errors"
)

// Routes served by the framework.
const (
	ClientPath    = "/_axon/client.js"
	WebSocketPath = "/_axon/ws"
	HealthPath    = "/healthz"
)

// Server hosts an App for many concurrent sessions.
type Server struct {
	app      App
	config   *ServerConfig
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger

	mu         sync.RWMutex
	middleware []Middleware
	hooks      hookList
	sessions   map[string]*Session
	httpServer *http.Server
}

// New creates a new Server. A nil config uses DefaultServerConfig.
func New(app App, config *ServerConfig) *Server {
	config = config.withDefaults()

	s := &Server{
		app:    app,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   slog.Default().With("component", "server"),
		sessions: make(map[string]*Session),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Get("/", s.handlePage)
	r.Get(ClientPath, handleClient)
	r.Get(WebSocketPath, s.HandleWebSocket)
	r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.router = r

	return s
}

// Use adds event middleware. It applies to sessions started afterwards.
func (s *Server) Use(mws ...Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mws...)
}

// Observe registers lifecycle hooks. They apply to sessions started
// afterwards.
func (s *Server) Observe(h Hooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Handle mounts an extra HTTP handler, e.g. a metrics endpoint.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="axon-root"></div>
<script src="{{.Client}}"></script>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct{ Title, Client string }{s.config.Title, ClientPath})
	if err != nil {
		s.logger.Error("page render error", "error", err)
	}
}

func handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientdist.AxonJS)
}

// HandleWebSocket upgrades the request and starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ae := axerrors.New("E060").Wrap(err)
		s.logger.Error(ae.Message, "code", ae.Code, "error", err, "request_id", chimw.GetReqID(r.Context()))
		return
	}

	s.mu.Lock()
	session := newSession(conn, s.app, s.config.SessionConfig, append([]Middleware(nil), s.middleware...),
		append(hookList(nil), s.hooks...), s.logger)
	session.onClose = s.removeSession
	s.sessions[session.ID] = session
	s.mu.Unlock()

	session.logger.Debug("session connected", "remote", r.RemoteAddr)
	session.Start()
}

func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()
}

// Session returns the live session with the given id.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve serves on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	httpServer := &http.Server{Handler: s.router}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", l.Addr().String())
		errCh <- httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	httpServer := s.httpServer
	s.mu.RUnlock()

	for _, session := range sessions {
		session.Close()
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

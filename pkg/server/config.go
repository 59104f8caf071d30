package server

import (
	"net/http"
	"net/url"
	"slices"
	"time"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message or pong from
	// the client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 256.
	MaxEventQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
	}
}

// ServerConfig holds configuration for the server.
type ServerConfig struct {
	// Address is the host:port to listen on. Default: "localhost:3000".
	Address string

	// Title is the page title of the shell document.
	Title string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// AllowedOrigins lists extra origins allowed to open a session.
	// Same-origin requests are always allowed; "*" allows any origin.
	AllowedOrigins []string

	// CheckOrigin overrides AllowedOrigins when set.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown. Default: 30 seconds.
	ShutdownTimeout time.Duration

	// SessionConfig configures each session.
	SessionConfig *SessionConfig
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         "localhost:3000",
		Title:           "Axon",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ShutdownTimeout: 30 * time.Second,
		SessionConfig:   DefaultSessionConfig(),
	}
}

// withDefaults fills unset fields of c from the defaults.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.SessionConfig == nil {
		out.SessionConfig = d.SessionConfig
	} else {
		sc := *out.SessionConfig
		ds := d.SessionConfig
		if sc.ReadTimeout == 0 {
			sc.ReadTimeout = ds.ReadTimeout
		}
		if sc.WriteTimeout == 0 {
			sc.WriteTimeout = ds.WriteTimeout
		}
		if sc.HeartbeatInterval == 0 {
			sc.HeartbeatInterval = ds.HeartbeatInterval
		}
		if sc.MaxMessageSize == 0 {
			sc.MaxMessageSize = ds.MaxMessageSize
		}
		if sc.MaxEventQueue == 0 {
			sc.MaxEventQueue = ds.MaxEventQueue
		}
		out.SessionConfig = &sc
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = originChecker(out.AllowedOrigins)
	}
	return &out
}

// originChecker allows requests without an Origin header, same-origin
// requests and the listed origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Host == r.Host {
			return true
		}
		return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

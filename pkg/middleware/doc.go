// Package middleware provides production middleware for Axon servers.
//
// This package includes:
//   - OpenTelemetry tracing of client events
//   - Prometheus metrics for events, patches and sessions
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a span for every client event.
// Spans carry the session ID, target node, event type and patch count.
//
//	srv.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("todo"),
//	))
//
// The tracer comes from the global OpenTelemetry tracer provider unless
// WithTracerProvider is given.
//
// # Prometheus Metrics
//
// Metrics instruments a server in one call:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("todo"))
//	m.Instrument(srv)
//
// This registers:
//   - axon_events_total: events processed by type and status
//   - axon_event_duration_seconds: event processing duration
//   - axon_event_errors_total: failed events by error type
//   - axon_patches_sent_total: patches sent to clients
//   - axon_active_sessions: current number of sessions
//   - axon_session_duration_seconds: session lifetimes
//
// and serves them at /metrics.
package middleware

package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/axon/pkg/server"
)

// Default tracer name for Axon applications.
const defaultTracerName = "axon"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "axon").
	TracerName string

	// TracerProvider supplies the tracer (default: the global provider).
	TracerProvider trace.TracerProvider

	// IncludeValue records the event's value field. Input values may
	// contain user data, so this is disabled by default.
	IncludeValue bool

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(c *server.EventContext) bool

	// AttributeExtractor extracts custom attributes for each traced event.
	AttributeExtractor func(c *server.EventContext) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeValue enables recording event values.
func WithIncludeValue(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeValue = include
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(c *server.EventContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *server.EventContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every client event.
//
// The span becomes the event context, so handlers further down the chain
// can reach it with SpanFromContext.
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return server.MiddlewareFunc(func(c *server.EventContext, next func() error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("axon.event_type", c.Event.Type),
			attribute.Int64("axon.node_id", int64(c.Event.ID)),
		}
		if c.Session != nil {
			attrs = append(attrs, attribute.String("axon.session_id", c.Session.ID))
		}
		if c.Event.Key != "" {
			attrs = append(attrs, attribute.String("axon.key", c.Event.Key))
		}
		if config.IncludeValue {
			attrs = append(attrs, attribute.String("axon.value", c.Event.Value))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		ctx, span := tracer.Start(c.Context(), "axon."+c.Event.Type,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		parent := c.Context()
		c.SetContext(ctx)
		err := next()
		c.SetContext(parent)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("axon.patch_count", c.PendingPatches()))

		return err
	})
}

// SpanFromContext returns the span of the event being handled, or a
// non-recording span outside the OpenTelemetry middleware.
func SpanFromContext(c *server.EventContext) trace.Span {
	return trace.SpanFromContext(c.Context())
}

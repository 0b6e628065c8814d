package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Span names.
const (
	SpanBundle   = "bundle"
	SpanDiscover = "discover"
	SpanOrder    = "order"
	SpanEmit     = "emit"
	SpanProcess  = "process"
)

// Span attribute keys.
const (
	AttrEntry       = "weld.entry"
	AttrModule      = "weld.module"
	AttrModules     = "weld.modules"
	AttrModuleCount = "weld.module_count"
	AttrCached      = "weld.cached"
)

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitModules records the ordered module set of a bundle on the current span.
	EmitModules(ctx context.Context, paths []string)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Attributes are set on the span when it starts.
	Attributes map[string]any
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute when the span starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

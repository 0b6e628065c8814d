package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/weld/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Timings)(nil)

// Timings is a span processor that logs the duration of every phase span.
// Per-module spans are skipped.
type Timings struct {
	logger ports.Logger
}

// NewTimings returns a Timings reporting to logger.
func NewTimings(logger ports.Logger) *Timings {
	return &Timings{logger: logger}
}

// OnStart does nothing.
func (p *Timings) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name and its duration.
func (p *Timings) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	for _, kv := range s.Attributes() {
		if string(kv.Key) == ports.AttrModule {
			return
		}
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	if s.Status().Code == codes.Error {
		p.logger.Warn(fmt.Sprintf("%s failed after %s", s.Name(), elapsed))
		return
	}
	p.logger.Info(fmt.Sprintf("%s took %s", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (p *Timings) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *Timings) Shutdown(context.Context) error {
	return nil
}

// Install registers a tracer provider with the given processors as the
// global provider and returns its shutdown function.
func Install(processors ...sdktrace.SpanProcessor) func(context.Context) error {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

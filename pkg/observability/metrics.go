package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricToolCallsTotal    = "undostack.tool.calls.total"
	metricToolCallDuration  = "undostack.tool.call.duration.seconds"
	metricToolErrorsTotal   = "undostack.tool.errors.total"
	metricToolCallsInflight = "undostack.tool.calls.inflight"

	attrTool   = "tool"
	attrStatus = "status"

	// StatusOK marks a successful tool call.
	StatusOK = "ok"
	// StatusError marks a failed tool call.
	StatusError = "error"
)

// toolDurationBuckets covers 0.1ms to 1s; tool calls only touch in-memory history.
var toolDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// ToolMetrics holds the rate, error, and duration instruments for MCP tool calls.
type ToolMetrics struct {
	callsTotal    metric.Int64Counter
	callDuration  metric.Float64Histogram
	errorsTotal   metric.Int64Counter
	callsInflight metric.Int64UpDownCounter
}

// NewToolMetrics creates tool call instruments from the given meter.
func NewToolMetrics(mt metric.Meter) (*ToolMetrics, error) {
	calls, err := mt.Int64Counter(metricToolCallsTotal,
		metric.WithDescription("Total number of tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricToolCallDuration,
		metric.WithDescription("Tool call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(toolDurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallDuration, err)
	}

	errs, err := mt.Int64Counter(metricToolErrorsTotal,
		metric.WithDescription("Total number of failed tool calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricToolCallsInflight,
		metric.WithDescription("Number of tool calls in progress"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallsInflight, err)
	}

	return &ToolMetrics{
		callsTotal:    calls,
		callDuration:  duration,
		errorsTotal:   errs,
		callsInflight: inflight,
	}, nil
}

// RecordCall records a finished tool call.
func (tm *ToolMetrics) RecordCall(ctx context.Context, tool, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)

	tm.callsTotal.Add(ctx, 1, attrs)
	tm.callDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		tm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrTool, tool)))
	}
}

// TrackInflight increments the in-flight counter and returns a function to decrement it.
func (tm *ToolMetrics) TrackInflight(ctx context.Context, tool string) func() {
	attrs := metric.WithAttributes(attribute.String(attrTool, tool))
	tm.callsInflight.Add(ctx, 1, attrs)

	return func() {
		tm.callsInflight.Add(ctx, -1, attrs)
	}
}

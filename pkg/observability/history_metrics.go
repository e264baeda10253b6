package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/undostack/pkg/history"
)

const (
	metricHistoryOperations = "undostack.history.operations.total"
	metricHistoryDropped    = "undostack.history.snapshots.dropped.total"
	metricHistoryDepth      = "undostack.history.depth"

	attrOp      = "op"
	attrOutcome = "outcome"
	attrStack   = "stack"

	stackUndo = "undo"
	stackRedo = "redo"
)

// HistoryMetrics records controller activity. It implements history.Observer.
type HistoryMetrics struct {
	operations metric.Int64Counter
	dropped    metric.Int64Counter
	depth      metric.Int64Gauge
}

var _ history.Observer = (*HistoryMetrics)(nil)

// NewHistoryMetrics creates history instruments from the given meter.
func NewHistoryMetrics(mt metric.Meter) (*HistoryMetrics, error) {
	ops, err := mt.Int64Counter(metricHistoryOperations,
		metric.WithDescription("History operations by op and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHistoryOperations, err)
	}

	dropped, err := mt.Int64Counter(metricHistoryDropped,
		metric.WithDescription("Snapshots discarded by the depth cap, redo invalidation, or clear"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHistoryDropped, err)
	}

	depth, err := mt.Int64Gauge(metricHistoryDepth,
		metric.WithDescription("Current number of snapshots per stack"),
		metric.WithUnit("{snapshot}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHistoryDepth, err)
	}

	return &HistoryMetrics{
		operations: ops,
		dropped:    dropped,
		depth:      depth,
	}, nil
}

// RecordOperation counts one operation with its outcome.
// Safe to call on a nil receiver (no-op).
func (hm *HistoryMetrics) RecordOperation(ctx context.Context, op, outcome string) {
	if hm == nil {
		return
	}

	hm.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrOutcome, outcome),
	))
}

// Observe implements history.Observer. Controller operations carry no
// context, so measurements are recorded without span exemplars.
func (hm *HistoryMetrics) Observe(ev history.Event) {
	if hm == nil {
		return
	}

	ctx := context.Background()

	hm.RecordOperation(ctx, string(ev.Op), string(ev.Outcome))

	if ev.Dropped > 0 {
		hm.dropped.Add(ctx, int64(ev.Dropped), metric.WithAttributes(attribute.String(attrOp, string(ev.Op))))
	}

	hm.depth.Record(ctx, int64(ev.UndoDepth), metric.WithAttributes(attribute.String(attrStack, stackUndo)))
	hm.depth.Record(ctx, int64(ev.RedoDepth), metric.WithAttributes(attribute.String(attrStack, stackRedo)))
}

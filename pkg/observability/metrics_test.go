package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
	"github.com/Sumatoshi-tech/undostack/pkg/observability"
)

func newTestReader(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return mp, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumFor(t *testing.T, m *metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	want := attribute.NewSet(attrs...)

	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}

	return 0
}

func gaugeFor(t *testing.T, m *metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()

	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok, "metric %s is not an int64 gauge", m.Name)

	want := attribute.NewSet(attrs...)

	for _, dp := range gauge.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}

	return -1
}

func TestToolMetrics_RecordCall(t *testing.T) {
	t.Parallel()

	mp, reader := newTestReader(t)

	tm, err := observability.NewToolMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	tm.RecordCall(ctx, "card_undo", observability.StatusOK, time.Millisecond)
	tm.RecordCall(ctx, "card_edit", observability.StatusError, time.Millisecond)

	rm := collectMetrics(t, reader)

	calls := findMetric(rm, "undostack.tool.calls.total")
	require.NotNil(t, calls)
	assert.Equal(t, int64(1), sumFor(t, calls,
		attribute.String("tool", "card_undo"), attribute.String("status", "ok")))

	errs := findMetric(rm, "undostack.tool.errors.total")
	require.NotNil(t, errs)
	assert.Equal(t, int64(1), sumFor(t, errs, attribute.String("tool", "card_edit")))

	require.NotNil(t, findMetric(rm, "undostack.tool.call.duration.seconds"))
}

func TestToolMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	mp, reader := newTestReader(t)

	tm, err := observability.NewToolMetrics(mp.Meter("test"))
	require.NoError(t, err)

	done := tm.TrackInflight(context.Background(), "card_state")

	inflight := findMetric(collectMetrics(t, reader), "undostack.tool.calls.inflight")
	require.NotNil(t, inflight)
	assert.Equal(t, int64(1), sumFor(t, inflight, attribute.String("tool", "card_state")))

	done()

	inflight = findMetric(collectMetrics(t, reader), "undostack.tool.calls.inflight")
	require.NotNil(t, inflight)
	assert.Equal(t, int64(0), sumFor(t, inflight, attribute.String("tool", "card_state")))
}

func TestHistoryMetrics_ObservesController(t *testing.T) {
	t.Parallel()

	mp, reader := newTestReader(t)

	hm, err := observability.NewHistoryMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctrl := history.NewCloneable(card.Default(), history.WithObserver(hm))

	ctrl.Edit(func(s *card.State) { s.Text = "A" })
	ctrl.Edit(func(s *card.State) { s.Text = "B" })
	_, _ = ctrl.Undo()
	_, _ = ctrl.Redo()
	_, _ = ctrl.Redo()

	rm := collectMetrics(t, reader)

	ops := findMetric(rm, "undostack.history.operations.total")
	require.NotNil(t, ops)
	assert.Equal(t, int64(2), sumFor(t, ops,
		attribute.String("op", "record"), attribute.String("outcome", "applied")))
	assert.Equal(t, int64(1), sumFor(t, ops,
		attribute.String("op", "redo"), attribute.String("outcome", "absent")))

	depth := findMetric(rm, "undostack.history.depth")
	require.NotNil(t, depth)
	assert.Equal(t, int64(2), gaugeFor(t, depth, attribute.String("stack", "undo")))
	assert.Equal(t, int64(0), gaugeFor(t, depth, attribute.String("stack", "redo")))
}

func TestHistoryMetrics_CountsDropped(t *testing.T) {
	t.Parallel()

	mp, reader := newTestReader(t)

	hm, err := observability.NewHistoryMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctrl := history.NewCloneable(card.Default(), history.WithObserver(hm), history.WithMaxDepth(1))

	ctrl.Record()
	ctrl.Record()
	ctrl.Record()

	dropped := findMetric(collectMetrics(t, reader), "undostack.history.snapshots.dropped.total")
	require.NotNil(t, dropped)
	assert.Equal(t, int64(2), sumFor(t, dropped, attribute.String("op", "record")))
}

func TestHistoryMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var hm *observability.HistoryMetrics

	assert.NotPanics(t, func() {
		hm.Observe(history.Event{Op: history.OpUndo})
		hm.RecordOperation(context.Background(), "undo", "absent")
	})
}

func TestMetrics_WithNoopMeter(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	tm, err := observability.NewToolMetrics(providers.Meter)
	require.NoError(t, err)

	hm, err := observability.NewHistoryMetrics(providers.Meter)
	require.NoError(t, err)

	tm.RecordCall(context.Background(), "card_state", observability.StatusOK, time.Millisecond)
	hm.Observe(history.Event{Op: history.OpRecord, Outcome: history.OutcomeApplied})
}

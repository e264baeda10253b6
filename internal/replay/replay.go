// Package replay runs edit scripts against a card history controller.
package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/undostack/internal/script"
	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
)

// ErrUnknownOp is returned for a step whose op the runner does not handle.
var ErrUnknownOp = errors.New("unknown step op")

// Messages reported when history runs out.
const (
	MsgNothingToUndo = "nothing to undo"
	MsgNothingToRedo = "nothing to redo"
)

const spanPrefix = "replay."

// Report describes the outcome of one step.
type Report struct {
	Step      int        `json:"step"              yaml:"step"`
	Op        script.Op  `json:"op"                yaml:"op"`
	Label     string     `json:"label"             yaml:"label"`
	Applied   bool       `json:"applied"           yaml:"applied"`
	Message   string     `json:"message,omitempty" yaml:"message,omitempty"`
	State     card.State `json:"state"             yaml:"state"`
	Previous  card.State `json:"-"                 yaml:"-"`
	UndoDepth int        `json:"undo_depth"        yaml:"undo_depth"`
	RedoDepth int        `json:"redo_depth"        yaml:"redo_depth"`
}

// Changed reports whether the step altered the current state.
func (r Report) Changed() bool {
	return !r.State.Equal(r.Previous)
}

// EmitFunc receives each report as soon as its step finishes.
type EmitFunc func(Report) error

// Deps holds injectable dependencies for a Runner.
// Zero-value fields use no-op defaults.
type Deps struct {
	// Logger receives one debug record per step. Nil discards.
	Logger *slog.Logger

	// Tracer creates one span per run and per step. Nil disables tracing.
	Tracer trace.Tracer
}

// Runner applies script steps to a controller.
type Runner struct {
	ctrl   *history.Controller[card.State]
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRunner creates a runner over ctrl.
func NewRunner(ctrl *history.Controller[card.State], deps Deps) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	return &Runner{ctrl: ctrl, logger: logger, tracer: tracer}
}

// Controller returns the controller the runner drives.
func (r *Runner) Controller() *history.Controller[card.State] {
	return r.ctrl
}

// Run applies sc step by step, calling emit after each step. Initial fields,
// if any, are assigned to the current state without recording.
func (r *Runner) Run(ctx context.Context, sc *script.Script, emit EmitFunc) error {
	ctx, span := r.tracer.Start(ctx, spanPrefix+"run",
		trace.WithAttributes(
			attribute.String("script.name", sc.Name),
			attribute.Int("script.steps", len(sc.Steps)),
		),
	)
	defer span.End()

	err := r.run(ctx, sc, emit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (r *Runner) run(ctx context.Context, sc *script.Script, emit EmitFunc) error {
	if len(sc.Initial) > 0 {
		initial := r.ctrl.Current()

		err := applyFields(&initial, sc.Initial)
		if err != nil {
			return fmt.Errorf("initial: %w", err)
		}

		r.ctrl.Set(initial)
	}

	for i, step := range sc.Steps {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return fmt.Errorf("replay canceled: %w", ctxErr)
		}

		report, err := r.step(ctx, i+1, step)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		if emit == nil {
			continue
		}

		err = emit(report)
		if err != nil {
			return fmt.Errorf("step %d: emit: %w", i+1, err)
		}
	}

	return nil
}

// Collect runs sc and returns every report.
func (r *Runner) Collect(ctx context.Context, sc *script.Script) ([]Report, error) {
	reports := make([]Report, 0, len(sc.Steps))

	err := r.Run(ctx, sc, func(rep Report) error {
		reports = append(reports, rep)

		return nil
	})

	return reports, err
}

func (r *Runner) step(ctx context.Context, index int, step script.Step) (Report, error) {
	ctx, span := r.tracer.Start(ctx, spanPrefix+"step",
		trace.WithAttributes(
			attribute.Int("step.index", index),
			attribute.String("step.op", string(step.Op)),
		),
	)
	defer span.End()

	report := Report{
		Step:     index,
		Op:       step.Op,
		Label:    step.Label,
		Applied:  true,
		Previous: r.ctrl.Current(),
	}

	if report.Label == "" {
		report.Label = string(step.Op)
	}

	err := r.apply(step, &report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return Report{}, err
	}

	report.State = r.ctrl.Current()
	report.UndoDepth = r.ctrl.UndoDepth()
	report.RedoDepth = r.ctrl.RedoDepth()

	span.SetAttributes(attribute.Bool("step.applied", report.Applied))

	r.logger.DebugContext(ctx, "replay step",
		"step", index,
		"op", string(step.Op),
		"applied", report.Applied,
		"undo_depth", report.UndoDepth,
		"redo_depth", report.RedoDepth,
	)

	return report, nil
}

func (r *Runner) apply(step script.Step, report *Report) error {
	if step.Op.NeedsFields() && len(step.Fields) == 0 {
		return script.ErrMissingFields
	}

	switch step.Op {
	case script.OpRecord:
		r.ctrl.Record()
	case script.OpSet:
		next := r.ctrl.Current()

		err := applyFields(&next, step.Fields)
		if err != nil {
			return err
		}

		r.ctrl.Set(next)
	case script.OpEdit:
		next := r.ctrl.Current()

		err := applyFields(&next, step.Fields)
		if err != nil {
			return err
		}

		r.ctrl.Record()
		r.ctrl.Set(next)
	case script.OpUndo:
		if _, ok := r.ctrl.Undo(); !ok {
			report.Applied = false
			report.Message = MsgNothingToUndo
		}
	case script.OpRedo:
		if _, ok := r.ctrl.Redo(); !ok {
			report.Applied = false
			report.Message = MsgNothingToRedo
		}
	case script.OpClear:
		r.ctrl.Clear()
	case script.OpPrint:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}

	return nil
}

// applyFields assigns fields in sorted name order.
func applyFields(state *card.State, fields map[string]string) error {
	step := script.Step{Fields: fields}

	for _, name := range step.FieldNames() {
		err := state.Set(name, fields[name])
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}

	return nil
}

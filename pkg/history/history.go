// Package history implements linear undo/redo over full-state snapshots.
//
// A Controller owns the current state plus two stacks of deep copies. Callers
// invoke Record before mutating the state; Undo and Redo then move snapshots
// between the stacks. Running out of history is a normal outcome reported by
// a false boolean, never an error.
package history

import (
	"errors"
	"log/slog"

	"github.com/Sumatoshi-tech/undostack/pkg/stack"
)

// ErrUnknownRedoPolicy is returned by ParseRedoPolicy for unrecognized names.
var ErrUnknownRedoPolicy = errors.New("unknown redo policy")

// CloneFunc returns an independent deep copy of a state value.
type CloneFunc[S any] func(S) S

// Cloner is implemented by state types that know how to deep-copy themselves.
type Cloner[S any] interface {
	Clone() S
}

// Controller manages the current state and its undo/redo snapshots.
// Not safe for concurrent use; confine it to one session or guard it externally.
type Controller[S any] struct {
	current S
	undo    *stack.Stack[S]
	redo    *stack.Stack[S]
	clone   CloneFunc[S]

	policy   RedoPolicy
	maxDepth int
	logger   *slog.Logger
	observer Observer
}

// New creates a controller holding a copy of initial.
// A nil clone copies states by assignment, which is only a deep copy for
// types without pointers, maps or slices.
func New[S any](initial S, clone CloneFunc[S], opts ...Option) *Controller[S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}

	cfg := options{policy: RedoClear}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Controller[S]{
		current:  clone(initial),
		undo:     stack.New[S](),
		redo:     stack.New[S](),
		clone:    clone,
		policy:   cfg.policy,
		maxDepth: cfg.maxDepth,
		logger:   logger,
		observer: cfg.observer,
	}
}

// NewCloneable creates a controller for a state type implementing Cloner.
func NewCloneable[S Cloner[S]](initial S, opts ...Option) *Controller[S] {
	return New(initial, func(s S) S { return s.Clone() }, opts...)
}

// Record pushes a deep copy of the current state onto the undo stack.
// Call it before mutating the state to make the mutation undoable.
func (c *Controller[S]) Record() {
	c.undo.Push(c.clone(c.current))

	dropped := c.enforceDepth()

	if c.policy == RedoClear {
		dropped += c.redo.Len()
		c.redo.Clear()
	}

	c.emit(OpRecord, OutcomeApplied, dropped)
}

// Edit records a snapshot and then applies mutate to the current state.
func (c *Controller[S]) Edit(mutate func(*S)) {
	c.Record()
	mutate(&c.current)
}

// Undo restores the most recent snapshot. The pre-undo state moves to the
// redo stack. It returns false, leaving everything unchanged, when there is
// nothing to undo.
func (c *Controller[S]) Undo() (S, bool) {
	return c.transfer(OpUndo, c.undo, c.redo)
}

// Redo reapplies the most recently undone state. The pre-redo state moves
// to the undo stack. It returns false, leaving everything unchanged, when
// there is nothing to redo.
func (c *Controller[S]) Redo() (S, bool) {
	return c.transfer(OpRedo, c.redo, c.undo)
}

func (c *Controller[S]) transfer(op Op, from, to *stack.Stack[S]) (S, bool) {
	var zero S

	if from.IsEmpty() {
		c.emit(op, OutcomeAbsent, 0)

		return zero, false
	}

	snapshot, err := from.Pop()
	if err != nil {
		// Unreachable after the IsEmpty guard; keep ErrEmptyStack inside.
		c.emit(op, OutcomeAbsent, 0)

		return zero, false
	}

	to.Push(c.clone(c.current))
	c.current = snapshot

	dropped := 0
	if to == c.undo {
		dropped = c.enforceDepth()
	}

	c.emit(op, OutcomeApplied, dropped)

	return c.clone(snapshot), true
}

// enforceDepth drops the oldest undo snapshots beyond maxDepth.
func (c *Controller[S]) enforceDepth() int {
	if c.maxDepth <= 0 || c.undo.Len() <= c.maxDepth {
		return 0
	}

	return c.undo.DropBottom(c.undo.Len() - c.maxDepth)
}

// Current returns a copy of the current state.
func (c *Controller[S]) Current() S {
	return c.clone(c.current)
}

// Set replaces the current state with a copy of s without recording.
func (c *Controller[S]) Set(s S) {
	c.current = c.clone(s)
}

// CanUndo reports whether Undo would restore a snapshot.
func (c *Controller[S]) CanUndo() bool {
	return !c.undo.IsEmpty()
}

// CanRedo reports whether Redo would restore a snapshot.
func (c *Controller[S]) CanRedo() bool {
	return !c.redo.IsEmpty()
}

// UndoDepth returns the number of undo snapshots.
func (c *Controller[S]) UndoDepth() int {
	return c.undo.Len()
}

// RedoDepth returns the number of redo snapshots.
func (c *Controller[S]) RedoDepth() int {
	return c.redo.Len()
}

// PeekUndo returns a copy of the state Undo would restore.
func (c *Controller[S]) PeekUndo() (S, bool) {
	return c.peek(c.undo)
}

// PeekRedo returns a copy of the state Redo would restore.
func (c *Controller[S]) PeekRedo() (S, bool) {
	return c.peek(c.redo)
}

func (c *Controller[S]) peek(st *stack.Stack[S]) (S, bool) {
	top, ok := st.Peek()
	if !ok {
		return top, false
	}

	return c.clone(top), true
}

// Clear drops all undo and redo snapshots. The current state is kept.
func (c *Controller[S]) Clear() {
	dropped := c.undo.Len() + c.redo.Len()

	c.undo.Clear()
	c.redo.Clear()

	c.emit(OpClear, OutcomeApplied, dropped)
}

// Policy returns the configured redo policy.
func (c *Controller[S]) Policy() RedoPolicy {
	return c.policy
}

// MaxDepth returns the undo depth cap, or zero when unbounded.
func (c *Controller[S]) MaxDepth() int {
	return c.maxDepth
}

func (c *Controller[S]) emit(op Op, outcome Outcome, dropped int) {
	ev := Event{
		Op:        op,
		Outcome:   outcome,
		UndoDepth: c.undo.Len(),
		RedoDepth: c.redo.Len(),
		Dropped:   dropped,
	}

	c.logger.Debug("history operation",
		"op", string(ev.Op),
		"outcome", string(ev.Outcome),
		"undo_depth", ev.UndoDepth,
		"redo_depth", ev.RedoDepth,
		"dropped", ev.Dropped,
	)

	if c.observer != nil {
		c.observer.Observe(ev)
	}
}

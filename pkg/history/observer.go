package history

// Op names a controller operation.
type Op string

// Controller operations reported to observers.
const (
	OpRecord Op = "record"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
)

// Outcome describes how an operation ended.
type Outcome string

// Operation outcomes.
const (
	// OutcomeApplied means the operation changed history.
	OutcomeApplied Outcome = "applied"
	// OutcomeAbsent means there was nothing to undo or redo.
	OutcomeAbsent Outcome = "absent"
)

// Event is delivered to an Observer after each operation.
type Event struct {
	Op        Op
	Outcome   Outcome
	UndoDepth int
	RedoDepth int
	// Dropped counts snapshots discarded by the depth cap or by redo invalidation.
	Dropped int
}

// Observer receives operation events. Implementations must not call back into
// the controller.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

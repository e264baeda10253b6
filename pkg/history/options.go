package history

import (
	"fmt"
	"log/slog"
	"strings"
)

// RedoPolicy decides what happens to the redo stack when a new snapshot is recorded.
type RedoPolicy int

const (
	// RedoClear discards redo history on every Record, so a new edit after an
	// undo starts a fresh timeline.
	RedoClear RedoPolicy = iota
	// RedoKeep leaves redo history untouched on Record.
	RedoKeep
)

// Policy names as used in configuration.
const (
	redoClearName = "clear"
	redoKeepName  = "keep"
)

// String returns the configuration name of the policy.
func (p RedoPolicy) String() string {
	switch p {
	case RedoClear:
		return redoClearName
	case RedoKeep:
		return redoKeepName
	default:
		return fmt.Sprintf("RedoPolicy(%d)", int(p))
	}
}

// ParseRedoPolicy maps a configuration name to a RedoPolicy.
func ParseRedoPolicy(name string) (RedoPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case redoClearName, "":
		return RedoClear, nil
	case redoKeepName:
		return RedoKeep, nil
	default:
		return RedoClear, fmt.Errorf("%w: %q", ErrUnknownRedoPolicy, name)
	}
}

type options struct {
	policy   RedoPolicy
	maxDepth int
	logger   *slog.Logger
	observer Observer
}

// Option configures a Controller.
type Option func(*options)

// WithRedoPolicy sets the redo policy. The default is RedoClear.
func WithRedoPolicy(policy RedoPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithMaxDepth caps the undo stack. Oldest snapshots are dropped first.
// Zero or negative means unbounded, which is the default.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = max(depth, 0)
	}
}

// WithLogger sets the logger used for per-operation debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer notified after every operation.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

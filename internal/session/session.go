// Package session confines a card history controller to one logical editing
// session that several callers may share.
package session

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/undostack/pkg/card"
	"github.com/Sumatoshi-tech/undostack/pkg/history"
)

// Snapshot is a consistent view of a session at one instant.
type Snapshot struct {
	ID        string     `json:"session_id"`
	State     card.State `json:"state"`
	UndoDepth int        `json:"undo_depth"`
	RedoDepth int        `json:"redo_depth"`
	CanUndo   bool       `json:"can_undo"`
	CanRedo   bool       `json:"can_redo"`
	Policy    string     `json:"redo_policy"`
	MaxDepth  int        `json:"max_depth,omitempty"`
}

// Session serializes access to a controller.
type Session struct {
	id   string
	mu   sync.Mutex
	ctrl *history.Controller[card.State]
}

// New wraps ctrl in a session with a fresh random ID.
func New(ctrl *history.Controller[card.State]) *Session {
	return &Session{id: uuid.NewString(), ctrl: ctrl}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current state and history depths.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Record captures the current state without changing it.
func (s *Session) Record() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.Record()

	return s.snapshotLocked()
}

// Edit assigns fields to the current state. When record is true the
// pre-edit state is captured first so the edit can be undone. Fields are
// validated before anything is recorded.
func (s *Session) Edit(fields map[string]string, record bool) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ctrl.Current()

	for _, name := range slices.Sorted(maps.Keys(fields)) {
		err := next.Set(name, fields[name])
		if err != nil {
			return Snapshot{}, fmt.Errorf("field %q: %w", name, err)
		}
	}

	if record {
		s.ctrl.Record()
	}

	s.ctrl.Set(next)

	return s.snapshotLocked(), nil
}

// Undo restores the previous state. ok is false when there is nothing to undo.
func (s *Session) Undo() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ctrl.Undo()

	return s.snapshotLocked(), ok
}

// Redo reapplies the last undone state. ok is false when there is nothing to redo.
func (s *Session) Redo() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ctrl.Redo()

	return s.snapshotLocked(), ok
}

// Clear drops all history and keeps the current state.
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.Clear()

	return s.snapshotLocked()
}

// History is a snapshot together with the cards Undo and Redo would restore.
type History struct {
	Snapshot

	NextUndo *card.State `json:"next_undo,omitempty"`
	NextRedo *card.State `json:"next_redo,omitempty"`
}

// History describes the history around the current card. When clear is
// true all snapshots are dropped first.
func (s *Session) History(clear bool) History {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clear {
		s.ctrl.Clear()
	}

	out := History{Snapshot: s.snapshotLocked()}

	if prev, ok := s.ctrl.PeekUndo(); ok {
		out.NextUndo = &prev
	}

	if next, ok := s.ctrl.PeekRedo(); ok {
		out.NextRedo = &next
	}

	return out
}

// With runs fn with exclusive access to the controller.
func (s *Session) With(fn func(ctrl *history.Controller[card.State])) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.ctrl)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        s.id,
		State:     s.ctrl.Current(),
		UndoDepth: s.ctrl.UndoDepth(),
		RedoDepth: s.ctrl.RedoDepth(),
		CanUndo:   s.ctrl.CanUndo(),
		CanRedo:   s.ctrl.CanRedo(),
		Policy:    s.ctrl.Policy().String(),
		MaxDepth:  s.ctrl.MaxDepth(),
	}
}

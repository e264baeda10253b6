// Package stack provides a generic last-in-first-out container.
package stack

import "errors"

// ErrEmptyStack is returned by Pop when the stack holds no items.
var ErrEmptyStack = errors.New("pop from empty stack")

// Stack is a LIFO container backed by a slice. Only the tail is accessible.
// The zero value is an empty stack ready for use. Not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

// New creates an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push appends item at the tail.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns the tail item.
// It returns ErrEmptyStack when the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	var zero T

	n := len(s.items)
	if n == 0 {
		return zero, ErrEmptyStack
	}

	item := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]

	return item, nil
}

// Peek returns the tail item without removing it.
// The boolean is false when the stack is empty.
func (s *Stack[T]) Peek() (T, bool) {
	n := len(s.items)
	if n == 0 {
		var zero T

		return zero, false
	}

	return s.items[n-1], true
}

// IsEmpty reports whether the stack holds no items.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Len returns the number of items.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear removes all items.
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// DropBottom removes up to n of the oldest items and returns how many were removed.
func (s *Stack[T]) DropBottom(n int) int {
	if n <= 0 {
		return 0
	}

	n = min(n, len(s.items))

	clear(s.items[:n])
	s.items = s.items[n:]

	return n
}

// Items returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

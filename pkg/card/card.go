// Package card defines the name-card state used by the undo/redo demo.
package card

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Field names accepted by Set.
const (
	FieldText       = "text"
	FieldBackground = "bg"
	FieldSize       = "size"

	fieldBackgroundLong = "background"
)

// Demo defaults.
const (
	DefaultText       = "YOUR NAME"
	DefaultBackground = "blue"
	DefaultSize       = 48
)

// Sentinel errors for field assignment.
var (
	ErrEmptyField  = errors.New("field name must not be empty")
	ErrInvalidSize = errors.New("size must be a non-negative integer")
)

// State is a value-semantic name card. Extra holds free-form fields beyond
// the well-known ones.
type State struct {
	Text       string            `json:"text"            yaml:"text"`
	Background string            `json:"bg"              yaml:"bg"`
	Size       int               `json:"size"            yaml:"size"`
	Extra      map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Default returns the initial demo card.
func Default() State {
	return State{
		Text:       DefaultText,
		Background: DefaultBackground,
		Size:       DefaultSize,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Extra != nil {
		out.Extra = maps.Clone(s.Extra)
	}

	return out
}

// Equal reports whether s and other hold the same values.
// A nil Extra map equals an empty one.
func (s State) Equal(other State) bool {
	return s.Text == other.Text &&
		s.Background == other.Background &&
		s.Size == other.Size &&
		maps.Equal(s.Extra, other.Extra)
}

// Set assigns value to the named field.
func (s *State) Set(field, value string) error {
	name := strings.ToLower(strings.TrimSpace(field))

	switch name {
	case "":
		return ErrEmptyField
	case FieldText:
		s.Text = value
	case FieldBackground, fieldBackgroundLong:
		s.Background = value
	case FieldSize:
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || size < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidSize, value)
		}

		s.Size = size
	default:
		if s.Extra == nil {
			s.Extra = make(map[string]string)
		}

		s.Extra[name] = value
	}

	return nil
}

// Get returns the value of the named field as a string.
func (s State) Get(field string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(field))

	switch name {
	case FieldText:
		return s.Text, true
	case FieldBackground, fieldBackgroundLong:
		return s.Background, true
	case FieldSize:
		return strconv.Itoa(s.Size), true
	default:
		v, ok := s.Extra[name]

		return v, ok
	}
}

// Field is a name/value pair in display order.
type Field struct {
	Name  string
	Value string
}

// Fields lists the well-known fields followed by extra fields in key order.
func (s State) Fields() []Field {
	out := []Field{
		{Name: FieldText, Value: s.Text},
		{Name: FieldBackground, Value: s.Background},
		{Name: FieldSize, Value: strconv.Itoa(s.Size)},
	}

	for _, key := range slices.Sorted(maps.Keys(s.Extra)) {
		out = append(out, Field{Name: key, Value: s.Extra[key]})
	}

	return out
}

// String renders the card as {text: Alice, bg: blue, size: 48}.
func (s State) String() string {
	fields := s.Fields()
	parts := make([]string, 0, len(fields))

	for _, f := range fields {
		parts = append(parts, f.Name+": "+f.Value)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// Package script reads YAML edit scripts that drive a card history.
//
// A script names an optional initial card and a list of steps. Documents are
// validated against the embedded JSON schema before they are decoded.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for script loading.
var (
	ErrInvalidScript = errors.New("invalid script")
	ErrMissingFields = errors.New("step requires fields")
)

// Op names a script step operation.
type Op string

// Step operations.
const (
	OpRecord Op = "record"
	OpSet    Op = "set"
	OpEdit   Op = "edit"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
	OpPrint  Op = "print"
)

// NeedsFields reports whether the op assigns fields.
func (o Op) NeedsFields() bool {
	return o == OpSet || o == OpEdit
}

// Step is one operation in a script.
type Step struct {
	Op     Op                `json:"op"               yaml:"op"`
	Label  string            `json:"label,omitempty"  yaml:"label,omitempty"`
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldNames returns the step's field names in sorted order.
func (s Step) FieldNames() []string {
	return slices.Sorted(maps.Keys(s.Fields))
}

// Script is a named sequence of steps over a card.
type Script struct {
	Name    string            `json:"name,omitempty"    yaml:"name,omitempty"`
	Initial map[string]string `json:"initial,omitempty" yaml:"initial,omitempty"`
	Steps   []Step            `json:"steps"             yaml:"steps"`
}

// rawStep mirrors Step with scalar field values left untyped.
type rawStep struct {
	Op     Op             `yaml:"op"`
	Label  string         `yaml:"label"`
	Fields map[string]any `yaml:"fields"`
}

type rawScript struct {
	Name    string         `yaml:"name"`
	Initial map[string]any `yaml:"initial"`
	Steps   []rawStep      `yaml:"steps"`
}

// Parse validates and decodes a YAML (or JSON) script document.
func Parse(data []byte) (*Script, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidScript, err)
	}

	err = validate(doc)
	if err != nil {
		return nil, err
	}

	var raw rawScript

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode steps: %w", ErrInvalidScript, err)
	}

	out := &Script{
		Name:    raw.Name,
		Initial: stringify(raw.Initial),
		Steps:   make([]Step, 0, len(raw.Steps)),
	}

	for i, rs := range raw.Steps {
		step := Step{Op: rs.Op, Label: rs.Label, Fields: stringify(rs.Fields)}

		if step.Op.NeedsFields() && len(step.Fields) == 0 {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, ErrMissingFields)
		}

		out.Steps = append(out.Steps, step)
	}

	return out, nil
}

// Read parses a script from r.
func Read(r io.Reader) (*Script, error) {
	var buf bytes.Buffer

	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return Parse(buf.Bytes())
}

// Load parses the script at path. The path "-" reads from stdin.
func Load(path string) (*Script, error) {
	if path == "-" {
		return Read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Marshal encodes s as YAML.
func Marshal(s *Script) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}

	return data, nil
}

func stringify(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}

	return out
}

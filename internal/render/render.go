// Package render prints replay reports as plain text, tables, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/undostack/internal/replay"
)

// Output formats.
const (
	FormatPlain = "plain"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned by New for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Options configures a Printer.
type Options struct {
	// Format is one of plain, table, json or yaml.
	Format string

	// Color enables ANSI colors for plain and table output.
	Color bool

	// ShowDiff prints changed fields under each plain entry.
	ShowDiff bool
}

// Printer writes reports to an output stream.
// Table output is buffered until Flush.
type Printer struct {
	out  io.Writer
	opts Options

	label  *color.Color
	absent *color.Color

	tbl     table.Writer
	yamlEnc *yaml.Encoder
	jsonEnc *json.Encoder
	entries int
}

// New creates a printer writing to out.
func New(out io.Writer, opts Options) (*Printer, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatPlain
	}

	opts.Format = format

	p := &Printer{
		out:    out,
		opts:   opts,
		label:  color.New(color.FgCyan, color.Bold),
		absent: color.New(color.FgYellow),
	}

	if opts.Color {
		p.label.EnableColor()
		p.absent.EnableColor()
	} else {
		p.label.DisableColor()
		p.absent.DisableColor()
	}

	switch format {
	case FormatPlain:
	case FormatTable:
		p.tbl = newTable()
	case FormatJSON:
		p.jsonEnc = json.NewEncoder(out)
	case FormatYAML:
		p.yamlEnc = yaml.NewEncoder(out)
		p.yamlEnc.SetIndent(2)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	return p, nil
}

// Print writes one report. It matches replay.EmitFunc.
func (p *Printer) Print(rep replay.Report) error {
	p.entries++

	switch p.opts.Format {
	case FormatTable:
		p.appendRow(rep)

		return nil
	case FormatJSON:
		return p.encode(p.jsonEnc.Encode, rep)
	case FormatYAML:
		return p.encode(p.yamlEnc.Encode, rep)
	default:
		return p.printPlain(rep)
	}
}

// Flush writes buffered output and a history summary where the format has one.
func (p *Printer) Flush(undoDepth, redoDepth int) error {
	switch p.opts.Format {
	case FormatTable:
		p.tbl.AppendFooter(table.Row{"", "", Summary(undoDepth, redoDepth)})

		_, err := fmt.Fprintln(p.out, p.tbl.Render())
		if err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	case FormatYAML:
		err := p.yamlEnc.Close()
		if err != nil {
			return fmt.Errorf("close yaml: %w", err)
		}
	}

	return nil
}

// Summary describes the remaining history, e.g. "2 undo snapshots, 1 redo snapshot".
func Summary(undoDepth, redoDepth int) string {
	return english.Plural(undoDepth, "undo snapshot", "") + ", " +
		english.Plural(redoDepth, "redo snapshot", "")
}

func (p *Printer) encode(enc func(any) error, rep replay.Report) error {
	err := enc(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

func (p *Printer) printPlain(rep replay.Report) error {
	var sb strings.Builder

	sb.WriteString(p.label.Sprint(rep.Label + ":"))
	sb.WriteString(" ")

	if rep.Applied {
		sb.WriteString(rep.State.String())
	} else {
		sb.WriteString(p.absent.Sprint(rep.Message))
	}

	sb.WriteString("\n")

	if p.opts.ShowDiff && rep.Applied && rep.Changed() {
		for _, line := range FieldDiff(rep.Previous, rep.State, p.opts.Color) {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(p.out, sb.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "Step", "State", "Undo", "Redo"})

	return tbl
}

func (p *Printer) appendRow(rep replay.Report) {
	state := rep.State.String()
	if !rep.Applied {
		state = rep.Message
	}

	p.tbl.AppendRow(table.Row{rep.Step, p.label.Sprint(rep.Label), state, rep.UndoDepth, rep.RedoDepth})
}

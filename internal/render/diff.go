package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/undostack/pkg/card"
)

// FieldDiff lists the fields that differ between before and after, one line
// per field. Values are diffed character-wise; removed runs are shown as
// [-x-] and inserted runs as {+x+}, or in red and green when colored.
func FieldDiff(before, after card.State, colored bool) []string {
	prev := fieldMap(before)

	var lines []string

	seen := make(map[string]bool)

	for _, f := range after.Fields() {
		seen[f.Name] = true

		old, ok := prev[f.Name]
		if ok && old == f.Value {
			continue
		}

		lines = append(lines, f.Name+": "+diffValue(old, f.Value, colored))
	}

	for _, f := range before.Fields() {
		if seen[f.Name] {
			continue
		}

		lines = append(lines, f.Name+": "+diffValue(f.Value, "", colored))
	}

	return lines
}

func fieldMap(s card.State) map[string]string {
	fields := s.Fields()
	out := make(map[string]string, len(fields))

	for _, f := range fields {
		out[f.Name] = f.Value
	}

	return out
}

func diffValue(from, to string, colored bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	if colored {
		del.EnableColor()
		ins.EnableColor()
	}

	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			if colored {
				sb.WriteString(del.Sprint(d.Text))
			} else {
				sb.WriteString("[-" + d.Text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if colored {
				sb.WriteString(ins.Sprint(d.Text))
			} else {
				sb.WriteString("{+" + d.Text + "+}")
			}
		}
	}

	return sb.String()
}

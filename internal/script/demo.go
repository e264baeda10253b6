package script

// Demo labels.
const (
	LabelInitial   = "Initial"
	LabelChange1   = "Change 1"
	LabelChange2   = "Change 2"
	LabelAfterUndo = "After undo"
	LabelAfterRedo = "After redo"
)

// Demo returns the built-in name-card scenario: two recorded edits, one undo
// and one redo. The initial card comes from configuration.
func Demo() *Script {
	return &Script{
		Name: "demo",
		Steps: []Step{
			{Op: OpPrint, Label: LabelInitial},
			{Op: OpEdit, Label: LabelChange1, Fields: map[string]string{"text": "Alice"}},
			{Op: OpEdit, Label: LabelChange2, Fields: map[string]string{"bg": "gradient(blue, purple)"}},
			{Op: OpUndo, Label: LabelAfterUndo},
			{Op: OpRedo, Label: LabelAfterRedo},
		},
	}
}

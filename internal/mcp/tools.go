package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/undostack/internal/render"
	"github.com/Sumatoshi-tech/undostack/internal/replay"
	"github.com/Sumatoshi-tech/undostack/internal/session"
)

// Tool name constants.
const (
	ToolNameState   = "card_state"
	ToolNameEdit    = "card_edit"
	ToolNameRecord  = "card_record"
	ToolNameUndo    = "card_undo"
	ToolNameRedo    = "card_redo"
	ToolNameHistory = "card_history"
)

// ErrEmptyFields indicates card_edit was called without fields.
var ErrEmptyFields = errors.New("fields parameter is required and must not be empty")

// Input types (auto-generate JSON schemas via struct tags).

// EmptyInput is the input schema for tools that take no arguments.
type EmptyInput struct{}

// EditInput is the input schema for the card_edit tool.
type EditInput struct {
	Fields   map[string]string `json:"fields"              jsonschema:"field name to value, for example text, bg, size or any extra field"`
	NoRecord bool              `json:"no_record,omitempty" jsonschema:"apply without recording a snapshot first"`
}

// HistoryInput is the input schema for the card_history tool.
type HistoryInput struct {
	Clear bool `json:"clear,omitempty" jsonschema:"drop all undo and redo snapshots, keeping the current card"`
}

// Output types.

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// StepResult reports the outcome of an undo or redo.
type StepResult struct {
	session.Snapshot

	Applied bool   `json:"applied"`
	Message string `json:"message,omitempty"`
}

// HistoryView describes the history around the current card.
type HistoryView struct {
	session.History

	Summary string `json:"summary"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func (s *Server) handleState(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return jsonResult(s.sess.Snapshot())
}

func (s *Server) handleEdit(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input EditInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if len(input.Fields) == 0 {
		return errorResult(ErrEmptyFields)
	}

	snap, err := s.sess.Edit(input.Fields, !input.NoRecord)
	if err != nil {
		s.logger.WarnContext(ctx, "card edit rejected", "error", err)

		return errorResult(err)
	}

	return jsonResult(snap)
}

func (s *Server) handleRecord(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return jsonResult(s.sess.Record())
}

func (s *Server) handleUndo(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap, ok := s.sess.Undo()

	return jsonResult(stepResult(snap, ok, replay.MsgNothingToUndo))
}

func (s *Server) handleRedo(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	snap, ok := s.sess.Redo()

	return jsonResult(stepResult(snap, ok, replay.MsgNothingToRedo))
}

func (s *Server) handleHistory(
	_ context.Context, _ *mcpsdk.CallToolRequest, input HistoryInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	hist := s.sess.History(input.Clear)

	return jsonResult(HistoryView{
		History: hist,
		Summary: render.Summary(hist.UndoDepth, hist.RedoDepth),
	})
}

func stepResult(snap session.Snapshot, ok bool, absent string) StepResult {
	res := StepResult{Snapshot: snap, Applied: ok}
	if !ok {
		res.Message = absent
	}

	return res
}

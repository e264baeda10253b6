package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/undostack/cmd/undostack/commands"
	"github.com/Sumatoshi-tech/undostack/internal/config"
)

// execute runs the root command with args and a hermetic config file.
func execute(t *testing.T, configBody string, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "undostack.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configBody), 0o600))

	var stdout, stderr bytes.Buffer

	root := commands.NewRootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDemo(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "", "demo")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Initial: {text: YOUR NAME, bg: blue, size: 48}",
		"Change 1: {text: Alice, bg: blue, size: 48}",
		"Change 2: {text: Alice, bg: gradient(blue, purple), size: 48}",
		"After undo: {text: Alice, bg: blue, size: 48}",
		"After redo: {text: Alice, bg: gradient(blue, purple), size: 48}",
		"",
	}, "\n"), stdout)
}

func TestDemo_ConfiguredInitialCard(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "card:\n  text: Carol\n  size: 20\n", "", "demo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Initial: {text: Carol, bg: blue, size: 20}\n"), stdout)
}

func TestDemo_FormatFlag(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "", "--format", "json", "demo")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"label":"Initial"`)
}

func TestDemo_InvalidFormatFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "", "--format", "xml", "demo")
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestDemo_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "history:\n  redo_policy: branch\n", "", "demo")
	require.ErrorIs(t, err, config.ErrInvalidRedoPolicy)
}

func TestDemo_MetricsDump(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "", "", "--metrics", "demo")
	require.NoError(t, err)

	assert.Regexp(t, `undostack.history.operations`, stderr)
	assert.Contains(t, stderr, `op="undo"`)
}

func TestDemo_VerboseLogsOperations(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "", "", "--verbose", "demo")
	require.NoError(t, err)

	assert.Contains(t, stderr, "history operation")
	assert.Contains(t, stderr, "replay step")
}

func TestReplay_File(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
initial:
  text: Bob
steps:
  - op: edit
    label: Rename
    fields:
      text: Robert
  - op: undo
  - op: undo
`)

	stdout, _, err := execute(t, "", "", "replay", path)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Rename: {text: Robert, bg: blue, size: 48}",
		"undo: {text: Bob, bg: blue, size: 48}",
		"undo: nothing to undo",
		"",
	}, "\n"), stdout)
}

func TestReplay_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "steps:\n  - op: print\n    label: Now\n", "replay", "-")
	require.NoError(t, err)
	assert.Equal(t, "Now: {text: YOUR NAME, bg: blue, size: 48}\n", stdout)
}

func TestReplay_RedoKeepFromConfig(t *testing.T) {
	t.Parallel()

	path := writeScript(t, `
steps:
  - op: edit
    fields: {text: A}
  - op: undo
  - op: edit
    fields: {text: B}
  - op: redo
`)

	stdout, _, err := execute(t, "history:\n  redo_policy: keep\n", "", "replay", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "redo: {text: A, bg: blue, size: 48}")

	stdout, _, err = execute(t, "", "", "replay", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "redo: nothing to redo")
}

func TestReplay_InvalidScript(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "steps:\n  - op: rewind\n")

	_, _, err := execute(t, "", "", "replay", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid script")
}

func TestReplay_RequiresArgument(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "", "replay")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "undostack "), stdout)
	assert.Contains(t, stdout, "commit:")
}

func TestRoot_VerboseQuietExclusive(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "", "-v", "-q", "demo")
	require.Error(t, err)
}

package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/leapstack-labs/satchel/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// writeScript writes content to a temp file and returns its path.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.smt2")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fakeSolver writes a shell script that prints output on every call.
func fakeSolver(t *testing.T, output string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script solver stub not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fakesolver")
	script := "#!/bin/sh\nprintf '" + output + "'\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "satchel v")
}

func TestParseCommand(t *testing.T) {
	script := writeScript(t, `; comment line
(set-logic   QF_LRA)
(assert ( > x   0))
`)
	out, _, err := execute(t, "parse", script)
	require.NoError(t, err)
	assert.Equal(t, "(set-logic QF_LRA)\n(assert (> x 0))\n", out)
}

func TestParseCommandStrict(t *testing.T) {
	script := writeScript(t, "(assert (> x 0")

	_, _, err := execute(t, "parse", script)
	require.NoError(t, err)

	_, _, err = execute(t, "parse", "--strict", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated list")
}

func TestParseCommandRequiresOneArg(t *testing.T) {
	_, _, err := execute(t, "parse")
	require.Error(t, err)

	_, _, err = execute(t, "parse", "a.smt2", "b.smt2")
	require.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	script := writeScript(t, `(declare-fun x () Real)
(assert (> x 0))
(check-sat)
`)
	statePath := filepath.Join(t.TempDir(), "history.db")

	out, _, err := execute(t, "check",
		"--solver", fakeSolver(t, "sat\n"),
		"--state", statePath,
		script)
	require.NoError(t, err)
	assert.Equal(t, "sat\n", out)

	// The run landed in the history database.
	histOut, _, err := execute(t, "history", "--state", statePath)
	require.NoError(t, err)
	assert.Contains(t, histOut, "script.smt2")
	assert.Contains(t, histOut, "sat")
	assert.Contains(t, histOut, "completed")
}

func TestCheckCommandNoHistory(t *testing.T) {
	script := writeScript(t, "(check-sat)\n")
	statePath := filepath.Join(t.TempDir(), "history.db")

	out, _, err := execute(t, "check",
		"--solver", fakeSolver(t, "unknown\n"),
		"--state", statePath,
		"--no-history",
		script)
	require.NoError(t, err)
	assert.Equal(t, "unknown\n", out)

	_, err = os.Stat(statePath)
	assert.True(t, os.IsNotExist(err), "no history database is created")
}

func TestCheckCommandUnknownCommandFails(t *testing.T) {
	script := writeScript(t, "(push 1)\n(check-sat)\n")
	statePath := filepath.Join(t.TempDir(), "history.db")

	out, _, err := execute(t, "check",
		"--solver", fakeSolver(t, "sat\n"),
		"--state", statePath,
		script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "push"`)
	assert.Empty(t, out)

	// The failure is still recorded.
	histOut, _, err := execute(t, "history", "--state", statePath)
	require.NoError(t, err)
	assert.Contains(t, histOut, "failed")
}

func TestCheckCommandExitStopsEarly(t *testing.T) {
	script := writeScript(t, "(exit)\n(check-sat)\n")

	out, _, err := execute(t, "check",
		"--solver", fakeSolver(t, "sat\n"),
		"--no-history",
		script)
	require.NoError(t, err)
	assert.Empty(t, out, "nothing after exit runs")
}

func TestCheckCommandMissingScript(t *testing.T) {
	_, _, err := execute(t, "check", "--no-history",
		filepath.Join(t.TempDir(), "missing.smt2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read script")
}

func TestCheckCommandRequiresOneArg(t *testing.T) {
	_, _, err := execute(t, "check")
	require.Error(t, err)
}

func TestHistoryCommandEmpty(t *testing.T) {
	out, _, err := execute(t, "history",
		"--state", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No history recorded yet")
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/run-main/internal/config"
	"github.com/daryltucker/run-main/internal/model"
)

type result struct {
	stdout string
	stderr string
	exits  []int
	err    error
}

func execute(t *testing.T, args ...string) result {
	t.Helper()

	cfgFile, colorMode, verbose, reportOverride, forceInit = "", "", false, "", false
	var exits []int
	prevExit := osExit
	osExit = func(code int) { exits = append(exits, code) }
	t.Cleanup(func() { osExit = prevExit })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := rootCmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), exits: exits, err: err}
}

func TestDemoOK(t *testing.T) {
	res := execute(t, "demo", "ok")
	require.NoError(t, res.err)
	assert.Equal(t, "main routine succeeded\n", res.stdout)
	assert.Empty(t, res.exits)
}

func TestDemoValue(t *testing.T) {
	res := execute(t, "demo", "value")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stderr, "Error: Non-error value was thrown: 6"), res.stderr)
	assert.Equal(t, []int{1}, res.exits)
}

func TestDemoErrorShowsSource(t *testing.T) {
	res := execute(t, "demo", "error")
	require.NoError(t, res.err)

	lines := strings.Split(res.stderr, "\n")
	require.Greater(t, len(lines), 3, res.stderr)
	assert.Equal(t, "Error: something's come along and it's burst our bubble", lines[0])
	assert.Equal(t, "", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "./demo.go:"), lines[2])
	assert.Contains(t, res.stderr, "> | ")
	assert.Equal(t, []int{1}, res.exits)
}

func TestDemoAsync(t *testing.T) {
	res := execute(t, "demo", "async")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stderr, "Error: failed after a while"), res.stderr)
	assert.Equal(t, []int{1}, res.exits)
}

func TestDemoUnknownKind(t *testing.T) {
	res := execute(t, "demo", "nope")
	assert.Error(t, res.err)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.go")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\n"), 0644))

	res := execute(t, "preview", "-B", "1", "-A", "0", path+":3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "2   | b\n3 > | c\n")
	assert.NotContains(t, res.stdout, "| d")

	res = execute(t, "preview", "nowhere")
	assert.Error(t, res.err)
}

func TestConfigInitAndShow(t *testing.T) {
	t.Chdir(t.TempDir())

	res := execute(t, "config", "init")
	require.NoError(t, res.err)
	_, err := os.Stat("runmain.yaml")
	require.NoError(t, err)

	res = execute(t, "config", "init")
	assert.ErrorContains(t, res.err, "already exists")

	require.NoError(t, os.WriteFile("runmain.yaml", []byte("preview:\n  max_width: 120\n"), 0644))
	res = execute(t, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "max_width: 120")
	assert.Contains(t, res.stdout, "color: never")
}

func TestInvalidColorFlag(t *testing.T) {
	res := execute(t, "demo", "ok")
	require.NoError(t, res.err)

	rootCmd.SetArgs([]string{"--color", "rainbow", "demo", "ok"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalidColor)
}

func TestExecWritesReport(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	report := filepath.Join(t.TempDir(), "runs.jsonl")

	res := execute(t, "exec", "--report", report, "--", "sh", "-c", "exit 4")
	require.NoError(t, res.err)
	assert.Equal(t, []int{1}, res.exits)
	assert.Equal(t, "Error: sh: exit status 4\n", res.stderr)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var got model.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"sh", "-c", "exit 4"}, got.Command)
	assert.False(t, got.Succeeded)
	assert.Equal(t, "sh: exit status 4", got.Message)
}

func TestExecSuccess(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	res := execute(t, "exec", "sh", "-c", "echo hi")
	require.NoError(t, res.err)
	assert.Equal(t, "hi\n", res.stdout)
	assert.Empty(t, res.exits)
}

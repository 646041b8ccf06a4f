package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempWorkdir switches to a fresh directory for the duration of the test.
func inTempWorkdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	return dir
}

func executeInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestInitCmd_WritesRunAndLogSettings(t *testing.T) {
	dir := inTempWorkdir(t)

	out, err := executeInit(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+configFileName)

	contents, err := os.ReadFile(filepath.Join(dir, configFileName))
	require.NoError(t, err)

	for _, want := range []string{"run:", "mode: single", "strict_mode: false", "regions:", "max_backups: 3"} {
		assert.Contains(t, string(contents), want)
	}
}

func TestInitCmd_KeepsExistingConfig(t *testing.T) {
	dir := inTempWorkdir(t)

	target := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(target, []byte("run:\n  mode: deep\n"), 0o644))

	_, err := executeInit(t)
	require.Error(t, err)

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "run:\n  mode: deep\n", string(contents))
}

func TestInitCmd_ForceReplacesExistingConfig(t *testing.T) {
	dir := inTempWorkdir(t)

	target := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(target, []byte("stale: true\n"), 0o644))

	_, err := executeInit(t, "--force")
	require.NoError(t, err)

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "stale")
	assert.Contains(t, string(contents), "strict_mode")
}

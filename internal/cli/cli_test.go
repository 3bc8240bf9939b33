package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	err := Execute(context.Background(), args, Env{Out: out, Err: logs, Environ: []string{"CMDGEN_RELEASE=1"}})
	return out.String(), logs.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func project(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	testutil.WriteFiles(t, dir, testutil.Project())
	return dir, filepath.Join(dir, "cmdgen.hcl")
}

func TestBuildCommand(t *testing.T) {
	// Arrange
	dir, cfg := project(t)

	// Act
	_, logs, err := execute(t, "--config", cfg, "--log-format", "json", "build")

	// Assert
	require.NoError(t, err, logs)
	generated := testutil.ReadFile(t, dir, "commands_gen.go")
	assert.Contains(t, generated, "type WgseCommands struct {")
	assert.Contains(t, logs, `"msg":"Dispatch file generated."`)
}

func TestStageCommands(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := execute(t, "--config", cfg, "init")
	require.NoError(t, err)
	assert.Equal(t, "captured Command.Execute\n", out)

	out, _, err = execute(t, "--config", cfg, "collect", filepath.Join(dir, "handlers.go"))
	require.NoError(t, err)
	assert.Equal(t, "collected 2 commands\n", out)

	_, _, err = execute(t, "--config", cfg, "generate")
	require.NoError(t, err)

	out, _, err = execute(t, "--config", cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "interface: func (_ _) _() error")
	assert.Contains(t, out, "panic")

	out, _, err = execute(t, "--config", cfg, "clean")
	require.NoError(t, err)
	assert.Equal(t, "removed 2 command records\n", out)
}

func TestCollectWithoutInit(t *testing.T) {
	_, cfg := project(t)

	_, _, err := execute(t, "--config", cfg, "collect")

	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.ErrorIs(t, err, manifest.ErrInterfaceMissing)
	assert.Contains(t, err.Error(), "cmdgen init")
}

func TestUsageErrors(t *testing.T) {
	_, cfg := project(t)

	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag", "build"}},
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "extra args", args: []string{"--config", cfg, "list", "x"}},
		{name: "bad log level", args: []string{"--config", cfg, "--log-level", "loud", "list"}},
		{name: "bad strictness", args: []string{"--config", cfg, "--strictness", "lenient", "list"}},
		{name: "missing explicit config", args: []string{"--config", filepath.Join(t.TempDir(), "none.hcl"), "list"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			assert.Equal(t, ExitUsage, exitCode(t, err))
		})
	}
}

func TestInvalidConfigFile(t *testing.T) {
	dir, cfg := project(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdgen.hcl"), []byte("dispatch {"), 0o644))

	_, _, err := execute(t, "--config", cfg, "build")

	assert.Equal(t, ExitUsage, exitCode(t, err))
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "build")
}

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/crsops/pkg/testutil"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// stageDefinitions writes the sample definitions file to a real temp
// directory and points the extra-directory hint at it, isolating the
// well-known directories at the same time.
func stageDefinitions(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "system"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dir := t.TempDir()
	path := filepath.Join(dir, "epsg_operations.toml")
	require.NoError(t, os.WriteFile(path, []byte(testutil.SampleDefinitionsTOML), 0o644))
	t.Setenv("CRSOPS_EXTRA_DIRECTORY", dir)
}

func TestRootWithoutSubcommand(t *testing.T) {
	out, err := runCommand(t)
	require.Error(t, err)
	assert.Contains(t, out, "crsops")
}

func TestCrsCommand(t *testing.T) {
	out, err := runCommand(t, "crs", "EPSG:4326")
	require.NoError(t, err)
	assert.Contains(t, out, "code: \"4326\"")
	assert.Contains(t, out, "name: WGS 84")
}

func TestResolveCommand(t *testing.T) {
	stageDefinitions(t)

	out, err := runCommand(t, "resolve", "4230", "4326")
	require.NoError(t, err)
	assert.Contains(t, out, "code: 4230,4326")
	assert.Contains(t, out, "source: EPSG:4230")
	assert.Contains(t, out, "target: EPSG:4326")
	assert.NotContains(t, out, "derived")
}

func TestResolveCommandDerivesInverse(t *testing.T) {
	stageDefinitions(t)

	out, err := runCommand(t, "resolve", "4326", "4230")
	require.NoError(t, err)
	assert.Contains(t, out, "code: 4326,4230")
	assert.Contains(t, out, "derived: true")
}

func TestTransformCommand(t *testing.T) {
	stageDefinitions(t)

	out, err := runCommand(t, "transform", "4230", "4326", "3.084896111", "39.592654167")
	require.NoError(t, err)
	assert.Contains(t, out, "3.0844689952")
	assert.Contains(t, out, "39.5942357445")
}

func TestTransformCommandRejectsBadCoordinate(t *testing.T) {
	stageDefinitions(t)

	_, err := runCommand(t, "transform", "4230", "4326", "not-a-number", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x coordinate")
}

func TestOperationsCommandEmptyResult(t *testing.T) {
	stageDefinitions(t)

	out, err := runCommand(t, "operations", "nonexistent", "nonexistent")
	require.NoError(t, err)
	assert.Contains(t, out, "No operations found.")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "crsops version")
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCommand(t, "completion", "bash")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "crsops"))
}

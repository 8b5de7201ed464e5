package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/amc-preselect/internal/dataset"
	"github.com/Faultbox/amc-preselect/pkg/mesh/meshtest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "test.log")))
	err := execute(context.Background(), cmd)
	return out.String(), err
}

func fixtureDir(t *testing.T) string {
	dir := t.TempDir()
	meshtest.WriteSTL(t, dir, "a.stl", meshtest.Wedge(1), 2000)
	meshtest.WriteSTL(t, dir, "b.stl", meshtest.Cube(1), 5000)
	meshtest.WriteSTL(t, dir, "c.stl", meshtest.OpenBox(1), 1000)
	meshtest.WriteFile(t, dir, "d.txt", 10)
	return dir
}

func lines(s string) []string {
	return strings.Fields(strings.TrimSpace(s))
}

func TestSelectCommand(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "select", "-i", dir, "-s", "0.004")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.stl"), filepath.Join(dir, "a.stl")}, lines(out))

	out, err = run(t, "select", "-i", dir, "-s", "0.004", "-c", "0.4")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.stl")}, lines(out))

	out, err = run(t, "select", "-i", dir, "-s", "0.004", "-c", "0.4", "-v")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.stl")+"\t2.0 kB\n", out)
}

func TestSelectCommand_ExportIntoInputKeepsSources(t *testing.T) {
	dir := fixtureDir(t)
	before, err := os.ReadFile(filepath.Join(dir, "a.stl"))
	require.NoError(t, err)

	_, err = run(t, "select", "-i", dir, "-s", "0.004", "-c", "0.4", "--export", dir)
	assert.ErrorIs(t, err, dataset.ErrExportIntoSource)

	after, err := os.ReadFile(filepath.Join(dir, "a.stl"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExecute_LogsFailure(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	logFile := filepath.Join(t.TempDir(), "fail.log")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"select", "-s", "1", "--log-file", logFile})
	err := execute(context.Background(), cmd)
	require.Error(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "command failed")
	assert.Contains(t, string(content), "input path is required")
}

func TestSelectCommand_ManifestAndExport(t *testing.T) {
	dir := fixtureDir(t)
	manifest := filepath.Join(t.TempDir(), "selection.yaml")
	export := filepath.Join(t.TempDir(), "export")

	_, err := run(t, "select", "-i", dir, "-s", "1", "-c", "0.4", "-n", "1",
		"--manifest", manifest, "--export", export)
	require.NoError(t, err)

	m, err := dataset.ReadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.stl")}, m.Paths())
	assert.Equal(t, 3, m.SizeCandidates)
	assert.Len(t, m.Rejected, 1)

	copied, err := dataset.ListSamples(export, ".stl", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(export, "a.stl")}, copied)
}

func TestSelectCommand_Errors(t *testing.T) {
	_, err := run(t, "select", "-s", "1")
	assert.ErrorContains(t, err, "input path is required")

	_, err = run(t, "select", "-i", t.TempDir())
	assert.ErrorContains(t, err, "maximum file size is required")

	_, err = run(t, "select", "-i", filepath.Join(t.TempDir(), "missing"), "-s", "1")
	assert.ErrorContains(t, err, "input directory not found")
}

func TestInspectCommand(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "inspect", filepath.Join(dir, "a.stl"), filepath.Join(dir, "c.stl"))
	require.NoError(t, err)
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "not watertight")
}

func TestSamplesCommand(t *testing.T) {
	dir := t.TempDir()
	meshtest.WriteFile(t, dir, "x1.npz", 1)
	meshtest.WriteFile(t, dir, "x0.npz", 1)

	out, err := run(t, "samples", "--dir", dir, "--cutoff", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "x0.npz")}, lines(out))

	_, err = run(t, "samples")
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amcselect.yaml")

	_, err := run(t, "config", "init", path, "-i", "/data/stl", "-s", "2")
	require.NoError(t, err)

	out, err := run(t, "--config", path, "select")
	// The config file supplies input and size; the directory does not exist.
	assert.ErrorContains(t, err, "input directory not found")
	assert.Empty(t, strings.TrimSpace(out))
}

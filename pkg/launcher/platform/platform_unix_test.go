//go:build !windows

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSHelpers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "jruby.jar")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, Exists(OSFS{}, file))
	assert.False(t, IsDir(OSFS{}, file))
	assert.True(t, IsDir(OSFS{}, dir))
	assert.False(t, Exists(OSFS{}, filepath.Join(dir, "missing")))
}

func TestAccessChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "release")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	s := New()
	assert.True(t, s.Readable(file))
	assert.True(t, s.Writable(dir))
	assert.False(t, s.Readable(filepath.Join(dir, "missing")))
	assert.True(t, s.Exists(file))
}

func TestExecutable(t *testing.T) {
	exe, ok := New().Executable()
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(exe))
}

func TestSpawnPropagatesExitCode(t *testing.T) {
	sh, err := filepath.Abs("/bin/sh")
	require.NoError(t, err)
	if _, err := os.Stat(sh); err != nil {
		t.Skip("no /bin/sh")
	}

	code, err := New().Execute(sh, []string{"-c", "exit 3"}, true, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	code, err = New().Execute(sh, []string{"-c", "true"}, true, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestSpawnStartFailure(t *testing.T) {
	_, err := New().Execute(filepath.Join(t.TempDir(), "nope"), nil, true, hclog.NewNullLogger())
	require.Error(t, err)
}

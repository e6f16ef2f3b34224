// Package testhelper contains helpers to simplify tests
package testhelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TempDir creates a temp dir and returns a cleanup method
func TempDir(t *testing.T) (out string, cleanup func()) {
	t.Helper()

	out, err := os.MkdirTemp("", strings.ReplaceAll(t.Name(), "/", "_")+"_")
	require.NoError(t, err)
	// on macOS the temp dir is behind a symlink
	out, err = filepath.EvalSymlinks(out)
	require.NoError(t, err)

	cleanup = func() {
		require.NoError(t, os.RemoveAll(out))
	}
	return out, cleanup
}

// TempFile creates a temp file and returns a cleanup method
func TempFile(t *testing.T) (out *os.File, cleanup func()) {
	t.Helper()

	out, err := os.CreateTemp("", strings.ReplaceAll(t.Name(), "/", "_")+"_")
	require.NoError(t, err)

	cleanup = func() {
		require.NoError(t, out.Close())
		require.NoError(t, os.RemoveAll(out.Name()))
	}
	return out, cleanup
}

// WriteFiles writes the provided files in dir, creating the parent
// directories when needed.
// files is a map of path => content, paths are relative to dir
func WriteFiles(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()

	for p, content := range files {
		fullPath := filepath.Join(dir, p)
		require.NoError(t, fs.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, afero.WriteFile(fs, fullPath, []byte(content), 0o644))
	}
}

// ReadFile returns the content of the file at the given path
func ReadFile(t *testing.T, fs afero.Fs, p string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, p)
	require.NoError(t, err)
	return string(data)
}

// NewMemWorkTree returns an in-memory filesystem with an empty
// working tree at /repo
func NewMemWorkTree(t *testing.T) (fs afero.Fs, workTree string) {
	t.Helper()

	fs = afero.NewMemMapFs()
	workTree = filepath.Join(string(filepath.Separator), "repo")
	require.NoError(t, fs.MkdirAll(workTree, 0o755))
	return fs, workTree
}

// OsFs returns a filesystem backed by the OS
func OsFs() afero.Fs {
	return afero.NewOsFs()
}

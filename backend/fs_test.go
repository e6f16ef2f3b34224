package backend

import (
	"path/filepath"
	"testing"

	"github.com/Nivl/svcs/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("in memory", func(t *testing.T) {
		t.Parallel()

		fs, workTree := testhelper.NewMemWorkTree(t)
		b, err := New(workTree, Options{FS: fs})
		require.NoError(t, err)

		p := filepath.Join(workTree, "file")
		require.NoError(t, b.writeFileAtomic(p, []byte("first")))
		require.NoError(t, b.writeFileAtomic(p, []byte("second")))
		assert.Equal(t, "second", testhelper.ReadFile(t, fs, p))

		files, err := afero.ReadDir(fs, workTree)
		require.NoError(t, err)
		require.Len(t, files, 1, "temporary files should have been removed")
		assert.Equal(t, "file", files[0].Name())
	})

	t.Run("on disk", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		fs := afero.NewOsFs()
		b, err := New(dir, Options{FS: fs})
		require.NoError(t, err)

		p := filepath.Join(dir, "file")
		require.NoError(t, b.writeFileAtomic(p, []byte("content")))
		assert.Equal(t, "content", testhelper.ReadFile(t, fs, p))

		info, err := fs.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, "-rw-r--r--", info.Mode().Perm().String())
	})

	t.Run("missing directory should fail", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		b, err := New(dir, Options{FS: afero.NewOsFs()})
		require.NoError(t, err)

		err = b.writeFileAtomic(filepath.Join(dir, "nope", "file"), []byte("content"))
		require.Error(t, err)
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	fs, workTree := testhelper.NewMemWorkTree(t)
	testhelper.WriteFiles(t, fs, workTree, map[string]string{
		"src": "hello",
		"dst": "a much longer content",
	})
	src := filepath.Join(workTree, "src")
	dst := filepath.Join(workTree, "dst")
	require.NoError(t, copyFile(fs, src, dst))
	assert.Equal(t, "hello", testhelper.ReadFile(t, fs, dst))

	err := copyFile(fs, filepath.Join(workTree, "nope"), dst)
	require.Error(t, err)
}

package backend_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIdentity(t *testing.T) {
	t.Parallel()

	t.Run("missing file means no name", func(t *testing.T) {
		t.Parallel()

		id := backend.NewFileIdentity(afero.NewMemMapFs(), "/identity")
		name, err := id.Name()
		require.NoError(t, err)
		assert.Empty(t, name)
	})

	t.Run("should only read the first line", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/identity", []byte("John\r\nignored\n"), 0o644))
		id := backend.NewFileIdentity(fs, "/identity")
		name, err := id.Name()
		require.NoError(t, err)
		assert.Equal(t, "John", name)
	})

	t.Run("SetName should replace the name", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		id := backend.NewFileIdentity(fs, "/identity")
		require.NoError(t, id.SetName("John"))
		require.NoError(t, id.SetName("Jane Doe"))

		name, err := id.Name()
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", name)
		assert.Equal(t, "Jane Doe", testhelper.ReadFile(t, fs, "/identity"))
	})

	t.Run("SetName should reject multiline names", func(t *testing.T) {
		t.Parallel()

		id := backend.NewFileIdentity(afero.NewMemMapFs(), "/identity")
		err := id.SetName("John\nDoe")
		require.Error(t, err)
		assert.True(t, errors.Is(err, backend.ErrInvalidName), "unexpected error: %v", err)
	})
}

func TestStaticIdentity(t *testing.T) {
	t.Parallel()

	id := backend.StaticIdentity("John")
	name, err := id.Name()
	require.NoError(t, err)
	assert.Equal(t, "John", name)

	err = id.SetName("Jane")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrIdentityReadOnly), "unexpected error: %v", err)
}

func TestBackendIdentity(t *testing.T) {
	t.Parallel()

	b, fs, _ := newBackend(t)
	id := b.Identity()
	name, err := id.Name()
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, id.SetName("John"))
	assert.Equal(t, "John", testhelper.ReadFile(t, fs, filepath.Join(b.Path(), "identity")))

	name, err = b.Identity().Name()
	require.NoError(t, err)
	assert.Equal(t, "John", name)
}

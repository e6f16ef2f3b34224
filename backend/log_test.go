package backend_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Nivl/svcs/internal/testhelper"
	"github.com/Nivl/svcs/plumbing"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	t.Parallel()

	t.Run("empty log", func(t *testing.T) {
		t.Parallel()

		b, _, _ := newBackend(t)
		entries, err := b.LogEntries()
		require.NoError(t, err)
		assert.Empty(t, entries)

		head, err := b.LogHead()
		require.NoError(t, err)
		assert.Nil(t, head)
	})

	t.Run("entries should be sorted newest first", func(t *testing.T) {
		t.Parallel()

		b, fs, _ := newBackend(t)
		first := plumbing.NewLogEntry(plumbing.SumFingerprint([]byte("hello")), "alice", "first")
		second := plumbing.NewLogEntry(plumbing.SumFingerprint([]byte("world")), "bob", "second\nwith details")

		require.NoError(t, b.PrependLogEntry(first))
		head, err := b.LogHead()
		require.NoError(t, err)
		assert.Equal(t, first, head)

		require.NoError(t, b.PrependLogEntry(second))
		entries, err := b.LogEntries()
		require.NoError(t, err)
		assert.Equal(t, []*plumbing.LogEntry{second, first}, entries)

		expected := "commit " + second.Fingerprint.String() + "\n" +
			"Author: bob\n" +
			"second\nwith details\n" +
			"\n" +
			"commit " + first.Fingerprint.String() + "\n" +
			"Author: alice\n" +
			"first\n"
		assert.Equal(t, expected, testhelper.ReadFile(t, fs, filepath.Join(b.Path(), "log")))

		// no temporary file should be left behind
		files, err := afero.ReadDir(fs, b.Path())
		require.NoError(t, err)
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name())
		}
		assert.ElementsMatch(t, []string{"log"}, names)
	})

	t.Run("corrupted log should fail", func(t *testing.T) {
		t.Parallel()

		b, fs, _ := newBackend(t)
		testhelper.WriteFiles(t, fs, b.Path(), map[string]string{
			"log": "not a log\n",
		})
		_, err := b.LogEntries()
		require.Error(t, err)
		assert.True(t, errors.Is(err, plumbing.ErrLogCorrupted), "unexpected error: %v", err)

		err = b.PrependLogEntry(plumbing.NewLogEntry(plumbing.SumFingerprint([]byte("a")), "a", "a"))
		require.NoError(t, err, "prepending should not need to parse the log")
	})
}

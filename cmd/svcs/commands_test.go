package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nivl/svcs/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	res := run(t, dir, nil, "config")
	require.NoError(t, res.err)
	assert.Equal(t, "Please, tell me who you are.\n", res.stdout)

	res = run(t, dir, nil, "config", "John")
	require.NoError(t, res.err)
	assert.Equal(t, "The username is John.\n", res.stdout)

	res = run(t, dir, nil, "config")
	require.NoError(t, res.err)
	assert.Equal(t, "The username is John.\n", res.stdout)

	res = run(t, dir, nil, "config", "John\nDoe")
	require.Error(t, res.err)
	assert.Equal(t, exitFailure, exitCode(res.err))
}

func TestAdd(t *testing.T) {
	t.Parallel()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir"), 0o755))

	res := run(t, dir, nil, "add")
	require.NoError(t, res.err)
	assert.Equal(t, "Add a file to the index.\n", res.stdout)

	res = run(t, dir, nil, "add", "a.txt")
	require.NoError(t, res.err)
	assert.Equal(t, "The file 'a.txt' is tracked.\n", res.stdout)

	res = run(t, dir, nil, "add", "b.txt")
	require.NoError(t, res.err)

	res = run(t, dir, nil, "add", "nope.txt")
	require.Error(t, res.err)
	assert.Equal(t, "Can't find 'nope.txt'.", res.err.Error())
	assert.Equal(t, exitNotFound, exitCode(res.err))

	res = run(t, dir, nil, "add", "dir")
	require.Error(t, res.err)
	assert.Equal(t, exitUserInput, exitCode(res.err))

	res = run(t, dir, nil, "add")
	require.NoError(t, res.err)
	assert.Equal(t, "Tracked files:\na.txt\nb.txt\n", res.stdout)
}

func TestCommit(t *testing.T) {
	t.Parallel()

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		res := run(t, dir, nil, "commit")
		require.Error(t, res.err)
		assert.Equal(t, "Message was not passed.", res.err.Error())
		assert.Equal(t, exitUserInput, exitCode(res.err))

		res = run(t, dir, nil, "commit", "first")
		require.Error(t, res.err)
		assert.Equal(t, "Nothing tracked, add a file to the index.", res.err.Error())
		assert.Equal(t, exitUserInput, exitCode(res.err))

		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
		res = run(t, dir, nil, "add", "a.txt")
		require.NoError(t, res.err)

		res = run(t, dir, nil, "commit", "x\ncommit "+helloFingerprint+"\nAuthor: Mallory\nfake")
		require.Error(t, res.err)
		assert.Equal(t, exitUserInput, exitCode(res.err))
		res = run(t, dir, nil, "log")
		require.NoError(t, res.err)
		assert.Equal(t, "No commits yet.\n", res.stdout)

		require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))

		res = run(t, dir, nil, "commit", "first")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "a.txt")
		assert.Equal(t, exitFailure, exitCode(res.err))
	})

	t.Run("locked repository", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
		res := run(t, dir, nil, "add", "a.txt")
		require.NoError(t, res.err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vcs", "lock"), []byte("other"), 0o644))

		res = run(t, dir, nil, "commit", "first")
		require.Error(t, res.err)
		assert.Equal(t, "another svcs process is running", res.err.Error())
		assert.Equal(t, exitLocked, exitCode(res.err))
	})
}

// TestWorkflow runs all the commands the way a user would
func TestWorkflow(t *testing.T) {
	t.Parallel()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)
	file := filepath.Join(dir, "a.txt")

	res := run(t, dir, nil, "log")
	require.NoError(t, res.err)
	assert.Equal(t, "No commits yet.\n", res.stdout)

	res = run(t, dir, nil, "config", "John")
	require.NoError(t, res.err)

	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))
	res = run(t, dir, nil, "add", "a.txt")
	require.NoError(t, res.err)

	res = run(t, dir, nil, "commit", "first")
	require.NoError(t, res.err)
	assert.Equal(t, "Changes are committed.\n", res.stdout)

	res = run(t, dir, nil, "commit", "again")
	require.NoError(t, res.err)
	assert.Equal(t, "Nothing to commit.\n", res.stdout)

	require.NoError(t, os.WriteFile(file, []byte("bye"), 0o644))
	res = run(t, dir, nil, "commit", "second", "commit")
	require.NoError(t, res.err)
	assert.Equal(t, "Changes are committed.\n", res.stdout)

	res = run(t, dir, nil, "log")
	require.NoError(t, res.err)
	lines := strings.Split(res.stdout, "\n")
	require.Len(t, lines, 8, res.stdout)
	byeFingerprint := strings.TrimPrefix(lines[0], "commit ")
	expected := "commit " + byeFingerprint + "\n" +
		"Author: John\n" +
		"second commit\n" +
		"\n" +
		"commit " + helloFingerprint + "\n" +
		"Author: John\n" +
		"first\n"
	assert.Equal(t, expected, res.stdout)

	res = run(t, dir, nil, "checkout")
	require.Error(t, res.err)
	assert.Equal(t, "Commit id was not passed.", res.err.Error())
	assert.Equal(t, exitUserInput, exitCode(res.err))

	res = run(t, dir, nil, "checkout", "deadbeef")
	require.Error(t, res.err)
	assert.Equal(t, "Commit does not exist.", res.err.Error())
	assert.Equal(t, exitNotFound, exitCode(res.err))

	res = run(t, dir, nil, "checkout", helloFingerprint)
	require.NoError(t, res.err)
	assert.Equal(t, "Switched to commit "+helloFingerprint+".\n", res.stdout)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	res = run(t, dir, nil, "checkout", byeFingerprint)
	require.NoError(t, res.err)
	data, err = os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))
}

package smoke_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nivl/svcs"
	"github.com/Nivl/svcs/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingOnNewRepo(t *testing.T) {
	t.Parallel()

	d, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	// Create a new repo
	r, err := svcs.InitRepository(d)
	require.NoError(t, err, "failed creating a repo")
	t.Cleanup(func() {
		require.NoError(t, r.Close(), "failed closing repo")
	})
	require.NoError(t, r.SetUsername("John Doe"))

	// Add new files to the repo
	testhelper.WriteFiles(t, testhelper.OsFs(), d, map[string]string{
		"README.md":   "Hello Wrld\n",
		"src/main.go": "package main\n",
	})
	require.NoError(t, r.Add("README.md"), "failed adding readme")
	require.NoError(t, r.Add(filepath.Join("src", "main.go")), "failed adding main.go")

	initialCommit, err := r.Commit("Initial commit")
	require.NoError(t, err, "failed creating the initial commit")
	assert.Equal(t, "John Doe", initialCommit.Author)

	// Oops, we have a typo in our Readme
	readme := filepath.Join(d, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("Hello World\n"), 0o644))
	fixCommit, err := r.Commit("Fix typo")
	require.NoError(t, err, "failed creating the fix")
	require.NotEqual(t, initialCommit.Fingerprint, fixCommit.Fingerprint)

	// Another process should see the same history
	r2, err := svcs.OpenRepository(d)
	require.NoError(t, err, "failed opening the repo")
	t.Cleanup(func() {
		require.NoError(t, r2.Close(), "failed closing repo")
	})
	entries, err := r2.Log()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, fixCommit, entries[0])
	assert.Equal(t, initialCommit, entries[1])

	// Let's go back in time
	require.NoError(t, r2.Checkout(initialCommit.Fingerprint.String()))
	data, err := os.ReadFile(readme)
	require.NoError(t, err)
	assert.Equal(t, "Hello Wrld\n", string(data))

	require.NoError(t, r2.Checkout(fixCommit.Fingerprint.String()))
	data, err = os.ReadFile(readme)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", string(data))
}

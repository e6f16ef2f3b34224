// Package vcspath contains consts and methods to work with path inside
// the repository directory
package vcspath

import "path/filepath"

// Repository files and directories
const (
	DefaultRepoDirName = "vcs"
	ConfigPath         = "config"
	IndexPath          = "index"
	IdentityPath       = "identity"
	LogPath            = "log"
	LockPath           = "lock"
	CommitsPath        = "commits"
)

// CommitPath returns the path of the directory holding the files of
// a commit, relative to the repository directory
// Ex. the commit 3338be69[...] is stored in commits/3338be69[...]
func CommitPath(fingerprint string) string {
	return filepath.Join(CommitsPath, fingerprint)
}

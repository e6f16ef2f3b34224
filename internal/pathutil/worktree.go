package pathutil

import (
	"errors"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// ErrOutsideWorkTree is an error returned when a path is expected to be
// inside the working tree but isn't
var ErrOutsideWorkTree = errors.New("path is outside the working tree")

// Resolve returns the path p as seen from the working tree.
// Absolute paths are returned untouched, relative paths are appended
// to the working tree
func Resolve(workTree, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workTree, p)
}

// RelativeTo returns the path p relative to the working tree.
// ErrOutsideWorkTree is returned if p doesn't live in the working tree
// Ex. with a working tree at /repo:
//   - "a/../b.txt" returns "b.txt"
//   - "/repo/dir/c.txt" returns "dir/c.txt" ("dir\c.txt" on windows)
//   - "../d.txt" returns ErrOutsideWorkTree
func RelativeTo(workTree, p string) (string, error) {
	rel, err := filepath.Rel(workTree, Resolve(workTree, p))
	if err != nil {
		return "", xerrors.Errorf("%s: %w", p, ErrOutsideWorkTree)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", xerrors.Errorf("%s: %w", p, ErrOutsideWorkTree)
	}
	return rel, nil
}

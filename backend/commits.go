package backend

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/Nivl/svcs/plumbing"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// ErrCommitNotFound is returned when a fingerprint doesn't match any
// commit of the commit store
var ErrCommitNotFound = errors.New("commit not found")

// commitPath returns the absolute path of the directory of a commit
func (b *Backend) commitPath(fp plumbing.Fingerprint) string {
	return b.path(vcspath.CommitPath(fp.String()))
}

// HasCommit returns whether a commit exists in the commit store
func (b *Backend) HasCommit(fp plumbing.Fingerprint) (bool, error) {
	if _, ok := b.commits.Get(fp); ok {
		return true, nil
	}

	exists, err := afero.DirExists(b.fs, b.commitPath(fp))
	if err != nil {
		return false, xerrors.Errorf("could not check commit %s: %w", fp.String(), err)
	}
	if exists {
		b.commits.Add(fp, struct{}{})
	}
	return exists, nil
}

// WriteCommit copies the current content of the given files into the
// commit store, under the provided fingerprint.
// The files are named according to the store layout of the repository.
// Writing the same files twice under the same fingerprint doesn't
// change anything
func (b *Backend) WriteCommit(fp plumbing.Fingerprint, paths []string) error {
	cfg, err := b.Config()
	if err != nil {
		return err
	}

	// names are checked before anything is written
	names := make([]string, len(paths))
	stored := make(map[string]string, len(paths))
	for i, p := range paths {
		name, err := b.storedName(cfg.StoreLayout, p)
		if err != nil {
			return err
		}
		if prev, ok := stored[name]; ok && prev != p {
			b.logger.Warn("files share the same name in the commit store, the last one wins",
				zap.String("name", name),
				zap.String("overwritten", prev),
				zap.String("path", p))
		}
		stored[name] = p
		names[i] = name
	}

	dir := b.commitPath(fp)
	if err = b.fs.MkdirAll(dir, 0o755); err != nil {
		return xerrors.Errorf("could not create directory %s: %w", dir, err)
	}
	for i, p := range paths {
		dst := filepath.Join(dir, names[i])
		if err = b.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", filepath.Dir(dst), err)
		}
		if err = copyFile(b.fs, pathutil.Resolve(b.workTree, p), dst); err != nil {
			return xerrors.Errorf("could not store %s: %w", p, err)
		}
		b.logger.Debug("file stored",
			zap.String("commit", fp.String()),
			zap.String("path", p),
			zap.String("name", names[i]))
	}

	b.commits.Add(fp, struct{}{})
	return nil
}

// storedName returns the name of a file in the commit store
func (b *Backend) storedName(layout StoreLayout, p string) (string, error) {
	switch layout {
	case StoreLayoutPath:
		return pathutil.RelativeTo(b.workTree, p)
	case StoreLayoutBasename:
		return filepath.Base(p), nil
	default:
		return "", xerrors.Errorf("store layout %q: %w", layout, ErrInvalidConfig)
	}
}

// CommitFiles returns the names of the files stored in a commit,
// sorted alphabetically. Names use "/" as separator.
// ErrCommitNotFound is returned if the commit doesn't exist
func (b *Backend) CommitFiles(fp plumbing.Fingerprint) ([]string, error) {
	exists, err := b.HasCommit(fp)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, xerrors.Errorf("%s: %w", fp.String(), ErrCommitNotFound)
	}

	dir := b.commitPath(fp)
	var names []string
	err = afero.Walk(b.fs, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not list the files of %s: %w", fp.String(), err)
	}
	sort.Strings(names)
	return names, nil
}

// RestoreCommit copies every file of a commit into the working tree,
// overwriting the files that have the same name.
// ErrCommitNotFound is returned if the commit doesn't exist, in which
// case the working tree is left untouched.
// If a copy fails, the files already restored are not rolled back
func (b *Backend) RestoreCommit(fp plumbing.Fingerprint) error {
	names, err := b.CommitFiles(fp)
	if err != nil {
		return err
	}

	dir := b.commitPath(fp)
	for _, name := range names {
		src := filepath.Join(dir, filepath.FromSlash(name))
		dst := filepath.Join(b.workTree, filepath.FromSlash(name))
		if err = b.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", filepath.Dir(dst), err)
		}
		if err = copyFile(b.fs, src, dst); err != nil {
			return xerrors.Errorf("could not restore %s: %w", name, err)
		}
		b.logger.Debug("file restored", zap.String("commit", fp.String()), zap.String("path", name))
	}
	return nil
}

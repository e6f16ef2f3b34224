package backend

import (
	"errors"
	"os"
	"strings"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// ErrPathNotFound is returned when a path that should be tracked
// doesn't exist in the working tree
var ErrPathNotFound = errors.New("path not found")

// Tracked returns the paths of the tracked files, in the order they
// have been added. Paths are relative to the working tree unless they
// were tracked as absolute paths.
// An empty list is returned if nothing is tracked
func (b *Backend) Tracked() ([]string, error) {
	p := b.path(vcspath.IndexPath)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, xerrors.Errorf("could not read %s: %w", p, err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// Track appends the given path to the index.
// The path is stored as provided, so tracking the same file twice (or
// using 2 different spellings) creates 2 entries.
// ErrPathNotFound is returned if the file doesn't exist
func (b *Backend) Track(p string) (err error) {
	info, err := b.fs.Stat(pathutil.Resolve(b.workTree, p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return xerrors.Errorf("%s: %w", p, ErrPathNotFound)
		}
		return xerrors.Errorf("could not check %s: %w", p, err)
	}
	if info.IsDir() {
		return xerrors.Errorf("%s: %w", p, pathutil.ErrIsDirectory)
	}

	if err = b.ensureRoot(); err != nil {
		return err
	}
	index := b.path(vcspath.IndexPath)
	f, err := b.fs.OpenFile(index, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return xerrors.Errorf("could not open %s: %w", index, err)
	}
	defer errutil.Close(f, &err)

	if _, err = f.Write([]byte(p + "\n")); err != nil {
		return xerrors.Errorf("could not add %s to the index: %w", p, err)
	}
	b.logger.Debug("file tracked", zap.String("path", p))
	return nil
}

package svcs

import (
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Add adds the file at the given path to the index.
// The path is relative to the working tree unless absolute, and is
// stored as provided. backend.ErrPathNotFound is returned if the file
// doesn't exist
func (r *Repository) Add(path string) error {
	if err := r.backend.Track(path); err != nil {
		return xerrors.Errorf("could not add %s: %w", path, err)
	}
	r.logger.Debug("file added", zap.String("path", path))
	return nil
}

// Tracked returns the files of the index, in the order they have
// been added
func (r *Repository) Tracked() ([]string, error) {
	return r.backend.Tracked()
}

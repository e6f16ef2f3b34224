package backend

import (
	"errors"
	"os"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// ErrLocked is returned when another process is already modifying the
// repository
var ErrLocked = errors.New("repository is locked")

// Lock represents an advisory lock on a repository
type Lock struct {
	fs     afero.Fs
	path   string
	token  string
	logger *zap.Logger
}

// Lock acquires the lock of the repository. The lock must be released
// by calling Close().
// ErrLocked is returned if the lock is already held.
// If locking is disabled in the config, a no-op lock is returned
func (b *Backend) Lock() (*Lock, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	if !cfg.Lock {
		return &Lock{}, nil
	}

	if err = b.ensureRoot(); err != nil {
		return nil, err
	}
	p := b.path(vcspath.LockPath)
	f, err := b.fs.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, xerrors.Errorf("%s exists: %w", p, ErrLocked)
		}
		return nil, xerrors.Errorf("could not create %s: %w", p, err)
	}
	token := uuid.NewString()
	_, err = f.Write([]byte(token))
	errutil.Close(f, &err)
	if err != nil {
		b.fs.Remove(p) //nolint:errcheck // it failed anyway
		return nil, xerrors.Errorf("could not write %s: %w", p, err)
	}
	b.logger.Debug("repository locked", zap.String("token", token))
	return &Lock{
		fs:     b.fs,
		path:   p,
		token:  token,
		logger: b.logger,
	}, nil
}

// Close releases the lock. The lock file is only removed if it still
// belongs to this lock
func (l *Lock) Close() error {
	if l.fs == nil {
		return nil
	}
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return xerrors.Errorf("could not read %s: %w", l.path, err)
	}
	if string(data) != l.token {
		l.logger.Warn("lock file has been replaced, leaving it", zap.String("path", l.path))
		return nil
	}
	if err = l.fs.Remove(l.path); err != nil {
		return xerrors.Errorf("could not remove %s: %w", l.path, err)
	}
	l.fs = nil
	return nil
}

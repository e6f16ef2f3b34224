package backend

import (
	"errors"
	"os"

	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/Nivl/svcs/plumbing"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// LogEntries returns all the entries of the commit log, newest first.
// An empty list is returned if nothing has been committed yet
func (b *Backend) LogEntries() ([]*plumbing.LogEntry, error) {
	p := b.path(vcspath.LogPath)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, xerrors.Errorf("could not read %s: %w", p, err)
	}
	entries, err := plumbing.ParseLog(data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse %s: %w", p, err)
	}
	return entries, nil
}

// LogHead returns the most recent entry of the commit log, or nil if
// nothing has been committed yet
func (b *Backend) LogHead() (*plumbing.LogEntry, error) {
	entries, err := b.LogEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// PrependLogEntry adds an entry at the top of the commit log.
// The log is rewritten atomically, a failure leaves the previous log
// untouched
func (b *Backend) PrependLogEntry(e *plumbing.LogEntry) error {
	p := b.path(vcspath.LogPath)
	old, err := afero.ReadFile(b.fs, p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return xerrors.Errorf("could not read %s: %w", p, err)
	}

	data := plumbing.PrependLog(old, e)

	if err = b.ensureRoot(); err != nil {
		return err
	}
	if err = b.writeFileAtomic(p, data); err != nil {
		return xerrors.Errorf("could not update the log: %w", err)
	}
	b.logger.Debug("log updated", zap.String("commit", e.Fingerprint.String()))
	return nil
}

package svcs

import (
	"strings"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/Nivl/svcs/plumbing"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Commit creates a snapshot of all the tracked files and records it
// in the log with the given message.
//
// ErrNothingToCommit is returned if the files didn't change since the
// last commit, in which case nothing is written.
// The index is left untouched, the same files stay tracked for the
// next commit
func (r *Repository) Commit(message string) (entry *plumbing.LogEntry, err error) {
	message = strings.TrimRight(message, "\r\n")
	if message == "" {
		return nil, ErrMessageRequired
	}
	if plumbing.ContainsLogHeader(message) {
		return nil, xerrors.Errorf("message cannot contain a commit header: %w", ErrInvalidMessage)
	}

	// nothing is written when the index is empty
	paths, err := r.backend.Tracked()
	if err != nil {
		return nil, xerrors.Errorf("could not read the index: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNothingTracked
	}

	lock, err := r.backend.Lock()
	if err != nil {
		return nil, xerrors.Errorf("could not lock the repository: %w", err)
	}
	defer errutil.Close(lock, &err)

	// the index may have changed before the lock was taken
	paths, err = r.backend.Tracked()
	if err != nil {
		return nil, xerrors.Errorf("could not read the index: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNothingTracked
	}

	fullPaths := make([]string, len(paths))
	for i, p := range paths {
		fullPaths[i] = pathutil.Resolve(r.workTree, p)
	}
	fp, err := plumbing.ComputeFingerprint(r.backend.FS(), fullPaths)
	if err != nil {
		return nil, xerrors.Errorf("could not compute the fingerprint: %w", err)
	}
	r.logger.Debug("fingerprint computed",
		zap.String("fingerprint", fp.String()),
		zap.Int("files", len(paths)))

	head, err := r.backend.LogHead()
	if err != nil {
		return nil, xerrors.Errorf("could not get the last commit: %w", err)
	}
	if head != nil && head.Fingerprint == fp {
		r.logger.Debug("files unchanged since the last commit", zap.String("fingerprint", fp.String()))
		return nil, ErrNothingToCommit
	}

	author, err := r.identity.Name()
	if err != nil {
		return nil, xerrors.Errorf("could not get the author: %w", err)
	}

	if err = r.backend.WriteCommit(fp, paths); err != nil {
		return nil, xerrors.Errorf("could not store the files: %w", err)
	}
	entry = plumbing.NewLogEntry(fp, author, message)
	if err = r.backend.PrependLogEntry(entry); err != nil {
		return nil, xerrors.Errorf("could not log commit %s: %w", fp.String(), err)
	}
	r.logger.Debug("commit created", zap.String("fingerprint", fp.String()), zap.String("author", author))
	return entry, nil
}

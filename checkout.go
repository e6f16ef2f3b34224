package svcs

import (
	"regexp"

	"github.com/Nivl/svcs/backend"
	"github.com/Nivl/svcs/internal/errutil"
	"github.com/Nivl/svcs/plumbing"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

var commitIDRule = validation.Match(regexp.MustCompile("^[0-9a-f]{64}$"))

// Checkout restores the files of the given commit into the working
// tree. Files that are not part of the commit are left untouched.
// backend.ErrCommitNotFound is returned if id doesn't match any
// commit, in which case nothing is modified
func (r *Repository) Checkout(id string) (err error) {
	if id == "" {
		return ErrCommitIDRequired
	}
	if err = validation.Validate(id, commitIDRule); err != nil {
		return xerrors.Errorf("%s: %w", id, backend.ErrCommitNotFound)
	}
	fp, err := plumbing.NewFingerprintFromStr(id)
	if err != nil {
		return xerrors.Errorf("%s: %w", id, backend.ErrCommitNotFound)
	}

	exists, err := r.backend.HasCommit(fp)
	if err != nil {
		return xerrors.Errorf("could not check commit %s: %w", id, err)
	}
	if !exists {
		return xerrors.Errorf("%s: %w", id, backend.ErrCommitNotFound)
	}

	lock, err := r.backend.Lock()
	if err != nil {
		return xerrors.Errorf("could not lock the repository: %w", err)
	}
	defer errutil.Close(lock, &err)

	if err = r.backend.RestoreCommit(fp); err != nil {
		return xerrors.Errorf("could not checkout %s: %w", id, err)
	}
	r.logger.Debug("commit restored", zap.String("fingerprint", id))
	return nil
}

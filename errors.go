package svcs

import "errors"

// List of errors caused by invalid user inputs
var (
	ErrMessageRequired  = errors.New("a commit message is required")
	ErrInvalidMessage   = errors.New("invalid commit message")
	ErrCommitIDRequired = errors.New("a commit id is required")
	ErrNothingTracked   = errors.New("nothing is tracked")
)

// ErrNothingToCommit is returned when the tracked files haven't changed
// since the last commit. This isn't a failure
var ErrNothingToCommit = errors.New("nothing to commit")

// IsUserError returns whether err has been caused by an invalid user
// input
func IsUserError(err error) bool {
	return errors.Is(err, ErrMessageRequired) ||
		errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, ErrCommitIDRequired) ||
		errors.Is(err, ErrNothingTracked)
}

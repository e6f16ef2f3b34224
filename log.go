package svcs

import (
	"github.com/Nivl/svcs/plumbing"
)

// Log returns all the commits of the repository, newest first
func (r *Repository) Log() ([]*plumbing.LogEntry, error) {
	return r.backend.LogEntries()
}

// Head returns the most recent commit, or nil if nothing has been
// committed yet
func (r *Repository) Head() (*plumbing.LogEntry, error) {
	return r.backend.LogHead()
}

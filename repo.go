// Package svcs contains methods to track files, snapshot them and
// restore any snapshot
package svcs

import (
	"errors"
	"path/filepath"

	"github.com/Nivl/svcs/backend"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// ErrRepositoryExists is returned when trying to initialize a
// repository that already exists
var ErrRepositoryExists = errors.New("repository already exists")

// Repository represents a working tree and the directory that keeps
// its history.
// The history is made of commits, each commit being a snapshot of all
// the tracked files, identified by the fingerprint of their content
type Repository struct {
	workTree string
	backend  *backend.Backend
	identity backend.IdentityStore
	logger   *zap.Logger
}

// Options contains all the optional data used to create or open a
// repository
type Options struct {
	// FS represents the filesystem holding the working tree and the
	// repository.
	// By default the regular filesystem will be used
	FS afero.Fs
	// RepoDirName represents the name of the directory containing the
	// repository, relative to the working tree.
	// Defaults to "vcs"
	RepoDirName string
	// Identity is used to know who is committing.
	// By default the identity file of the repository is used
	Identity backend.IdentityStore
	// Logger is used to report what the repository is doing.
	// Defaults to a no-op logger
	Logger *zap.Logger
}

// InitRepository creates a new repository in the given working tree
func InitRepository(workTree string) (*Repository, error) {
	return InitRepositoryWithOptions(workTree, Options{})
}

// InitRepositoryWithOptions creates a new repository in the given
// working tree.
// ErrRepositoryExists is returned if the working tree already has a
// repository
func InitRepositoryWithOptions(workTree string, opts Options) (*Repository, error) {
	r, err := newRepository(workTree, opts)
	if err != nil {
		return nil, err
	}

	if err = r.init(); err != nil {
		r.Close() //nolint:errcheck // it already failed
		return nil, err
	}
	r.logger.Debug("repository initialized", zap.String("path", r.backend.Path()))
	return r, nil
}

func (r *Repository) init() error {
	initialized, err := r.backend.IsInitialized()
	if err != nil {
		return xerrors.Errorf("could not check if the repository exists: %w", err)
	}
	if initialized {
		return ErrRepositoryExists
	}
	if err = r.backend.Init(); err != nil {
		return xerrors.Errorf("could not initialize the repository: %w", err)
	}
	return nil
}

// OpenRepository opens the repository of the given working tree
func OpenRepository(workTree string) (*Repository, error) {
	return OpenRepositoryWithOptions(workTree, Options{})
}

// OpenRepositoryWithOptions opens the repository of the given working
// tree.
// The repository doesn't have to exist: its files are created the
// first time they are needed
func OpenRepositoryWithOptions(workTree string, opts Options) (*Repository, error) {
	r, err := newRepository(workTree, opts)
	if err != nil {
		return nil, err
	}

	if _, err = r.backend.Config(); err != nil {
		r.Close() //nolint:errcheck // it already failed
		return nil, xerrors.Errorf("could not load the config: %w", err)
	}
	return r, nil
}

func newRepository(workTree string, opts Options) (*Repository, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	workTree, err := filepath.Abs(workTree)
	if err != nil {
		return nil, xerrors.Errorf("could not get the absolute path of %s: %w", workTree, err)
	}

	b, err := backend.New(workTree, backend.Options{
		FS:          opts.FS,
		RepoDirName: opts.RepoDirName,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, xerrors.Errorf("could not create the backend: %w", err)
	}

	r := &Repository{
		workTree: workTree,
		backend:  b,
		identity: opts.Identity,
		logger:   opts.Logger,
	}
	if r.identity == nil {
		r.identity = b.Identity()
	}
	return r, nil
}

// WorkTree returns the path of the working tree
func (r *Repository) WorkTree() string {
	return r.workTree
}

// Path returns the path of the directory containing the repository
func (r *Repository) Path() string {
	return r.backend.Path()
}

// Config returns the config of the repository
func (r *Repository) Config() (*backend.Config, error) {
	return r.backend.Config()
}

// Close frees the resources used by the repository
func (r *Repository) Close() error {
	return r.backend.Close()
}

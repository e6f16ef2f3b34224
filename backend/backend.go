// Package backend contains the persistence layer of a repository: the
// index, the commit store, the commit log, the identity and the config.
// Everything is stored in a single directory of the working tree.
package backend

import (
	"path/filepath"

	"github.com/Nivl/svcs/internal/cache"
	"github.com/Nivl/svcs/internal/pathutil"
	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/Nivl/svcs/plumbing"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Backend is a Backend implementation that uses a filesystem to
// store data
type Backend struct {
	fs       afero.Fs
	root     string
	workTree string
	logger   *zap.Logger

	// commits contains the fingerprints of the commits known to exist.
	// commits are immutable so a positive answer never gets stale
	commits *cache.LRU[plumbing.Fingerprint, struct{}]
	config  *Config
}

// Options contains all the optional data used to create a Backend
type Options struct {
	// FS represents the filesystem holding both the working tree and
	// the repository.
	// Defaults to the regular filesystem
	FS afero.Fs
	// RepoDirName represents the name of the directory containing the
	// repository, relative to the working tree.
	// Defaults to vcspath.DefaultRepoDirName
	RepoDirName string
	// Logger is used to report what the backend is doing.
	// Defaults to a no-op logger
	Logger *zap.Logger
	// CacheSize represents the number of commits kept in memory.
	// Defaults to cache.DefaultSize
	CacheSize int
}

// New returns a new Backend for the given working tree
func New(workTree string, opts Options) (*Backend, error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.RepoDirName == "" {
		opts.RepoDirName = vcspath.DefaultRepoDirName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	commits, err := cache.NewLRU[plumbing.Fingerprint, struct{}](opts.CacheSize)
	if err != nil {
		return nil, xerrors.Errorf("could not create the commit cache: %w", err)
	}

	workTree = filepath.Clean(workTree)
	return &Backend{
		fs:       opts.FS,
		workTree: workTree,
		root:     pathutil.Resolve(workTree, opts.RepoDirName),
		logger:   opts.Logger,
		commits:  commits,
	}, nil
}

// Init creates the repository directory and persists the default
// config. Existing data are left untouched
func (b *Backend) Init() error {
	dirs := []string{
		b.root,
		b.path(vcspath.CommitsPath),
	}
	for _, d := range dirs {
		if err := b.fs.MkdirAll(d, 0o755); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	exists, err := afero.Exists(b.fs, b.path(vcspath.ConfigPath))
	if err != nil {
		return xerrors.Errorf("could not check the config: %w", err)
	}
	if !exists {
		if err = b.SaveConfig(DefaultConfig()); err != nil {
			return xerrors.Errorf("could not set the default config: %w", err)
		}
	}
	return nil
}

// IsInitialized returns whether the repository directory exists
func (b *Backend) IsInitialized() (bool, error) {
	return afero.DirExists(b.fs, b.root)
}

// Path returns the path of the repository directory
func (b *Backend) Path() string {
	return b.root
}

// WorkTree returns the path of the working tree
func (b *Backend) WorkTree() string {
	return b.workTree
}

// FS returns the filesystem used by the backend
func (b *Backend) FS() afero.Fs {
	return b.fs
}

// Close frees the resources used by the backend
func (b *Backend) Close() error {
	b.commits.Clear()
	return nil
}

// path returns the absolute path of a file of the repository
func (b *Backend) path(p ...string) string {
	return filepath.Join(append([]string{b.root}, p...)...)
}

// ensureRoot creates the repository directory if it doesn't exist yet
func (b *Backend) ensureRoot() error {
	if err := b.fs.MkdirAll(b.root, 0o755); err != nil {
		return xerrors.Errorf("could not create directory %s: %w", b.root, err)
	}
	return nil
}

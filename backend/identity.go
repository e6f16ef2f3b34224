package backend

import (
	"errors"
	"os"
	"strings"

	"github.com/Nivl/svcs/internal/vcspath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var (
	// ErrInvalidName is returned when a username cannot be stored
	ErrInvalidName = errors.New("invalid username")
	// ErrIdentityReadOnly is returned when trying to change the
	// username of an identity that cannot be modified
	ErrIdentityReadOnly = errors.New("identity is read-only")
)

// IdentityStore represents an object that knows who is using the
// repository
type IdentityStore interface {
	// Name returns the username, or an empty string if it has not
	// been set
	Name() (string, error)
	// SetName replaces the username
	SetName(name string) error
}

// FileIdentity is an IdentityStore that keeps the username in a file
type FileIdentity struct {
	fs   afero.Fs
	path string
}

var _ IdentityStore = (*FileIdentity)(nil)

// NewFileIdentity returns an IdentityStore that uses the file at the
// given path
func NewFileIdentity(fs afero.Fs, path string) *FileIdentity {
	return &FileIdentity{
		fs:   fs,
		path: path,
	}
}

// Name returns the first line of the identity file
func (id *FileIdentity) Name() (string, error) {
	data, err := afero.ReadFile(id.fs, id.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", xerrors.Errorf("could not read %s: %w", id.path, err)
	}
	name, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSuffix(name, "\r"), nil
}

// SetName overwrites the identity file with the given name.
// The name cannot span multiple lines
func (id *FileIdentity) SetName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return xerrors.Errorf("name cannot contain a new line: %w", ErrInvalidName)
	}
	if err := afero.WriteFile(id.fs, id.path, []byte(name), 0o644); err != nil {
		return xerrors.Errorf("could not write %s: %w", id.path, err)
	}
	return nil
}

// StaticIdentity is an IdentityStore that always returns the same
// username
type StaticIdentity string

var _ IdentityStore = StaticIdentity("")

// Name returns the username
func (id StaticIdentity) Name() (string, error) {
	return string(id), nil
}

// SetName always returns ErrIdentityReadOnly
func (id StaticIdentity) SetName(string) error {
	return ErrIdentityReadOnly
}

// Identity returns an IdentityStore backed by the identity file of the
// repository
func (b *Backend) Identity() IdentityStore {
	return &repoIdentity{
		FileIdentity: NewFileIdentity(b.fs, b.path(vcspath.IdentityPath)),
		b:            b,
	}
}

// repoIdentity is a FileIdentity that creates the repository directory
// on write
type repoIdentity struct {
	*FileIdentity
	b *Backend
}

func (id *repoIdentity) SetName(name string) error {
	if err := id.b.ensureRoot(); err != nil {
		return err
	}
	return id.FileIdentity.SetName(name)
}

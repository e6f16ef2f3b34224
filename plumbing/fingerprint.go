// Package plumbing contains the low level types of a repository: the
// fingerprints identifying commits and the entries of the commit log
package plumbing

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/spf13/afero"
	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

const (
	// FingerprintSize is the length of a fingerprint, in bytes
	FingerprintSize = 32
	// FingerprintHexSize is the length of a hex encoded fingerprint
	FingerprintHexSize = FingerprintSize * 2
)

var (
	// NullFingerprint is the value of an empty Fingerprint, or one
	// that's all 0s
	NullFingerprint = Fingerprint{}

	// ErrInvalidFingerprint is returned when a given value isn't a
	// valid Fingerprint
	ErrInvalidFingerprint = errors.New("invalid fingerprint")

	// ErrUnreadable is returned when a file that is part of a
	// fingerprint cannot be opened or read
	ErrUnreadable = errors.New("file is unreadable")
)

// Fingerprint represents the SHA3-256 digest of the ordered content of
// a set of files. A Fingerprint identifies a commit
type Fingerprint [FingerprintSize]byte

// Bytes returns a byte slice of the Fingerprint
func (f Fingerprint) Bytes() []byte {
	return f[:]
}

// String converts a fingerprint to a lowercase hex string
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero returns whether the fingerprint has the zero value
// (NullFingerprint)
func (f Fingerprint) IsZero() bool {
	return f == NullFingerprint
}

// NewFingerprintFromStr creates a Fingerprint from the given string
// For the hash 3338be694f50c5f3[...]
// the fingerprint will be {0x33, 0x38, 0xbe, ...}
func NewFingerprintFromStr(id string) (Fingerprint, error) {
	if len(id) != FingerprintHexSize {
		return NullFingerprint, ErrInvalidFingerprint
	}
	bytes, err := hex.DecodeString(id)
	if err != nil {
		return NullFingerprint, xerrors.Errorf("%s: %w", id, ErrInvalidFingerprint)
	}

	var fp Fingerprint
	copy(fp[:], bytes)
	return fp, nil
}

// SumFingerprint returns the Fingerprint of the given content
func SumFingerprint(content []byte) Fingerprint {
	return sha3.Sum256(content)
}

// UnreadableError is returned when a file cannot be streamed into a
// fingerprint. It matches ErrUnreadable when using errors.Is
type UnreadableError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *UnreadableError) Error() string {
	return fmt.Sprintf("could not read %s: %s", e.Path, e.Err.Error())
}

// Unwrap returns the underlying error
func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Is returns whether target is ErrUnreadable
func (e *UnreadableError) Is(target error) bool {
	return target == ErrUnreadable //nolint:errorlint // we are implementing errors.Is
}

// ComputeFingerprint streams the content of every file into a single
// SHA3-256 accumulator, in the given order, and returns the digest.
// Nothing separates the content of 2 files, so the result depends on
// the order of the paths as much as on the content of the files.
//
// An UnreadableError is returned as soon as a file cannot be read, no
// file is skipped
func ComputeFingerprint(fs afero.Fs, paths []string) (Fingerprint, error) {
	h := sha3.New256()
	for _, p := range paths {
		if err := hashFile(fs, h, p); err != nil {
			return NullFingerprint, &UnreadableError{Path: p, Err: err}
		}
	}

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp, nil
}

func hashFile(fs afero.Fs, w io.Writer, p string) (err error) {
	f, err := fs.Open(p)
	if err != nil {
		return err
	}
	defer errutil.Close(f, &err)

	_, err = io.Copy(w, f)
	return err
}

package backend

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Nivl/svcs/internal/errutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// copyFile copies the content of src into dst. dst is truncated if it
// already exists
func copyFile(fs afero.Fs, src, dst string) (err error) {
	in, err := fs.Open(src)
	if err != nil {
		return xerrors.Errorf("could not open %s: %w", src, err)
	}
	defer errutil.Close(in, &err)

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return xerrors.Errorf("could not create %s: %w", dst, err)
	}
	defer errutil.Close(out, &err)

	if _, err = io.Copy(out, in); err != nil {
		return xerrors.Errorf("could not copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file that is then renamed
// to p. Readers either see the previous content or the new one
func (b *Backend) writeFileAtomic(p string, data []byte) (err error) {
	tmp, err := afero.TempFile(b.fs, filepath.Dir(p), filepath.Base(p)+".tmp-")
	if err != nil {
		return xerrors.Errorf("could not create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			b.fs.Remove(tmp.Name()) //nolint:errcheck // it failed anyway
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // it failed anyway
		return xerrors.Errorf("could not write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return xerrors.Errorf("could not close %s: %w", tmp.Name(), err)
	}
	// temp files are created with 0o600
	if err = b.fs.Chmod(tmp.Name(), 0o644); err != nil {
		return xerrors.Errorf("could not set permissions of %s: %w", tmp.Name(), err)
	}
	if err = b.fs.Rename(tmp.Name(), p); err != nil {
		return xerrors.Errorf("could not move %s to %s: %w", tmp.Name(), p, err)
	}
	return nil
}

package svcs

import "golang.org/x/xerrors"

// Username returns the name used to sign the commits, or an empty
// string if it has not been set
func (r *Repository) Username() (string, error) {
	name, err := r.identity.Name()
	if err != nil {
		return "", xerrors.Errorf("could not get the username: %w", err)
	}
	return name, nil
}

// SetUsername changes the name used to sign the commits
func (r *Repository) SetUsername(name string) error {
	if err := r.identity.SetName(name); err != nil {
		return xerrors.Errorf("could not set the username: %w", err)
	}
	return nil
}

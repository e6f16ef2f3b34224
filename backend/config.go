package backend

import (
	"bytes"
	"errors"
	"os"
	"strconv"

	"github.com/Nivl/svcs/internal/vcspath"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// config keys
const (
	CfgCore              = "core"
	CfgCoreFormatVersion = "formatversion"
	CfgCoreStoreLayout   = "storelayout"
	CfgCoreLock          = "lock"
)

// ErrInvalidConfig is returned when the config of the repository
// contains invalid values
var ErrInvalidConfig = errors.New("invalid config")

// StoreLayout represents how the files of a commit are named in the
// commit store
type StoreLayout string

const (
	// StoreLayoutBasename stores each file under its base name.
	// 2 tracked files sharing a base name overwrite each other
	StoreLayoutBasename StoreLayout = "basename"
	// StoreLayoutPath stores each file under its path relative to the
	// working tree
	StoreLayoutPath StoreLayout = "path"
)

// Config represents the configuration of a repository
type Config struct {
	// FormatVersion is the version of the on-disk format.
	// Only 0 is supported
	FormatVersion int
	// StoreLayout is the layout of the commit store
	StoreLayout StoreLayout
	// Lock states whether commits should hold the repository lock
	Lock bool
}

// DefaultConfig returns the configuration of a new repository
func DefaultConfig() *Config {
	return &Config{
		FormatVersion: 0,
		StoreLayout:   StoreLayoutBasename,
		Lock:          true,
	}
}

// Validate returns an error if the config contains invalid values
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FormatVersion, validation.In(0).Error("unsupported format version")),
		validation.Field(&c.StoreLayout, validation.Required, validation.In(StoreLayoutBasename, StoreLayoutPath)),
	)
}

// ParseConfig parses the content of a config file.
// Missing keys are set to their default value
func ParseConfig(data []byte) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{SkipUnrecognizableLines: true}, data)
	if err != nil {
		return nil, xerrors.Errorf("could not parse config: %w", err)
	}

	cfg := DefaultConfig()
	core := file.Section(CfgCore)
	cfg.FormatVersion = core.Key(CfgCoreFormatVersion).MustInt(cfg.FormatVersion)
	cfg.StoreLayout = StoreLayout(core.Key(CfgCoreStoreLayout).MustString(string(cfg.StoreLayout)))
	cfg.Lock = core.Key(CfgCoreLock).MustBool(cfg.Lock)

	if err = cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("%s: %w", err.Error(), ErrInvalidConfig)
	}
	return cfg, nil
}

// Bytes returns the content of the config file
func (c *Config) Bytes() ([]byte, error) {
	file := ini.Empty()
	core, err := file.NewSection(CfgCore)
	if err != nil {
		return nil, xerrors.Errorf("could not create core section: %w", err)
	}
	// we use a slice to keep the keys ordered
	keys := []struct {
		name  string
		value string
	}{
		{CfgCoreFormatVersion, strconv.Itoa(c.FormatVersion)},
		{CfgCoreStoreLayout, string(c.StoreLayout)},
		{CfgCoreLock, strconv.FormatBool(c.Lock)},
	}
	for _, k := range keys {
		if _, err := core.NewKey(k.name, k.value); err != nil {
			return nil, xerrors.Errorf("could not set %s: %w", k.name, err)
		}
	}

	buf := &bytes.Buffer{}
	if _, err := file.WriteTo(buf); err != nil {
		return nil, xerrors.Errorf("could not encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Config returns the config of the repository.
// The default config is returned if the repository has none.
// The config is only read once
func (b *Backend) Config() (*Config, error) {
	if b.config != nil {
		return b.config, nil
	}

	p := b.path(vcspath.ConfigPath)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, xerrors.Errorf("could not read %s: %w", p, err)
		}
		b.config = DefaultConfig()
		return b.config, nil
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, xerrors.Errorf("could not load %s: %w", p, err)
	}
	b.config = cfg
	return b.config, nil
}

// SaveConfig validates and persists the given config
func (b *Backend) SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return xerrors.Errorf("%s: %w", err.Error(), ErrInvalidConfig)
	}
	data, err := cfg.Bytes()
	if err != nil {
		return err
	}
	if err = b.ensureRoot(); err != nil {
		return err
	}
	if err = b.writeFileAtomic(b.path(vcspath.ConfigPath), data); err != nil {
		return xerrors.Errorf("could not persist the config: %w", err)
	}
	b.config = cfg
	return nil
}

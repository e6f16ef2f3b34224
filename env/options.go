package env

import "strings"

// List of the variables read from the env
const (
	RepoDirKey  = "SVCS_DIR"
	LogLevelKey = "SVCS_LOG_LEVEL"
)

// Options represents the options that can be set using the env
type Options struct {
	// RepoDirName represents the name of the directory holding the
	// repository, relative to the working tree
	// Maps to $SVCS_DIR
	// Defaults to an empty string, which means the library's default
	RepoDirName string
	// LogLevel represents the minimum level of the records to log
	// Maps to $SVCS_LOG_LEVEL
	// Defaults to an empty string, which means the CLI's default
	LogLevel string
}

// NewOptions returns the Options set in the given env
//
// Usage: NewOptions(NewFromOs())
func NewOptions(e *Env) Options {
	return Options{
		RepoDirName: strings.TrimSpace(e.Get(RepoDirKey)),
		LogLevel:    strings.ToLower(strings.TrimSpace(e.Get(LogLevelKey))),
	}
}

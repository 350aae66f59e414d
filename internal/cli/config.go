package cli

import (
	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
)

// Config holds the configuration for one generation round
type Config struct {
	// Directories is the list of directories to scan for annotated Go files.
	// A "/..." suffix scans the whole tree below the directory.
	Directories []string

	// ModuleName is the custom module name for imports
	// If empty, will be determined from go.mod file
	ModuleName string

	// Kinds is the closed set of route annotation kinds recognized this
	// round. Empty means every built-in kind.
	Kinds []string

	// Snapshots are YAML declaration snapshots loaded next to the Go sources
	Snapshots []string

	// DryRun reports what would be written without touching the file system
	DryRun bool

	// Prune removes generated bases in scanned directories that the round
	// no longer produces
	Prune bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// Validate checks the configuration and returns the recognized kinds
func (c Config) Validate() ([]annotations.Kind, error) {
	if len(c.Directories) == 0 && len(c.Snapshots) == 0 {
		return nil, errors.ConfigurationError("directories", "no directories or snapshots to process").
			WithSuggestion("Pass package directories such as ./... or a --snapshot file")
	}

	kinds, err := annotations.ParseKinds(c.Kinds)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid route kinds", err).
			WithContext("kinds", c.Kinds).
			WithSuggestion("Use a subset of get, post, put, delete, patch, exchange")
	}
	return kinds, nil
}

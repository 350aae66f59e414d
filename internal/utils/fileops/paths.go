package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/axonbase/internal/errors"
)

// Operations named in wrapped file system errors
const (
	opRead    = "read"
	opReadDir = "read directory"
	opRemove  = "remove"
	opWrite   = "write"
)

// CleanPath cleans p and refuses empty paths and paths that climb out of a
// directory after descending into it. Leading ".." elements are allowed.
func CleanPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	clean := filepath.Clean(p)
	parts := strings.Split(filepath.ToSlash(clean), "/")
	leading := true
	for _, part := range parts {
		if part != ".." {
			leading = false
			continue
		}
		if !leading {
			return "", fmt.Errorf("path traversal not allowed in file path: %s", p)
		}
	}
	return clean, nil
}

// ExistingPath cleans p and requires it to exist
func ExistingPath(p string) (string, error) {
	clean, err := CleanPath(p)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(clean); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", clean)
	}
	return clean, nil
}

// AbsolutePath cleans p and resolves it against the working directory
func AbsolutePath(p string) (string, error) {
	clean, err := CleanPath(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s: %w", clean, err)
	}
	return abs, nil
}

// wrap attaches the failed operation to err. Write failures are artifact
// write errors, which abort the round.
func wrap(op, p string, err error) error {
	if op == opWrite {
		return errors.NewArtifactWriteError(p, err)
	}
	return errors.WrapFileSystemError(op, p, err)
}

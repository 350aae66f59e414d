// Package fileops performs the file system operations of a generation
// round with path checks and coded errors.
package fileops

import (
	"bytes"
	"os"
	"path/filepath"
)

// FileOps reads, writes and removes generated artifacts
type FileOps struct{}

// NewFileOps creates a new FileOps instance
func NewFileOps() *FileOps {
	return &FileOps{}
}

// ReadFile reads an existing file
func (fo *FileOps) ReadFile(filePath string) ([]byte, error) {
	clean, err := ExistingPath(filePath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(clean)
	if err != nil {
		return nil, wrap(opRead, clean, err)
	}
	return content, nil
}

// SameContent reports whether filePath exists and holds exactly content
func (fo *FileOps) SameContent(filePath string, content []byte) bool {
	existing, err := fo.ReadFile(filePath)
	return err == nil && bytes.Equal(existing, content)
}

// WriteFile persists content atomically: it is written to a temporary file
// in the target directory and renamed over filePath, so readers never see a
// partial artifact.
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	clean, tmpName, err := writeTemp(filePath, content, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, clean); err != nil {
		os.Remove(tmpName)
		return wrap(opWrite, clean, err)
	}
	return nil
}

// writeTemp writes content to a temporary file next to filePath and returns
// the cleaned target path with the temporary file name
func writeTemp(filePath string, content []byte, perm os.FileMode) (string, string, error) {
	clean, err := CleanPath(filePath)
	if err != nil {
		return "", "", wrap(opWrite, filePath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(clean), "."+filepath.Base(clean)+".*.tmp")
	if err != nil {
		return "", "", wrap(opWrite, clean, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, perm)
	}
	if err != nil {
		os.Remove(tmpName)
		return "", "", wrap(opWrite, clean, err)
	}
	return clean, tmpName, nil
}

// RemoveFile removes an existing file
func (fo *FileOps) RemoveFile(filePath string) error {
	clean, err := ExistingPath(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(clean); err != nil {
		return wrap(opRemove, clean, err)
	}
	return nil
}

// ReadDir lists an existing directory
func (fo *FileOps) ReadDir(dirPath string) ([]os.DirEntry, error) {
	clean, err := ExistingPath(dirPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(clean)
	if err != nil {
		return nil, wrap(opReadDir, clean, err)
	}
	return entries, nil
}

// Exists checks if a path exists
func (fo *FileOps) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (fo *FileOps) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/axonbase/internal/parser"
	"github.com/toyz/axonbase/internal/utils/fileops"
)

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileOps *fileops.FileOps
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileOps: fileops.NewFileOps(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// DefaultGoFileFilter filters for .go files, excluding tests and generated files
func DefaultGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, parser.GeneratedFilePrefix)
	}
}

// GeneratedFileFilter filters for generated base files
func GeneratedFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		return IsGeneratedFile(info.Name())
	}
}

// IsGeneratedFile reports whether name is a generated base artifact
func IsGeneratedFile(name string) bool {
	return strings.HasPrefix(name, parser.GeneratedFilePrefix) &&
		strings.HasSuffix(name, parser.GeneratedFileSuffix)
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// hidden directories and the go tool's ignored _dirs
		if (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// ScanDirectoriesWithGoFiles scans directory trees and returns those
// containing Go files, in walk order without duplicates
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	visited := make(map[string]bool)

	for _, rootDir := range rootDirs {
		dirs, err := fp.scanDirectoryRecursive(rootDir, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, dirs...)
	}

	return packageDirs, nil
}

// scanDirectoryRecursive recursively scans a directory for Go files
func (fp *FileProcessor) scanDirectoryRecursive(dir string, visited map[string]bool) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("path resolution %s: %w", dir, err)
	}

	if visited[absDir] {
		return nil, nil
	}
	visited[absDir] = true

	var packageDirs []string

	entries, err := fp.fileOps.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	if hasMatch(dir, entries, DefaultGoFileFilter()) {
		packageDirs = append(packageDirs, dir)
	}

	directoryFilter := DefaultDirectoryFilter()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(dir, entry.Name())
		if !directoryFilter(entryPath, entry) {
			continue
		}

		subDirs, err := fp.scanDirectoryRecursive(entryPath, visited)
		if err != nil {
			return nil, err
		}
		packageDirs = append(packageDirs, subDirs...)
	}

	return packageDirs, nil
}

// WalkDirectories returns every directory of the trees rooted at rootDirs
// that passes the default directory filter, roots included, in walk order
func (fp *FileProcessor) WalkDirectories(rootDirs []string) ([]string, error) {
	var dirs []string
	visited := make(map[string]bool)

	var walk func(dir string) error
	walk = func(dir string) error {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("path resolution %s: %w", dir, err)
		}
		if visited[absDir] {
			return nil
		}
		visited[absDir] = true
		dirs = append(dirs, dir)

		entries, err := fp.fileOps.ReadDir(dir)
		if err != nil {
			return err
		}
		directoryFilter := DefaultDirectoryFilter()
		for _, entry := range entries {
			entryPath := filepath.Join(dir, entry.Name())
			if entry.IsDir() && directoryFilter(entryPath, entry) {
				if err := walk(entryPath); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, rootDir := range rootDirs {
		if err := walk(rootDir); err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// HasGoFiles checks if a directory contains any .go files (excluding test files and generated files)
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := fp.fileOps.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return hasMatch(dir, entries, DefaultGoFileFilter()), nil
}

// GeneratedFiles lists the generated base files of one directory, sorted
func (fp *FileProcessor) GeneratedFiles(dir string) ([]string, error) {
	entries, err := fp.fileOps.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	filter := GeneratedFileFilter()
	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if filter(path, entry) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// CleanDirectories removes generated base files from directories. Missing
// directories are skipped.
func (fp *FileProcessor) CleanDirectories(dirs []string, dryRun bool) ([]string, error) {
	var removedFiles []string

	for _, dir := range dirs {
		if !fp.fileOps.IsDir(dir) {
			continue
		}

		files, err := fp.GeneratedFiles(dir)
		if err != nil {
			return removedFiles, err
		}

		for _, file := range files {
			if !dryRun {
				if err := fp.fileOps.RemoveFile(file); err != nil {
					return removedFiles, err
				}
			}
			removedFiles = append(removedFiles, file)
		}
	}

	return removedFiles, nil
}

func hasMatch(dir string, entries []os.DirEntry, filter FileFilter) bool {
	for _, entry := range entries {
		if filter(filepath.Join(dir, entry.Name()), entry) {
			return true
		}
	}
	return false
}

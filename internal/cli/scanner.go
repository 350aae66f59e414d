package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/utils"
)

// DirectoryScanner handles directory scanning for Go packages
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// pattern is a directory argument split into its base and recursion flag
type pattern struct {
	dir       string
	recursive bool
}

// parsePatterns resolves Go-style patterns like "./..." to absolute directories
func parsePatterns(rootDirs []string) ([]pattern, error) {
	patterns := make([]pattern, 0, len(rootDirs))
	for _, rootDir := range rootDirs {
		p := pattern{dir: rootDir}
		if rootDir == "..." || strings.HasSuffix(rootDir, "/...") {
			p.recursive = true
			p.dir = strings.TrimSuffix(strings.TrimSuffix(rootDir, "..."), "/")
			if p.dir == "" {
				p.dir = "."
			}
		}

		absDir, err := filepath.Abs(p.dir)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve path", p.dir, err)
		}
		p.dir = absDir
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// ScanDirectories returns the package directories named by rootDirs.
// Plain directories name one package, "dir/..." every package below dir.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	patterns, err := parsePatterns(rootDirs)
	if err != nil {
		return nil, err
	}

	var packageDirs []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		var dirs []string
		if p.recursive {
			dirs, err = s.fileProcessor.ScanDirectoriesWithGoFiles([]string{p.dir})
			if err != nil {
				return nil, err
			}
		} else {
			has, err := s.fileProcessor.HasGoFiles(p.dir)
			if err != nil {
				return nil, err
			}
			if has {
				dirs = []string{p.dir}
			}
		}

		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}
	return packageDirs, nil
}

// ExpandDirectories returns every directory named by rootDirs whether or not
// it still holds Go sources
func (s *DirectoryScanner) ExpandDirectories(rootDirs []string) ([]string, error) {
	patterns, err := parsePatterns(rootDirs)
	if err != nil {
		return nil, err
	}

	var recursive, plain []string
	for _, p := range patterns {
		if p.recursive {
			recursive = append(recursive, p.dir)
		} else {
			plain = append(plain, p.dir)
		}
	}

	dirs, err := s.fileProcessor.WalkDirectories(recursive)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		seen[dir] = true
	}
	for _, dir := range plain {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

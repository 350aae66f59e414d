package cli

import (
	"github.com/toyz/axonbase/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner       *DirectoryScanner
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner:       NewDirectoryScanner(),
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes the generated bases from the specified
// directories and returns the removed paths. A dry run only lists them.
func (c *Cleaner) CleanGeneratedFiles(directories []string, dryRun bool) ([]string, error) {
	dirs, err := c.scanner.ExpandDirectories(directories)
	if err != nil {
		return nil, err
	}
	return c.fileProcessor.CleanDirectories(dirs, dryRun)
}

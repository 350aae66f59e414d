package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	module *utils.GoModule
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModule locates the module enclosing startDir. A custom module name
// replaces the one from go.mod; without a go.mod it is rooted at startDir.
func (r *ModuleResolver) ResolveModule(customModule, startDir string) (*utils.GoModule, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapFileSystemError("get working directory", ".", err)
		}
		startDir = wd
	}

	module, err := utils.FindGoModule(startDir)
	if err != nil {
		if customModule == "" {
			return nil, errors.Wrap(errors.ConfigurationErrorCode, "failed to determine module name", err).
				WithSuggestion("Check your go.mod file exists and is valid").
				WithSuggestion("Try specifying --module flag explicitly")
		}
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			return nil, errors.WrapFileSystemError("resolve path", startDir, absErr)
		}
		module = &utils.GoModule{Root: root}
	}

	if customModule != "" {
		module.Path = customModule
	}
	r.module = module
	return module, nil
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(packageDir string) (string, error) {
	if r.module == nil {
		return "", errors.New(errors.ConfigurationErrorCode, "module not resolved")
	}
	path, err := r.module.ImportPath(packageDir)
	if err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, "failed to build package path", err).
			WithContext("directory", packageDir)
	}
	return path, nil
}

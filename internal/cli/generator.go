package cli

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/generator"
	"github.com/toyz/axonbase/internal/models"
	"github.com/toyz/axonbase/internal/parser"
	"github.com/toyz/axonbase/internal/utils"
	"github.com/toyz/axonbase/internal/utils/fileops"
	"github.com/toyz/axonbase/internal/walker"
)

// Generator coordinates one generation round: scan, load, walk, match,
// resolve, emit and persist
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	codeGenerator  *generator.Generator
	fileOps        *fileops.FileOps
	fileProcessor  *utils.FileProcessor
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGeneratorWithDiagnostics creates a new CLI generator reporting to diagnostics
func NewGeneratorWithDiagnostics(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		codeGenerator:  generator.NewGenerator(),
		fileOps:        fileops.NewFileOps(),
		fileProcessor:  utils.NewFileProcessor(),
		diagnostics:    diagnostics,
	}
}

// GetSummary returns the summary of the last round
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Issues returns the recoverable issues of the last round as one error, or
// nil when there were none
func (g *Generator) Issues() error {
	return g.summary.Issues.ErrOrNil()
}

// Run executes a complete generation round. Recoverable problems are
// reported as warnings; configuration, duplicate generation and artifact
// write failures abort the round.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{RoundID: uuid.NewString(), Issues: errors.NewMultipleErrors()}
	g.diagnostics.Verbose("Starting round %s", g.summary.RoundID)

	kinds, err := config.Validate()
	if err != nil {
		return err
	}
	matcher := annotations.NewMatcher(kinds...)
	g.diagnostics.Debug("Recognized route kinds: %v", matcher.Kinds())

	set := models.NewDeclSet()
	p := parser.NewParser(annotations.DefaultRegistry())

	packageDirs, err := g.loadPackages(set, p, config)
	if err != nil {
		return err
	}
	for _, snapshot := range config.Snapshots {
		if err := parser.LoadSnapshot(set, snapshot); err != nil {
			return err
		}
		g.diagnostics.Verbose("Loaded snapshot %s", snapshot)
	}

	g.summary.PackagesScanned = len(packageDirs)
	g.summary.InterfacesScanned = len(set.Interfaces())
	g.report(p.Issues())

	for _, excluded := range walker.Exclusions(set) {
		g.diagnostics.Verbose("%s", excluded.Error())
	}

	artifacts, err := g.emit(set, matcher)
	if err != nil {
		return err
	}

	if err := g.persist(artifacts, config.DryRun); err != nil {
		return err
	}

	if config.Prune {
		if err := g.prune(packageDirs, artifacts, config.DryRun); err != nil {
			return err
		}
	}

	g.diagnostics.Verbose("Round finished in %s", time.Since(startTime).Round(time.Millisecond))
	g.diagnostics.Summary("Generation Summary", g.summary.Stats())
	return nil
}

// loadPackages parses every package directory named by the configuration
func (g *Generator) loadPackages(set *models.DeclSet, p *parser.Parser, config Config) ([]string, error) {
	if len(config.Directories) == 0 {
		return nil, nil
	}

	patterns, err := parsePatterns(config.Directories)
	if err != nil {
		return nil, err
	}
	module, err := g.moduleResolver.ResolveModule(config.ModuleName, patterns[0].dir)
	if err != nil {
		return nil, err
	}
	g.diagnostics.Debug("Resolved module %s at %s", module.Path, module.Root)

	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return nil, err
	}

	for _, dir := range packageDirs {
		importPath, err := g.moduleResolver.BuildPackagePath(dir)
		if err != nil {
			return nil, err
		}
		if err := p.ParseDirectory(set, dir, importPath); err != nil {
			return nil, err
		}
		g.diagnostics.Debug("Parsed %s", importPath)
	}
	return packageDirs, nil
}

// emit builds the generated types of every candidate. Two candidates that
// would produce the same artifact are refused.
func (g *Generator) emit(set *models.DeclSet, matcher *annotations.Matcher) ([]*models.GeneratedType, error) {
	var artifacts []*models.GeneratedType
	byPath := make(map[string]*models.TypeDecl)

	for _, id := range walker.Candidates(set) {
		g.summary.Candidates++
		decl := set.Get(id)

		sel := generator.Select(set, walker.Walk(set, id), matcher)
		g.report(sel.Issues)

		generated, err := g.codeGenerator.EmitSelection(decl, sel)
		if err != nil {
			return nil, err
		}
		if generated == nil {
			g.summary.NotNeeded++
			continue
		}

		if first, exists := byPath[generated.FilePath]; exists {
			return nil, errors.NewDuplicateGenerationError(filepath.Base(generated.FilePath), first.Location(), decl.Location()).
				WithContext("path", generated.FilePath)
		}
		byPath[generated.FilePath] = decl

		g.diagnostics.Verbose("%s: %d stub(s), %d matched method(s)", generated.Name, len(generated.Methods), sel.Matches)
		artifacts = append(artifacts, generated)
	}
	return artifacts, nil
}

// persist writes every artifact whose content changed. The writes of a
// round are staged first and land together, or not at all.
func (g *Generator) persist(artifacts []*models.GeneratedType, dryRun bool) error {
	batch := g.fileOps.NewBatch()
	var written []string
	for _, artifact := range artifacts {
		if g.fileOps.SameContent(artifact.FilePath, []byte(artifact.Content)) {
			g.summary.Unchanged++
			g.diagnostics.Verbose("%s is up to date", artifact.FilePath)
			continue
		}

		if dryRun {
			g.diagnostics.Info("Would write %s", artifact.FilePath)
		} else if err := batch.Stage(artifact.FilePath, []byte(artifact.Content), 0644); err != nil {
			return err
		}
		written = append(written, artifact.FilePath)
	}

	if !dryRun {
		if err := batch.Commit(); err != nil {
			return err
		}
		for _, file := range written {
			g.diagnostics.PhaseItem("Generated %s", file)
		}
	}
	g.summary.Generated += len(written)
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, written...)
	return nil
}

// prune removes generated bases in the scanned packages that this round
// did not produce
func (g *Generator) prune(packageDirs []string, artifacts []*models.GeneratedType, dryRun bool) error {
	produced := make(map[string]bool, len(artifacts))
	for _, artifact := range artifacts {
		abs, err := fileops.AbsolutePath(artifact.FilePath)
		if err != nil {
			return errors.WrapFileSystemError("resolve path", artifact.FilePath, err)
		}
		produced[abs] = true
	}

	var stale []string
	for _, dir := range packageDirs {
		files, err := g.fileProcessor.GeneratedFiles(dir)
		if err != nil {
			return err
		}
		for _, file := range files {
			abs, err := fileops.AbsolutePath(file)
			if err != nil {
				return errors.WrapFileSystemError("resolve path", file, err)
			}
			if !produced[abs] {
				stale = append(stale, file)
			}
		}
	}
	sort.Strings(stale)

	for _, file := range stale {
		if dryRun {
			g.diagnostics.Info("Would remove %s", file)
		} else {
			if err := g.fileOps.RemoveFile(file); err != nil {
				return err
			}
			g.diagnostics.PhaseItem("Removed %s", file)
		}
		g.summary.RemovedFiles = append(g.summary.RemovedFiles, file)
	}
	return nil
}

// report emits recoverable issues as warnings
func (g *Generator) report(issues []errors.AxonError) {
	for _, issue := range issues {
		g.summary.Issues.Add(issue)
		g.diagnostics.Issue(issue)
	}
}

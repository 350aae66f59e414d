package templates

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/axonbase/internal/models"
)

// ImportManager collects the packages referenced by generated code and
// assigns each a collision-free name. Aliases depend only on the set of
// imports, never on the order they were added in.
type ImportManager struct {
	localPath string
	reserved  map[string]bool
	pinned    []string          // paths resolved before all others, in order
	preferred map[string]string // path -> preferred name
	aliases   map[string]string // path -> assigned name
	resolved  bool
}

// NewImportManager creates an import manager for code generated into the
// package localPath. Reserved names are never used as import names.
func NewImportManager(localPath string, reserved ...string) *ImportManager {
	im := &ImportManager{
		localPath: localPath,
		reserved:  make(map[string]bool),
		preferred: make(map[string]string),
		aliases:   make(map[string]string),
	}
	for _, name := range reserved {
		im.reserved[name] = true
	}
	return im
}

// Pin adds an import that gets first pick of its name
func (im *ImportManager) Pin(importPath, name string) {
	if importPath == "" || importPath == im.localPath {
		return
	}
	if _, exists := im.preferred[importPath]; !exists {
		im.pinned = append(im.pinned, importPath)
	}
	im.preferred[importPath] = name
	im.resolved = false
}

// AddImport adds an import with a preferred name. An empty name falls back
// to the last element of the import path.
func (im *ImportManager) AddImport(importPath, name string) {
	if importPath == "" || importPath == im.localPath {
		return
	}
	if existing, exists := im.preferred[importPath]; exists && existing != "" {
		return
	}
	im.preferred[importPath] = name
	im.resolved = false
}

// AddType adds every package referenced by ref. Types of the local package
// and predeclared types reserve their own names instead.
func (im *ImportManager) AddType(ref models.TypeRef) {
	if ref.IsPredeclared() {
		im.reserved[ref.Name] = true
	}
	if ref.Package != "" {
		if ref.Package == im.localPath {
			if ref.Kind != models.TypeVarRef {
				im.reserved[ref.Name] = true
			}
		} else {
			im.AddImport(ref.Package, ref.PackageName)
		}
	}
	for _, arg := range ref.Args {
		im.AddType(arg)
	}
}

// Resolve assigns names: pinned imports first, then the rest sorted by path
func (im *ImportManager) Resolve() {
	if im.resolved {
		return
	}

	im.aliases = make(map[string]string, len(im.preferred))
	taken := make(map[string]bool, len(im.preferred))

	var rest []string
	isPinned := make(map[string]bool, len(im.pinned))
	for _, p := range im.pinned {
		isPinned[p] = true
	}
	for p := range im.preferred {
		if !isPinned[p] {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)

	for _, p := range append(append([]string{}, im.pinned...), rest...) {
		base := sanitizeName(im.preferred[p])
		if base == "" {
			base = sanitizeName(path.Base(p))
		}
		name := base
		for i := 2; im.reserved[name] || taken[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		taken[name] = true
		im.aliases[p] = name
	}
	im.resolved = true
}

// Alias returns the name importPath is referenced by. The local package
// and unknown paths have no name.
func (im *ImportManager) Alias(importPath string) string {
	im.Resolve()
	return im.aliases[importPath]
}

// Qualifier returns a qualifier that references packages by their alias
func (im *ImportManager) Qualifier() models.Qualifier {
	im.Resolve()
	return func(pkgPath, _ string) string {
		return im.aliases[pkgPath]
	}
}

// Names returns every assigned import name, sorted
func (im *ImportManager) Names() []string {
	im.Resolve()
	names := make([]string, 0, len(im.aliases))
	for _, name := range im.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateImports generates the import section: standard library packages
// first, then everything else, each group sorted by path
func (im *ImportManager) GenerateImports() string {
	im.Resolve()
	if len(im.aliases) == 0 {
		return ""
	}

	var std, other []string
	for p := range im.aliases {
		if isStandardLibraryPath(p) {
			std = append(std, p)
		} else {
			other = append(other, p)
		}
	}
	sort.Strings(std)
	sort.Strings(other)

	var specs []string
	for _, group := range [][]string{std, other} {
		if len(group) == 0 {
			continue
		}
		if len(specs) > 0 {
			specs = append(specs, "")
		}
		for _, p := range group {
			specs = append(specs, im.importSpec(p))
		}
	}

	if len(specs) == 1 {
		return fmt.Sprintf("import %s\n", specs[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, spec := range specs {
		if spec == "" {
			result.WriteString("\n")
			continue
		}
		result.WriteString("\t" + spec + "\n")
	}
	result.WriteString(")\n")
	return result.String()
}

func (im *ImportManager) importSpec(importPath string) string {
	alias := im.aliases[importPath]
	// the alias is only implied when the package is known to be named after its path
	if alias == path.Base(importPath) && alias == im.preferred[importPath] {
		return strconv.Quote(importPath)
	}
	return alias + " " + strconv.Quote(importPath)
}

// isStandardLibraryPath reports whether the first path element has no dot
func isStandardLibraryPath(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// sanitizeName turns a path element into a valid identifier
func sanitizeName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		case r == '-' || r == '.':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Conflicts reports whether name is an import name or reserved
func (im *ImportManager) Conflicts(name string) bool {
	im.Resolve()
	if im.reserved[name] {
		return true
	}
	for _, alias := range im.aliases {
		if alias == name {
			return true
		}
	}
	return false
}

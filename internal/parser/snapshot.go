package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
)

// Snapshot is a declaration set supplied by an upstream front end
type Snapshot struct {
	Declarations []SnapshotDecl `yaml:"declarations"`
}

// SnapshotDecl is one declaration of a snapshot. Containers of kind "other"
// only contribute their nested declarations.
type SnapshotDecl struct {
	Name        string                      `yaml:"name"`
	Kind        models.DeclKind             `yaml:"kind,omitempty"`
	Package     string                      `yaml:"package,omitempty"`
	PackageName string                      `yaml:"package_name,omitempty"`
	Dir         string                      `yaml:"dir,omitempty"`
	File        string                      `yaml:"file,omitempty"`
	Line        int                         `yaml:"line,omitempty"`
	TypeParams  []string                    `yaml:"type_params,omitempty"`
	Routes      []models.Route              `yaml:"routes,omitempty"`
	Methods     []models.MethodSignature    `yaml:"methods,omitempty"`
	Embeds      []models.SuperInterfaceEdge `yaml:"embeds,omitempty"`
	Constraint  bool                        `yaml:"constraint,omitempty"`
	Nested      []SnapshotDecl              `yaml:"nested,omitempty"`
}

// LoadSnapshot reads a YAML snapshot file into set. Relative directories in
// the snapshot are resolved against the snapshot's own directory.
func LoadSnapshot(set *models.DeclSet, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WrapFileSystemError("open", path, err)
	}
	defer file.Close()

	return DecodeSnapshot(set, file, path)
}

// DecodeSnapshot decodes a YAML snapshot from r into set. source names the
// snapshot in locations and anchors relative directories.
func DecodeSnapshot(set *models.DeclSet, r io.Reader, source string) error {
	var snapshot Snapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snapshot); err != nil && err != io.EOF {
		return errors.WrapParseError(fmt.Sprintf("snapshot %s", source), err)
	}

	base := filepath.Dir(source)
	for _, decl := range snapshot.Declarations {
		if err := addSnapshotDecl(set, decl, models.NoDecl, base, source); err != nil {
			return err
		}
	}
	return nil
}

func addSnapshotDecl(set *models.DeclSet, decl SnapshotDecl, outer models.DeclID, base, source string) error {
	typeDecl := models.TypeDecl{
		Kind:        decl.Kind,
		Name:        decl.Name,
		Package:     decl.Package,
		PackageName: decl.PackageName,
		Dir:         decl.Dir,
		File:        decl.File,
		Line:        decl.Line,
		TypeParams:  decl.TypeParams,
		Methods:     decl.Methods,
		Embeds:      decl.Embeds,
		Routes:      decl.Routes,
		Constraint:  decl.Constraint,
	}
	if typeDecl.Dir != "" && !filepath.IsAbs(typeDecl.Dir) {
		typeDecl.Dir = filepath.Join(base, typeDecl.Dir)
	}
	if typeDecl.File == "" {
		typeDecl.File = source
	}

	id, err := set.Add(typeDecl, outer)
	if err != nil {
		return errors.Wrap(errors.RegistrationErrorCode, "failed to register snapshot declaration", err).
			WithLocation(errors.SourceLocation{File: source, Line: decl.Line})
	}

	// parents named without a package live next to the embedding interface
	stored := set.Get(id)
	for i := range stored.Embeds {
		if stored.Embeds[i].Parent.Package == "" {
			stored.Embeds[i].Parent.Package = stored.Package
		}
	}

	for _, nested := range decl.Nested {
		if err := addSnapshotDecl(set, nested, id, base, source); err != nil {
			return err
		}
	}
	return nil
}

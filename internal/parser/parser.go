package parser

import (
	stderrors "errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
)

// Parser loads interface declarations from Go source into a DeclSet
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.ParticipleParser
	issues      []errors.AxonError
}

// NewParser creates a parser recognizing the route kinds in registry
func NewParser(registry annotations.AnnotationRegistry) *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParticipleParser(registry),
	}
}

// Issues returns the recoverable problems found so far: malformed
// annotations and type expressions that cannot be represented
func (p *Parser) Issues() []errors.AxonError {
	return p.issues
}

// ParseSource parses source code from a string, mainly for tests
func (p *Parser) ParseSource(set *models.DeclSet, filename, source, importPath string) error {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return errors.WrapParseError(filename, err)
	}
	return p.addFile(set, file, filename, filepath.Dir(filename), importPath)
}

// ParseDirectory parses every non-test, non-generated Go file of the package
// in dir. importPath is the package's import path inside the module.
func (p *Parser) ParseDirectory(set *models.DeclSet, dir, importPath string) error {
	pkgs, err := parser.ParseDir(p.fileSet, dir, isSourceFile, parser.ParseComments)
	if err != nil {
		return errors.WrapParseError(fmt.Sprintf("directory %s", dir), err)
	}

	if len(pkgs) == 0 {
		return nil
	}
	if len(pkgs) > 1 {
		var names []string
		for name := range pkgs {
			names = append(names, name)
		}
		sort.Strings(names)
		return errors.Newf(errors.SyntaxErrorCode, "multiple packages found in directory %s: %s", dir, strings.Join(names, ", "))
	}

	for _, pkg := range pkgs {
		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, name := range fileNames {
			if err := p.addFile(set, pkg.Files[name], name, dir, importPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// isSourceFile skips tests and generated artifacts
func isSourceFile(info os.FileInfo) bool {
	name := info.Name()
	return !strings.HasSuffix(name, "_test.go") && !strings.HasPrefix(name, GeneratedFilePrefix)
}

// fileScope carries what is needed to convert type expressions of one file
type fileScope struct {
	fileName    string
	importPath  string
	packageName string
	imports     map[string]string // local name -> import path
}

func (p *Parser) addFile(set *models.DeclSet, file *ast.File, fileName, dir, importPath string) error {
	scope := &fileScope{
		fileName:    fileName,
		importPath:  importPath,
		packageName: file.Name.Name,
		imports:     fileImports(file),
	}

	for _, node := range file.Decls {
		gen, ok := node.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}

			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}

			decl := p.interfaceDecl(scope, typeSpec, ifaceType, doc)
			decl.Dir = dir
			if _, err := set.Add(decl, models.NoDecl); err != nil {
				return errors.Wrap(errors.RegistrationErrorCode, "failed to register interface", err).
					WithLocation(p.location(fileName, typeSpec.Pos()))
			}
		}
	}
	return nil
}

func (p *Parser) interfaceDecl(scope *fileScope, spec *ast.TypeSpec, iface *ast.InterfaceType, doc *ast.CommentGroup) models.TypeDecl {
	decl := models.TypeDecl{
		Kind:        models.InterfaceKind,
		Name:        spec.Name.Name,
		Package:     scope.importPath,
		PackageName: scope.packageName,
		File:        scope.fileName,
		Line:        p.fileSet.Position(spec.Pos()).Line,
		Routes:      p.routes(scope.fileName, doc),
	}

	typeParams := make(map[string]bool)
	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, name := range field.Names {
				decl.TypeParams = append(decl.TypeParams, name.Name)
				typeParams[name.Name] = true
			}
		}
	}

	conv := &typeConverter{scope: scope, typeParams: typeParams}
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			p.embeddedElement(&decl, conv, field)
			continue
		}

		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			method, err := p.methodSignature(conv, name.Name, funcType, field.Doc)
			if err != nil {
				p.issues = append(p.issues, errors.NewUnsupportedTypeError(decl.Name+"."+name.Name, err, p.location(scope.fileName, field.Pos())))
				continue
			}
			method.Line = p.fileSet.Position(name.Pos()).Line
			decl.Methods = append(decl.Methods, method)
		}
	}

	return decl
}

// embeddedElement records an embedded interface as an edge, or marks the
// declaration as a constraint when the element is a type-set term
func (p *Parser) embeddedElement(decl *models.TypeDecl, conv *typeConverter, field *ast.Field) {
	expr := field.Type
	var args []ast.Expr
	switch indexed := expr.(type) {
	case *ast.IndexExpr:
		expr, args = indexed.X, []ast.Expr{indexed.Index}
	case *ast.IndexListExpr:
		expr, args = indexed.X, indexed.Indices
	}

	line := p.fileSet.Position(field.Pos()).Line
	var parent models.DeclRef
	switch base := expr.(type) {
	case *ast.Ident:
		if isPredeclared(base.Name) {
			if base.Name != "error" && base.Name != "comparable" && base.Name != "any" {
				decl.Constraint = true
			}
			return
		}
		if conv.typeParams[base.Name] {
			decl.Constraint = true
			return
		}
		parent = models.DeclRef{Package: conv.scope.importPath, Name: base.Name}
	case *ast.SelectorExpr:
		pkgIdent, ok := base.X.(*ast.Ident)
		if !ok {
			decl.Constraint = true
			return
		}
		parent = models.DeclRef{Package: conv.scope.resolveImport(pkgIdent.Name), Name: base.Sel.Name}
	default:
		// union, tilde and literal type terms only appear in constraints
		decl.Constraint = true
		return
	}

	edge := models.SuperInterfaceEdge{Parent: parent, Line: line}
	for _, arg := range args {
		ref, err := conv.convert(arg)
		if err != nil {
			p.issues = append(p.issues, errors.NewUnsupportedTypeError(decl.Name+"."+parent.Name, err, p.location(conv.scope.fileName, arg.Pos())))
			return
		}
		edge.Args = append(edge.Args, ref)
	}
	decl.Embeds = append(decl.Embeds, edge)
}

func (p *Parser) methodSignature(conv *typeConverter, name string, funcType *ast.FuncType, doc *ast.CommentGroup) (models.MethodSignature, error) {
	params, err := conv.fields(funcType.Params)
	if err != nil {
		return models.MethodSignature{}, err
	}
	results, err := conv.fields(funcType.Results)
	if err != nil {
		return models.MethodSignature{}, err
	}
	return models.MethodSignature{
		Name:    name,
		Params:  params,
		Results: results,
		Routes:  p.routes(conv.scope.fileName, doc),
	}, nil
}

// routes parses the route annotations of a doc comment. Annotations of other
// axon tools are ignored; malformed ones are recorded as issues and dropped.
func (p *Parser) routes(fileName string, doc *ast.CommentGroup) []models.Route {
	if doc == nil {
		return nil
	}

	var routes []models.Route
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		parsed, err := p.annotations.ParseAnnotation(comment.Text, p.location(fileName, comment.Pos()))
		if err != nil {
			if stderrors.Is(err, annotations.ErrForeignAnnotation) {
				continue
			}
			if axonErr, ok := err.(errors.AxonError); ok {
				p.issues = append(p.issues, axonErr)
			} else {
				p.issues = append(p.issues, errors.WrapParseError("annotation", err))
			}
			continue
		}
		routes = append(routes, parsed.Route())
	}
	return routes
}

func (p *Parser) location(fileName string, pos token.Pos) errors.SourceLocation {
	position := p.fileSet.Position(pos)
	return errors.SourceLocation{File: fileName, Line: position.Line, Column: position.Column}
}

func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := defaultImportName(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = importPath
	}
	return imports
}

// defaultImportName guesses the package name of an import path: its last
// element without a major version suffix or a "go-" prefix
func defaultImportName(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && isDigits(base[1:]) {
		if parent := path.Dir(importPath); parent != "." {
			base = path.Base(parent)
		}
	}
	if i := strings.LastIndex(base, ".v"); i > 0 && isDigits(base[i+2:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, base)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (s *fileScope) resolveImport(name string) string {
	if importPath, ok := s.imports[name]; ok {
		return importPath
	}
	return name
}

func isPredeclared(name string) bool {
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}

// Package generator synthesizes the <Interface>Base types and their stub
// methods.
package generator

import (
	"go/token"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
	"github.com/toyz/axonbase/internal/parser"
	"github.com/toyz/axonbase/internal/templates"
	"github.com/toyz/axonbase/internal/utils"
)

const (
	// ToolName is recorded in the provenance header of every artifact
	ToolName = "axonbase"

	// RuntimeImportPath is the package providing ErrNotImplemented
	RuntimeImportPath = "github.com/toyz/axonbase/pkg/axon"

	// BaseSuffix is appended to the interface name to form the generated type name
	BaseSuffix = "Base"

	runtimePackageName = "axon"
)

// bodyIdentifiers are the predeclared names stub bodies refer to. Parameters
// carrying one of them are blanked so they cannot shadow it.
var bodyIdentifiers = []string{"new", "panic", "nil", "true", "false"}

// Stub is a matched method whose signature is fully resolved
type Stub struct {
	Method        models.MethodSignature
	InheritedFrom string // name of the declaring interface, empty for own methods
	OwnerPackage  string // import path of the declaring interface
}

// Generator renders generated base types
type Generator struct {
	runtimeImport string
}

// NewGenerator creates a generator whose stubs use the axonbase runtime
func NewGenerator() *Generator {
	return NewGeneratorWithRuntime(RuntimeImportPath)
}

// NewGeneratorWithRuntime creates a generator whose stubs call
// ErrNotImplemented from the package at importPath
func NewGeneratorWithRuntime(importPath string) *Generator {
	return &Generator{runtimeImport: importPath}
}

// BaseName returns the generated type name for an interface. Visibility
// follows the interface name.
func BaseName(iface string) string {
	return iface + BaseSuffix
}

// FileName returns the artifact file name for an interface
func FileName(iface string) string {
	return parser.GeneratedFilePrefix + templates.ToSnakeCase(iface) + parser.GeneratedFileSuffix
}

// Accessible reports why a stub cannot be declared in the package localPkg:
// it either references an unexported type of another package or overrides
// an unexported method of another package
func Accessible(stub Stub, localPkg string) error {
	if stub.OwnerPackage != "" && stub.OwnerPackage != localPkg && !token.IsExported(stub.Method.Name) {
		return errors.Newf(errors.UnsupportedTypeCode,
			"method %s is unexported in %s and cannot be overridden from %s",
			stub.Method.Name, stub.OwnerPackage, localPkg)
	}

	for _, param := range append(append([]models.Param{}, stub.Method.Params...), stub.Method.Results...) {
		if name, ok := foreignUnexported(param.Type, localPkg); ok {
			return errors.Newf(errors.UnsupportedTypeCode,
				"method %s references unexported type %s", stub.Method.Name, name)
		}
	}
	return nil
}

func foreignUnexported(ref models.TypeRef, localPkg string) (string, bool) {
	if ref.Package != "" && ref.Package != localPkg && !ref.IsComposite() && !token.IsExported(ref.Name) {
		return ref.Package + "." + ref.Name, true
	}
	for _, arg := range ref.Args {
		if name, ok := foreignUnexported(arg, localPkg); ok {
			return name, true
		}
	}
	return "", false
}

// Emit builds the base type for iface from its matched stubs. It returns
// nil when the interface does not need generation.
func (g *Generator) Emit(iface *models.TypeDecl, stubs []Stub, needsGeneration bool) (*models.GeneratedType, error) {
	return g.emit(iface, stubs, needsGeneration, selfNamed(iface, stubs))
}

// EmitSelection builds the base type for iface from a selection, which also
// knows the unstubbed methods of the closure
func (g *Generator) EmitSelection(iface *models.TypeDecl, sel Selection) (*models.GeneratedType, error) {
	return g.emit(iface, sel.Stubs, sel.NeedsGeneration, sel.SelfNamed || selfNamed(iface, sel.Stubs))
}

// selfNamed reports whether iface or one of its stubs declares a method
// named after the interface
func selfNamed(iface *models.TypeDecl, stubs []Stub) bool {
	if _, ok := iface.Method(iface.Name); ok {
		return true
	}
	for _, stub := range stubs {
		if stub.Method.Name == iface.Name {
			return true
		}
	}
	return false
}

// EmbeddedName names the alias a base embeds in place of an interface with
// a method of its own name
func EmbeddedName(iface string) string {
	return strings.ToLower(iface[:1]) + iface[1:] + "Interface"
}

func (g *Generator) emit(iface *models.TypeDecl, stubs []Stub, needsGeneration, aliased bool) (*models.GeneratedType, error) {
	if !needsGeneration {
		return nil, nil
	}
	if iface.IsGeneric() {
		return nil, errors.NewGenericRootError(iface.Name, iface.TypeParams,
			errors.SourceLocation{File: iface.File, Line: iface.Line})
	}

	for _, stub := range stubs {
		if free := stubVariables(stub.Method); len(free) > 0 {
			return nil, errors.NewUnresolvedTypeVariableError(iface.Name+"."+stub.Method.Name, free)
		}
	}

	baseName := BaseName(iface.Name)
	fileName := FileName(iface.Name)

	reserved := append([]string{iface.Name, baseName}, bodyIdentifiers...)
	embedded := ""
	if aliased {
		embedded = EmbeddedName(iface.Name)
		reserved = append(reserved, embedded)
	}
	imports := templates.NewImportManager(iface.Package, reserved...)
	if len(stubs) > 0 {
		imports.Pin(g.runtimeImport, runtimePackageName)
	}
	for _, stub := range stubs {
		for _, param := range stub.Method.Params {
			imports.AddType(param.Type)
		}
		for _, result := range stub.Method.Results {
			imports.AddType(result.Type)
		}
	}
	q := imports.Qualifier()
	runtime := imports.Alias(g.runtimeImport)

	data := templates.BaseTemplateData{
		Tool:      ToolName,
		Source:    filepath.Base(iface.File),
		Package:   packageName(iface),
		Imports:   imports.GenerateImports(),
		Interface: iface.Name,
		BaseName:  baseName,
		Embedded:  embedded,
		Example:   exampleName(iface.Name),
		Routes:    describeRoutes(iface.Routes),
	}

	methods := make([]models.MethodSignature, 0, len(stubs))
	for _, stub := range stubs {
		method := stub.Method
		methods = append(methods, method)
		data.Stubs = append(data.Stubs, templates.StubData{
			Name:          method.Name,
			Routes:        describeRoutes(method.Routes),
			InheritedFrom: stub.InheritedFrom,
			Params:        renderParams(method.Params, q, imports),
			Results:       renderResults(method.Results, q, imports),
			Body:          renderBody(iface.Name, method, runtime, q),
		})
	}

	content, err := templates.GenerateBase(data)
	if err != nil {
		return nil, errors.WrapTemplateError("base", "render "+baseName, err)
	}

	formatted, err := utils.FormatGoCode(fileName, []byte(content))
	if err != nil {
		return nil, errors.Wrapf(errors.GenerationErrorCode, err, "failed to format %s", baseName)
	}

	return &models.GeneratedType{
		Name:            baseName,
		Source:          iface,
		Methods:         methods,
		NeedsGeneration: true,
		FilePath:        filepath.Join(iface.Dir, fileName),
		Content:         string(formatted),
	}, nil
}

func stubVariables(method models.MethodSignature) []string {
	var free []string
	for _, param := range method.Params {
		free = append(free, param.Type.FreeVariables()...)
	}
	for _, result := range method.Results {
		free = append(free, result.Type.FreeVariables()...)
	}
	return free
}

func packageName(iface *models.TypeDecl) string {
	if iface.PackageName != "" {
		return iface.PackageName
	}
	if iface.Package != "" {
		return path.Base(iface.Package)
	}
	return filepath.Base(iface.Dir)
}

// exampleName names the embedding type in the usage docs with the
// visibility of the interface
func exampleName(iface string) string {
	if token.IsExported(iface) {
		return "My" + iface
	}
	return "my" + strings.ToUpper(iface[:1]) + iface[1:]
}

func describeRoutes(routes []models.Route) []string {
	described := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.Default {
			continue
		}
		described = append(described, route.Describe())
	}
	return described
}

// paramNames returns the names to declare, or nil when every entry is
// unnamed. Names that would shadow an identifier used by the stub are
// blanked.
func paramNames(params []models.Param, imports *templates.ImportManager) []string {
	named := false
	for _, param := range params {
		if param.Name != "" {
			named = true
			break
		}
	}
	if !named {
		return nil
	}

	names := make([]string, len(params))
	for i, param := range params {
		name := param.Name
		if name == "" || imports.Conflicts(name) {
			name = "_"
		}
		names[i] = name
	}
	return names
}

func renderParams(params []models.Param, q models.Qualifier, imports *templates.ImportManager) string {
	names := paramNames(params, imports)
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = param.Type.Render(q)
		if names != nil {
			parts[i] = names[i] + " " + parts[i]
		}
	}
	return strings.Join(parts, ", ")
}

func renderResults(results []models.Param, q models.Qualifier, imports *templates.ImportManager) string {
	if len(results) == 0 {
		return ""
	}
	list := renderParams(results, q, imports)
	if len(results) == 1 && results[0].Name == "" {
		return " " + list
	}
	return " (" + list + ")"
}

func renderBody(iface string, method models.MethodSignature, runtime string, q models.Qualifier) string {
	failure := runtime + ".ErrNotImplemented(" + strconv.Quote(iface) + ", " + strconv.Quote(method.Name) + ")"
	if !method.ReturnsError() {
		return "panic(" + failure + ")"
	}

	values := make([]string, 0, len(method.Results))
	for _, result := range method.Results[:len(method.Results)-1] {
		values = append(values, templates.ZeroValue(result.Type, q))
	}
	values = append(values, failure)
	return "return " + strings.Join(values, ", ")
}

package models

import (
	"fmt"
	"go/types"
	"strings"
)

// RefKind represents the shape of a type reference
type RefKind int

const (
	// SimpleRef is a non-generic type: a predeclared type or a named type
	SimpleRef RefKind = iota
	// TypeVarRef is a type parameter declared by some generic interface
	TypeVarRef
	// ParameterizedRef is a raw type applied to type arguments. Composite Go
	// types use a type constructor as their raw type (see the Raw constants).
	ParameterizedRef
)

// String returns the string representation of the ref kind
func (k RefKind) String() string {
	switch k {
	case SimpleRef:
		return "simple"
	case TypeVarRef:
		return "typevar"
	case ParameterizedRef:
		return "parameterized"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k RefKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *RefKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "simple", "":
		*k = SimpleRef
	case "typevar":
		*k = TypeVarRef
	case "parameterized":
		*k = ParameterizedRef
	default:
		return fmt.Errorf("unknown type reference kind %q", text)
	}
	return nil
}

// Raw type constructors for composite types
const (
	RawPointer  = "*"
	RawSlice    = "[]"
	RawMap      = "map"
	RawChan     = "chan"
	RawRecvChan = "<-chan"
	RawSendChan = "chan<-"
	RawEllipsis = "..."
	RawFunc     = "func"
)

// TypeRef is an immutable reference to a type as written in a declaration
type TypeRef struct {
	Kind        RefKind   `yaml:"kind"`
	Name        string    `yaml:"name"`                   // type name, variable name or raw type
	Package     string    `yaml:"package,omitempty"`      // import path of a named type
	PackageName string    `yaml:"package_name,omitempty"` // name the package is referenced by
	Args        []TypeRef `yaml:"args,omitempty"`
	Params      int       `yaml:"params,omitempty"` // number of leading Args that are parameters of a func type
}

// SubstitutionMap maps type variable names to the types bound to them along
// one inheritance edge
type SubstitutionMap map[string]TypeRef

// Qualifier returns the name used to reference a package from generated code.
// An empty result leaves the type name unqualified.
type Qualifier func(pkgPath, pkgName string) string

// Simple creates a reference to a predeclared type
func Simple(name string) TypeRef {
	return TypeRef{Kind: SimpleRef, Name: name}
}

// Named creates a reference to a named type declared in a package
func Named(pkgPath, pkgName, name string) TypeRef {
	return TypeRef{Kind: SimpleRef, Name: name, Package: pkgPath, PackageName: pkgName}
}

// TypeVar creates a reference to a type variable
func TypeVar(name string) TypeRef {
	return TypeRef{Kind: TypeVarRef, Name: name}
}

// Parameterized creates a generic application of raw to args
func Parameterized(raw TypeRef, args ...TypeRef) TypeRef {
	return TypeRef{
		Kind:        ParameterizedRef,
		Name:        raw.Name,
		Package:     raw.Package,
		PackageName: raw.PackageName,
		Args:        args,
	}
}

// Composite creates a composite type built by a raw type constructor
func Composite(raw string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: ParameterizedRef, Name: raw, Args: args}
}

// PointerTo creates a pointer type
func PointerTo(elem TypeRef) TypeRef { return Composite(RawPointer, elem) }

// SliceOf creates a slice type
func SliceOf(elem TypeRef) TypeRef { return Composite(RawSlice, elem) }

// MapOf creates a map type
func MapOf(key, value TypeRef) TypeRef { return Composite(RawMap, key, value) }

// FuncOf creates a func type
func FuncOf(params, results []TypeRef) TypeRef {
	args := make([]TypeRef, 0, len(params)+len(results))
	args = append(args, params...)
	args = append(args, results...)
	return TypeRef{Kind: ParameterizedRef, Name: RawFunc, Args: args, Params: len(params)}
}

// IsComposite reports whether the ref is built by a type constructor rather
// than a named generic type
func (t TypeRef) IsComposite() bool {
	if t.Kind != ParameterizedRef || t.Package != "" {
		return false
	}
	switch t.Name {
	case RawPointer, RawSlice, RawMap, RawChan, RawRecvChan, RawSendChan, RawEllipsis, RawFunc:
		return true
	}
	return isArrayRaw(t.Name)
}

// IsPredeclared reports whether the ref names a predeclared type
func (t TypeRef) IsPredeclared() bool {
	return t.Kind == SimpleRef && t.Package == "" && types.Universe.Lookup(t.Name) != nil
}

// IsError reports whether the ref is the predeclared error type
func (t TypeRef) IsError() bool {
	return t.Kind == SimpleRef && t.Package == "" && t.Name == "error"
}

// FreeVariables returns the names of all type variables in the ref, in order
// of first appearance
func (t TypeRef) FreeVariables() []string {
	var names []string
	seen := make(map[string]bool)
	t.collectVariables(&names, seen)
	return names
}

func (t TypeRef) collectVariables(names *[]string, seen map[string]bool) {
	if t.Kind == TypeVarRef {
		if !seen[t.Name] {
			seen[t.Name] = true
			*names = append(*names, t.Name)
		}
		return
	}
	for _, arg := range t.Args {
		arg.collectVariables(names, seen)
	}
}

// Packages returns the import paths of every named type in the ref
func (t TypeRef) Packages() []string {
	var paths []string
	if t.Package != "" {
		paths = append(paths, t.Package)
	}
	for _, arg := range t.Args {
		paths = append(paths, arg.Packages()...)
	}
	return paths
}

// String renders the ref using package names as qualifiers
func (t TypeRef) String() string {
	return t.Render(func(_, pkgName string) string { return pkgName })
}

// Render renders the ref as Go source, qualifying named types with q
func (t TypeRef) Render(q Qualifier) string {
	var b strings.Builder
	t.write(&b, q)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder, q Qualifier) {
	switch t.Kind {
	case TypeVarRef:
		b.WriteString(t.Name)
	case SimpleRef:
		t.writeName(b, q)
	case ParameterizedRef:
		if !t.IsComposite() {
			t.writeName(b, q)
			b.WriteString("[")
			writeList(b, t.Args, q)
			b.WriteString("]")
			return
		}
		t.writeComposite(b, q)
	}
}

func (t TypeRef) writeName(b *strings.Builder, q Qualifier) {
	if t.Package != "" && q != nil {
		if qualifier := q(t.Package, t.PackageName); qualifier != "" {
			b.WriteString(qualifier)
			b.WriteString(".")
		}
	}
	b.WriteString(t.Name)
}

func (t TypeRef) writeComposite(b *strings.Builder, q Qualifier) {
	switch t.Name {
	case RawPointer, RawSlice, RawEllipsis:
		b.WriteString(t.Name)
		t.arg(0).write(b, q)
	case RawMap:
		b.WriteString("map[")
		t.arg(0).write(b, q)
		b.WriteString("]")
		t.arg(1).write(b, q)
	case RawChan, RawRecvChan, RawSendChan:
		b.WriteString(t.Name)
		b.WriteString(" ")
		elem := t.arg(0)
		// chan (<-chan T) needs parentheses to bind the inner direction
		if t.Name == RawChan && elem.Kind == ParameterizedRef && elem.Name == RawRecvChan {
			b.WriteString("(")
			elem.write(b, q)
			b.WriteString(")")
			return
		}
		elem.write(b, q)
	case RawFunc:
		params, results := t.FuncParts()
		b.WriteString("func(")
		writeList(b, params, q)
		b.WriteString(")")
		switch len(results) {
		case 0:
		case 1:
			b.WriteString(" ")
			results[0].write(b, q)
		default:
			b.WriteString(" (")
			writeList(b, results, q)
			b.WriteString(")")
		}
	default:
		// array: the raw type carries the length, e.g. "[4]"
		b.WriteString(t.Name)
		t.arg(0).write(b, q)
	}
}

// FuncParts splits the arguments of a func ref into parameters and results
func (t TypeRef) FuncParts() (params, results []TypeRef) {
	n := t.Params
	if n > len(t.Args) {
		n = len(t.Args)
	}
	return t.Args[:n], t.Args[n:]
}

func (t TypeRef) arg(i int) TypeRef {
	if i < len(t.Args) {
		return t.Args[i]
	}
	return Simple("invalid")
}

func writeList(b *strings.Builder, refs []TypeRef, q Qualifier) {
	for i, ref := range refs {
		if i > 0 {
			b.WriteString(", ")
		}
		ref.write(b, q)
	}
}

func isArrayRaw(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]")
}

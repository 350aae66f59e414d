package models

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// DeclKind represents the kind of a declared type
type DeclKind int

const (
	InterfaceKind DeclKind = iota
	OtherKind
)

// String returns the string representation of the declaration kind
func (k DeclKind) String() string {
	if k == InterfaceKind {
		return "interface"
	}
	return "other"
}

// MarshalText encodes the kind by name
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *DeclKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "interface", "":
		*k = InterfaceKind
	case "other":
		*k = OtherKind
	default:
		return fmt.Errorf("unknown declaration kind %q", text)
	}
	return nil
}

// DeclID addresses a declaration inside a DeclSet
type DeclID int

// NoDecl is the zero reference for optional declaration links
const NoDecl DeclID = -1

// DeclRef references a declaration by package and qualified name
type DeclRef struct {
	Package string `yaml:"package,omitempty"`
	Name    string `yaml:"name"`
}

// String returns the qualified form of the reference
func (r DeclRef) String() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// Param represents a method parameter or result
type Param struct {
	Name string  `yaml:"name,omitempty"`
	Type TypeRef `yaml:"type"`
}

// MethodSignature represents a method declared by an interface
type MethodSignature struct {
	Name    string  `yaml:"name"`
	Params  []Param `yaml:"params,omitempty"`
	Results []Param `yaml:"results,omitempty"`
	Routes  []Route `yaml:"routes,omitempty"`
	Line    int     `yaml:"line,omitempty"`
}

// HasDefault reports whether the method is served by a supplied default body
func (m MethodSignature) HasDefault() bool {
	for _, route := range m.Routes {
		if route.Default {
			return true
		}
	}
	return false
}

// PrimaryRoute returns the first route annotation on the method
func (m MethodSignature) PrimaryRoute() (Route, bool) {
	if len(m.Routes) == 0 {
		return Route{}, false
	}
	return m.Routes[0], true
}

// Variadic reports whether the last parameter is variadic
func (m MethodSignature) Variadic() bool {
	if len(m.Params) == 0 {
		return false
	}
	last := m.Params[len(m.Params)-1].Type
	return last.Kind == ParameterizedRef && last.Name == RawEllipsis
}

// ReturnsError reports whether the last result is the error type
func (m MethodSignature) ReturnsError() bool {
	return len(m.Results) > 0 && m.Results[len(m.Results)-1].Type.IsError()
}

// SuperInterfaceEdge is an embedded interface together with the type
// arguments supplied at the embedding site
type SuperInterfaceEdge struct {
	Parent DeclRef   `yaml:"parent"`
	Args   []TypeRef `yaml:"args,omitempty"`
	Line   int       `yaml:"line,omitempty"`
}

// TypeDecl represents a declared type: an interface candidate or a container
// of nested declarations
type TypeDecl struct {
	ID          DeclID
	Kind        DeclKind
	Name        string
	Package     string // import path
	PackageName string
	Dir         string // directory generated artifacts are written to
	File        string
	Line        int
	TypeParams  []string
	Methods     []MethodSignature
	Embeds      []SuperInterfaceEdge
	Routes      []Route
	Constraint  bool // interface carries type-set elements and can only be a constraint
	Outer       DeclID
	Nested      []DeclID
}

// IsInterface reports whether the declaration is an interface
func (d *TypeDecl) IsInterface() bool {
	return d.Kind == InterfaceKind
}

// IsGeneric reports whether the declaration has its own type parameters
func (d *TypeDecl) IsGeneric() bool {
	return len(d.TypeParams) > 0
}

// Exported reports whether the declaration is visible outside its package
func (d *TypeDecl) Exported() bool {
	return token.IsExported(d.Name)
}

// Location returns a file:line description of the declaration
func (d *TypeDecl) Location() string {
	if d.File == "" {
		return d.Name
	}
	if d.Line == 0 {
		return d.File
	}
	return d.File + ":" + strconv.Itoa(d.Line)
}

// Method returns the directly declared method with the given name
func (d *TypeDecl) Method(name string) (MethodSignature, bool) {
	for _, method := range d.Methods {
		if method.Name == name {
			return method, true
		}
	}
	return MethodSignature{}, false
}

// qualifiedName joins outer declaration names with the declaration name
func qualifiedName(names []string) string {
	return strings.Join(names, ".")
}

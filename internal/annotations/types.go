package annotations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
)

// Kind is a route annotation kind, the word following the axon:: prefix
type Kind string

const (
	GetKind      Kind = "get"
	PostKind     Kind = "post"
	PutKind      Kind = "put"
	DeleteKind   Kind = "delete"
	PatchKind    Kind = "patch"
	ExchangeKind Kind = "exchange"
)

// Verb returns the HTTP verb implied by the kind. Exchange routes carry their
// verb as a parameter and return an empty string here.
func (k Kind) Verb() string {
	if k == ExchangeKind {
		return ""
	}
	return strings.ToUpper(string(k))
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// BuiltinKinds returns every route kind shipped with axonbase, in a stable order
func BuiltinKinds() []Kind {
	return []Kind{GetKind, PostKind, PutKind, DeleteKind, PatchKind, ExchangeKind}
}

// ParseKind converts a string such as "GET" or "exchange" to a Kind
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, builtin := range BuiltinKinds() {
		if kind == builtin {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown route annotation kind: %s", s)
}

// ParseKinds converts a list of kind names, dropping duplicates
func ParseKinds(names []string) ([]Kind, error) {
	seen := make(map[Kind]bool)
	var kinds []Kind
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			kind, err := ParseKind(part)
			if err != nil {
				return nil, err
			}
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds, nil
}

// ParsedAnnotation represents a fully parsed route annotation with type-safe parameters
type ParsedAnnotation struct {
	Kind       Kind                   // Annotation kind
	Parameters map[string]interface{} // Typed parameters
	Location   errors.SourceLocation  // Source location
	Raw        string                 // Original annotation text
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// Route converts the annotation to the route attached to a declaration
func (p *ParsedAnnotation) Route() models.Route {
	verb := strings.ToUpper(p.GetString(MethodParam, p.Kind.Verb()))
	return models.Route{
		Kind:    string(p.Kind),
		Verb:    verb,
		Path:    p.GetString(PathParam),
		Default: p.GetBool(DefaultParam),
		File:    p.Location.File,
		Line:    p.Location.Line,
	}
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	Required     bool                    // Whether parameter is required
	DefaultValue interface{}             // Default value if not provided
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// CustomValidator represents a custom validation function for annotations
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for a route annotation kind
type AnnotationSchema struct {
	Kind        Kind                     // Annotation kind
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Validators  []CustomValidator        // Custom validation functions
	Examples    []string                 // Usage examples
}

// ConvertToBool converts various types to boolean
func ConvertToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return parseBoolString(v)
	case int:
		return v != 0, nil
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}

func parseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s", s)
	}
}

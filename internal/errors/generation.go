package errors

import (
	"fmt"
	"strings"
)

// ArityMismatchError reports an embedding edge whose type argument count
// differs from the parent's type parameter count
type ArityMismatchError struct {
	*BaseError
	Child    string
	Parent   string
	Expected int
	Actual   int
}

// NewArityMismatchError creates an arity mismatch error for the edge child -> parent.
// child may be empty when the embedding interface is not known yet.
func NewArityMismatchError(child, parent string, expected, actual int) *ArityMismatchError {
	err := &ArityMismatchError{
		BaseError: New(ArityMismatchCode, ""),
		Parent:    parent,
		Expected:  expected,
		Actual:    actual,
	}
	err.WithContext("parent", parent).
		WithSuggestion(fmt.Sprintf("Instantiate %s with exactly %d type argument(s)", parent, expected))
	return err.WithChild(child)
}

// WithChild records the embedding interface of the edge
func (e *ArityMismatchError) WithChild(child string) *ArityMismatchError {
	e.Child = child
	embedder := child
	if embedder == "" {
		embedder = "embedding"
	}
	e.Message = fmt.Sprintf("%s embeds %s with %d type argument(s), %s declares %d",
		embedder, e.Parent, e.Actual, e.Parent, e.Expected)
	if child != "" {
		e.WithContext("child", child)
	}
	return e
}

// UnresolvedTypeVariableError reports a method whose signature still refers to
// type variables after every substitution along its path was applied
type UnresolvedTypeVariableError struct {
	*BaseError
	Method    string
	Variables []string
}

// NewUnresolvedTypeVariableError creates an unresolved type variable error
func NewUnresolvedTypeVariableError(method string, variables []string) *UnresolvedTypeVariableError {
	err := &UnresolvedTypeVariableError{
		BaseError: Newf(UnresolvedTypeVariableCode,
			"method %s references unbound type variable(s) %s",
			method, strings.Join(variables, ", ")),
		Method:    method,
		Variables: variables,
	}
	err.WithContext("method", method)
	return err
}

// ArtifactWriteError reports a generated artifact that could not be persisted
type ArtifactWriteError struct {
	*BaseError
	Path string
}

// NewArtifactWriteError wraps an I/O failure while writing path
func NewArtifactWriteError(path string, cause error) *ArtifactWriteError {
	err := &ArtifactWriteError{
		BaseError: Wrapf(ArtifactWriteFailureCode, cause, "failed to write generated artifact '%s'", path),
		Path:      path,
	}
	err.WithContext("path", path).
		WithSuggestion("Check that the package directory is writable")
	return err
}

// NewGenericRootError describes an interface skipped because it declares its
// own type parameters
func NewGenericRootError(iface string, params []string, loc SourceLocation) *BaseError {
	return Newf(GenericRootCode, "%s declares type parameters [%s] and is only used as an ancestor",
		iface, strings.Join(params, ", ")).WithLocation(loc)
}

// NewCyclicEmbeddingError describes an embedding edge that leads back into
// the interfaces already on the walk
func NewCyclicEmbeddingError(child, parent string, loc SourceLocation) *BaseError {
	return Newf(CyclicEmbeddingCode, "%s embeds %s which is already part of the walk", child, parent).
		WithLocation(loc).
		WithSuggestion("Remove the cyclic interface embedding")
}

// NewUnknownParentError describes an embedding edge whose parent is not part
// of the scanned declarations
func NewUnknownParentError(child, parent string, loc SourceLocation) *BaseError {
	return Newf(UnknownParentCode, "%s embeds %s which is outside the scanned declarations", child, parent).
		WithLocation(loc)
}

// NewDuplicateGenerationError refuses a second generated type for one interface
func NewDuplicateGenerationError(iface, first, second string) *BaseError {
	return Newf(DuplicateGenerationCode, "%s would be generated twice (%s and %s)", iface, first, second).
		WithContext("interface", iface)
}

// NewUnsupportedTypeError reports a member skipped because one of its type
// expressions cannot be represented by the declaration model
func NewUnsupportedTypeError(member string, cause error, loc SourceLocation) *BaseError {
	return Wrapf(UnsupportedTypeCode, cause, "%s skipped", member).
		WithLocation(loc).
		WithSuggestion("Declare a named type for the expression and reference it instead")
}

// SyntaxError represents a malformed annotation
type SyntaxError struct {
	*BaseError
	Token    string
	Position int
}

// NewSyntaxError creates a syntax error with the given message
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message)}
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{BaseError: Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", item), cause)}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// ValidationError represents an annotation parameter that failed validation
type ValidationError struct {
	*BaseError
	Field    string
	Expected string
	Actual   string
}

// NewValidationError creates a validation error for field
func NewValidationError(field, expected, actual string) *ValidationError {
	return &ValidationError{
		BaseError: Newf(ValidationErrorCode, "invalid %s: expected %s, got %s", field, expected, actual),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrapf(FileSystemErrorCode, cause, "failed to %s '%s'", operation, path).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	return Wrapf(TemplateErrorCode, cause, "failed to %s template '%s'", operation, templateName).
		WithContext("template", templateName)
}

// ConfigurationError creates a configuration error
func ConfigurationError(key, message string) *BaseError {
	return Newf(ConfigurationErrorCode, "configuration error in '%s': %s", key, message).
		WithContext("key", key)
}

package errors

import (
	"fmt"
	"strings"
)

// AxonError defines the base interface for all axonbase errors
type AxonError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	// Core error types
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode
	RegistrationErrorCode
	SchemaErrorCode

	// Declaration graph error types
	ArityMismatchCode
	UnresolvedTypeVariableCode
	GenericRootCode
	CyclicEmbeddingCode
	UnknownParentCode
	UnsupportedTypeCode

	// Generation error types
	GenerationErrorCode
	TemplateErrorCode
	DuplicateGenerationCode
	ArtifactWriteFailureCode
	FileSystemErrorCode

	// Runtime error types
	ConfigurationErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:            "SyntaxError",
	ValidationErrorCode:        "ValidationError",
	RegistrationErrorCode:      "RegistrationError",
	SchemaErrorCode:            "SchemaError",
	ArityMismatchCode:          "ArityMismatch",
	UnresolvedTypeVariableCode: "UnresolvedTypeVariable",
	GenericRootCode:            "GenericRoot",
	CyclicEmbeddingCode:        "CyclicEmbedding",
	UnknownParentCode:          "UnknownParent",
	UnsupportedTypeCode:        "UnsupportedType",
	GenerationErrorCode:        "GenerationError",
	TemplateErrorCode:          "TemplateError",
	DuplicateGenerationCode:    "DuplicateGeneration",
	ArtifactWriteFailureCode:   "ArtifactWriteFailure",
	FileSystemErrorCode:        "FileSystemError",
	ConfigurationErrorCode:     "ConfigurationError",
}

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// Fatal reports whether errors of this code abort a generation round
func (e ErrorCode) Fatal() bool {
	switch e {
	case ArtifactWriteFailureCode, DuplicateGenerationCode, ConfigurationErrorCode, FileSystemErrorCode:
		return true
	default:
		return false
	}
}

// SourceLocation represents where an error occurred in source code
type SourceLocation struct {
	File   string // file path where error occurred
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the AxonError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // where the error occurred
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	msg := e.Message
	if e.Cause != nil && !strings.Contains(msg, e.Cause.Error()) {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Loc.IsEmpty() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), msg)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the source location where the error occurred
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// CodeOf returns the code of the first AxonError in err's chain
func CodeOf(err error) ErrorCode {
	for err != nil {
		if axonErr, ok := err.(AxonError); ok {
			return axonErr.ErrorCode()
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return UnknownErrorCode
}

func (e *BaseError) base() *BaseError {
	return e
}

// Locate returns err as an AxonError located at loc. Errors that already
// carry a location keep it; foreign errors are wrapped with code.
func Locate(err error, code ErrorCode, loc SourceLocation) AxonError {
	for current := err; current != nil; {
		if axonErr, ok := current.(AxonError); ok {
			if carrier, ok := axonErr.(interface{ base() *BaseError }); ok && carrier.base().Loc.IsEmpty() {
				carrier.base().WithLocation(loc)
			}
			return axonErr
		}
		unwrapper, ok := current.(interface{ Unwrap() error })
		if !ok {
			break
		}
		current = unwrapper.Unwrap()
	}
	return Wrap(code, "operation failed", err).WithLocation(loc)
}

// MultipleErrors represents multiple errors collected together
type MultipleErrors struct {
	Errors []AxonError
}

// Error implements the error interface
func (e *MultipleErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap returns every collected error for errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add adds an error to the collection
func (e *MultipleErrors) Add(err AxonError) {
	e.Errors = append(e.Errors, err)
}

// IsEmpty returns true if there are no errors
func (e *MultipleErrors) IsEmpty() bool {
	return e.Count() == 0
}

// Count returns the number of errors
func (e *MultipleErrors) Count() int {
	if e == nil {
		return 0
	}
	return len(e.Errors)
}

// ErrOrNil returns the collection as an error, or nil when it is empty
func (e *MultipleErrors) ErrOrNil() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}

// NewMultipleErrors creates a new MultipleErrors collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]AxonError, 0),
	}
}

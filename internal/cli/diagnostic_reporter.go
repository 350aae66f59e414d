package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/axonbase/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporterTo creates a reporter writing to out
func NewDiagnosticReporterTo(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportWarning reports a recoverable problem on one line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Generation Failed\n")
	fmt.Fprintf(r.out, "========================\n\n")

	axonErr := findAxonError(err)
	if axonErr == nil {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
		return
	}

	r.printErrorHeader(axonErr.ErrorCode())
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := axonErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}

	if context := axonErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := axonErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string
	switch code {
	case errors.ArtifactWriteFailureCode:
		title = "Artifact Write Failure"
	case errors.DuplicateGenerationCode:
		title = "Duplicate Generation"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.SyntaxErrorCode:
		title = "Syntax Error"
	default:
		title = code.String()
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.out, "\n")
}

// printErrorChain prints every error of the unwrap chain
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "   %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
	fmt.Fprintf(r.out, "\n")
}

// findAxonError returns the first AxonError in err's chain
func findAxonError(err error) errors.AxonError {
	for err != nil {
		if axonErr, ok := err.(errors.AxonError); ok {
			return axonErr
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = unwrapper.Unwrap()
	}
	return nil
}

// GenerationSummary contains information about one generation round
type GenerationSummary struct {
	RoundID           string
	PackagesScanned   int
	InterfacesScanned int
	Candidates        int
	Generated         int
	Unchanged         int
	NotNeeded         int
	Issues            *errors.MultipleErrors
	GeneratedFiles    []string
	RemovedFiles      []string
}

// Stats returns the summary counters keyed for display
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"round":              s.RoundID,
		"packages scanned":   s.PackagesScanned,
		"interfaces scanned": s.InterfacesScanned,
		"candidates":         s.Candidates,
		"generated":          s.Generated,
		"unchanged":          s.Unchanged,
		"not needed":         s.NotNeeded,
		"issues":             s.Issues.Count(),
	}
}

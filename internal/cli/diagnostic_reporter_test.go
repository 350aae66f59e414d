package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/axonbase/internal/errors"
)

func TestDiagnosticReporter_ReportError(t *testing.T) {
	var out bytes.Buffer
	reporter := NewDiagnosticReporterTo(true, &out)

	err := fmt.Errorf("round: %w", errors.NewDuplicateGenerationError("UserAPI", "api/a.go:3", "api/b.go:9").
		WithContext("target_path", "api/autogen_user_api_base.go").
		WithSuggestion("Rename one of the interfaces"))
	reporter.ReportError(err)

	report := out.String()
	assert.Contains(t, report, "Type: Duplicate Generation")
	assert.Contains(t, report, "UserAPI would be generated twice (api/a.go:3 and api/b.go:9)")
	assert.Contains(t, report, "   Interface: UserAPI\n   Target Path: api/autogen_user_api_base.go\n")
	assert.Contains(t, report, "   1. Rename one of the interfaces")
	assert.Contains(t, report, "Error Chain:")
}

func TestDiagnosticReporter_ReportErrorLocation(t *testing.T) {
	var out bytes.Buffer
	reporter := NewDiagnosticReporterTo(false, &out)

	err := errors.Wrap(errors.SyntaxErrorCode, "bad annotation", fs.ErrInvalid).
		WithLocation(errors.SourceLocation{File: "api/api.go", Line: 7})
	reporter.ReportError(err)

	report := out.String()
	assert.Contains(t, report, "Type: Syntax Error")
	assert.Contains(t, report, "Location: api/api.go:7")
	assert.NotContains(t, report, "Error Chain:")
}

func TestDiagnosticReporter_PlainError(t *testing.T) {
	var out bytes.Buffer
	NewDiagnosticReporterTo(false, &out).ReportError(fmt.Errorf("boom"))
	assert.Contains(t, out.String(), "Message: boom")
	assert.NotContains(t, out.String(), "Type:")
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	var out bytes.Buffer
	NewDiagnosticReporterTo(false, &out).ReportWarning("nothing to generate")
	assert.Contains(t, out.String(), "nothing to generate\n")
}

func TestGenerationSummary_Stats(t *testing.T) {
	issues := errors.NewMultipleErrors()
	issues.Add(errors.NewArityMismatchError("Store", "Pair", 2, 1))

	stats := GenerationSummary{RoundID: "r1", Generated: 2, Issues: issues}.Stats()
	assert.Equal(t, "r1", stats["round"])
	assert.Equal(t, 2, stats["generated"])
	assert.Equal(t, 1, stats["issues"])
	assert.Equal(t, 0, stats["unchanged"])

	assert.Equal(t, 0, GenerationSummary{}.Stats()["issues"])
}

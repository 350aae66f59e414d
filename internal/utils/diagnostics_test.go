package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/axonbase/internal/errors"
)

func TestDiagnosticSystem_Levels(t *testing.T) {
	var buf bytes.Buffer
	diag := NewBufferedDiagnostics(DiagnosticWarn, &buf)

	diag.Info("hidden")
	diag.Verbose("hidden")
	diag.Warn("careful %d", 1)
	diag.Error("broken")

	assert.Equal(t, "[WARN] careful 1\n[ERROR] broken\n", buf.String())
}

func TestDiagnosticSystem_Silent(t *testing.T) {
	var buf bytes.Buffer
	diag := NewBufferedDiagnostics(DiagnosticSilent, &buf)

	diag.Error("nothing")
	diag.Summary("Done", map[string]interface{}{"a": 1})

	assert.Empty(t, buf.String())
}

func TestDiagnosticSystem_SummaryIsSorted(t *testing.T) {
	var buf bytes.Buffer
	diag := NewBufferedDiagnostics(DiagnosticInfo, &buf)

	diag.Summary("Generation complete", map[string]interface{}{
		"generated":  2,
		"candidates": 3,
		"issues":     0,
	})

	assert.Equal(t, "\nGeneration complete\n   candidates: 3\n   generated: 2\n   issues: 0\n\n", buf.String())
}

func TestDiagnosticSystem_Issue(t *testing.T) {
	err := errors.NewCyclicEmbeddingError("A", "B", errors.SourceLocation{})

	t.Run("warn level shows message only", func(t *testing.T) {
		var buf bytes.Buffer
		NewBufferedDiagnostics(DiagnosticWarn, &buf).Issue(err)
		assert.Equal(t, "[WARN] A embeds B which is already part of the walk [CyclicEmbedding]\n", buf.String())
	})

	t.Run("verbose level adds hints", func(t *testing.T) {
		var buf bytes.Buffer
		NewBufferedDiagnostics(DiagnosticVerbose, &buf).Issue(err)
		assert.Contains(t, buf.String(), "  hint: Remove the cyclic interface embedding\n")
	})
}

func TestDiagnosticSystem_Indent(t *testing.T) {
	var buf bytes.Buffer
	diag := NewBufferedDiagnostics(DiagnosticInfo, &buf)

	diag.Indent()
	diag.List("UserAPI")
	diag.Unindent()
	diag.Unindent()
	diag.PhaseItem("done")

	assert.Equal(t, "  - UserAPI\n✓ done\n", buf.String())
}

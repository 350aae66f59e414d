package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoCode(t *testing.T) {
	source := "package api\nimport (\n\"fmt\"\n\"context\"\n)\nfunc  f(ctx context.Context)  { fmt.Println(ctx) }\n"

	formatted, err := FormatGoCode("autogen_api_base.go", []byte(source))
	require.NoError(t, err)
	assert.Equal(t, "package api\n\nimport (\n\t\"context\"\n\t\"fmt\"\n)\n\nfunc f(ctx context.Context) { fmt.Println(ctx) }\n", string(formatted))
}

func TestFormatGoCode_KeepsUnusedImports(t *testing.T) {
	source := "package api\n\nimport \"strings\"\n"

	formatted, err := FormatGoCode("autogen_api_base.go", []byte(source))
	require.NoError(t, err)
	assert.Contains(t, string(formatted), `import "strings"`)
}

func TestFormatGoCode_InvalidSyntax(t *testing.T) {
	_, err := FormatGoCode("broken.go", []byte("package api\nfunc {"))
	assert.ErrorContains(t, err, "invalid Go syntax")
}

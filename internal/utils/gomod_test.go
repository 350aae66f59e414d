package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGoModule(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":              "module example.com/app\n\ngo 1.22\n",
		"internal/api/api.go": "package api",
	})

	mod, err := FindGoModule(filepath.Join(root, "internal", "api"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", mod.Path)

	expectedRoot, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, expectedRoot, mod.Root)

	path, err := mod.ImportPath(filepath.Join(root, "internal", "api"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/internal/api", path)

	path, err = mod.ImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", path)

	_, err = mod.ImportPath(filepath.Dir(root))
	assert.Error(t, err)
}

func TestParseModuleName_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := ParseModuleName(filepath.Join(root, "go.mod"))
	assert.ErrorContains(t, err, "failed to read go.mod file")

	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.22\n"), 0644))
	_, err = ParseModuleName(filepath.Join(root, "go.mod"))
	assert.ErrorContains(t, err, "no module declaration")
}

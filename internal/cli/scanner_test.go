package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestParsePatterns(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	patterns, err := parsePatterns([]string{"./...", "...", "./api", "/abs/dir/..."})
	require.NoError(t, err)
	require.Len(t, patterns, 4)

	assert.Equal(t, pattern{dir: wd, recursive: true}, patterns[0])
	assert.Equal(t, pattern{dir: wd, recursive: true}, patterns[1])
	assert.Equal(t, pattern{dir: filepath.Join(wd, "api")}, patterns[2])
	assert.Equal(t, pattern{dir: "/abs/dir", recursive: true}, patterns[3])
}

func TestDirectoryScanner_ScanDirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"api/api.go":             "package api",
		"api/v2/api.go":          "package v2",
		"docs/readme.md":         "# docs",
		"testdata/fixture.go":    "package fixture",
		"tests/only_test.go":     "package tests",
		"generated/autogen_x.go": "package generated",
	})
	scanner := NewDirectoryScanner()

	t.Run("recursive pattern", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{root + "/..."})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "api"),
			filepath.Join(root, "api", "v2"),
		}, dirs)
	})

	t.Run("plain directory is one package", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{filepath.Join(root, "api")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "api")}, dirs)
	})

	t.Run("plain directory without sources", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{filepath.Join(root, "docs")})
		require.NoError(t, err)
		assert.Empty(t, dirs)
	})

	t.Run("overlapping patterns are deduplicated", func(t *testing.T) {
		dirs, err := scanner.ScanDirectories([]string{filepath.Join(root, "api"), root + "/..."})
		require.NoError(t, err)
		assert.Len(t, dirs, 2)
		assert.Equal(t, filepath.Join(root, "api"), dirs[0])
	})
}

func TestDirectoryScanner_ExpandDirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"api/autogen_user_api_base.go": "package api",
		"empty/.keep":                  "",
	})

	dirs, err := NewDirectoryScanner().ExpandDirectories([]string{root + "/..."})
	require.NoError(t, err)
	assert.Contains(t, dirs, filepath.Join(root, "api"))
	assert.Contains(t, dirs, filepath.Join(root, "empty"))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axonbase/internal/utils"
)

// parsedGenerateCmd returns a generate command whose flags are parsed from args
func parsedGenerateCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd(os.Stdout, os.Stderr)
	cmd, _, err := root.Find([]string{"generate"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "axonbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
directories: [./api/...]
kinds: [get, post]
module: github.com/acme/app
dry_run: true
prune: true
snapshots: [decls.yaml]
`)
	s, err := loadSettings(parsedGenerateCmd(t, "--config", path), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"./api/..."}, s.Directories)
	assert.Equal(t, []string{"get", "post"}, s.Kinds)
	assert.Equal(t, "github.com/acme/app", s.Module)
	assert.True(t, s.DryRun)
	assert.True(t, s.Prune)
	assert.Equal(t, []string{"decls.yaml"}, s.Snapshots)
}

func TestLoadSettings_Precedence(t *testing.T) {
	path := writeConfig(t, "module: from/file\nkinds: [get]\nverbose: true\n")
	t.Setenv("AXONBASE_MODULE", "from/env")
	t.Setenv("AXONBASE_KINDS", "put,patch")

	s, err := loadSettings(parsedGenerateCmd(t, "--config", path, "--kinds", "delete"), []string{"./..."})
	require.NoError(t, err)

	assert.Equal(t, "from/env", s.Module, "environment overrides the file")
	assert.Equal(t, []string{"delete"}, s.Kinds, "flags override the environment")
	assert.True(t, s.Verbose)
	assert.Equal(t, []string{"./..."}, s.Directories, "arguments override configured directories")
}

func TestLoadSettings_EnvironmentLists(t *testing.T) {
	t.Setenv("AXONBASE_SNAPSHOTS", "a.yaml,b.yaml")
	t.Setenv("AXONBASE_DRY_RUN", "true")

	s, err := loadSettings(parsedGenerateCmd(t), []string{"."})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, s.Snapshots)
	assert.True(t, s.DryRun)
}

func TestLoadSettings_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "kinds: [get\n")
	_, err := loadSettings(parsedGenerateCmd(t, "--config", path), nil)
	assert.Error(t, err)
}

func TestSettings_Level(t *testing.T) {
	assert.Equal(t, utils.DiagnosticInfo, settings{}.level())
	assert.Equal(t, utils.DiagnosticVerbose, settings{Verbose: true}.level())
	assert.Equal(t, utils.DiagnosticError, settings{Verbose: true, Quiet: true}.level())
}

func TestSettings_Config(t *testing.T) {
	config := settings{Directories: []string{"./..."}, Module: "m", Kinds: []string{"get"}, Prune: true}.config()
	assert.Equal(t, []string{"./..."}, config.Directories)
	assert.Equal(t, "m", config.ModuleName)
	assert.Equal(t, []string{"get"}, config.Kinds)
	assert.True(t, config.Prune)
}

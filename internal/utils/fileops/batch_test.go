package fileops

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axonbase/internal/errors"
)

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	return matches
}

func TestBatch_Commit(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "autogen_a_base.go")
	second := filepath.Join(dir, "autogen_b_base.go")
	batch := NewFileOps().NewBatch()

	require.NoError(t, batch.Stage(first, []byte("package a\n"), 0644))
	require.NoError(t, batch.Stage(second, []byte("package b\n"), 0644))
	assert.NoFileExists(t, first, "staged files stay invisible until commit")

	require.NoError(t, batch.Commit())
	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(content))
	assert.FileExists(t, second)
	assert.Empty(t, tempFiles(t, dir))
}

func TestBatch_CommitFailureRestoresTargets(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "autogen_a_base.go")
	fresh := filepath.Join(dir, "autogen_b_base.go")
	blocked := filepath.Join(dir, "autogen_c_base.go")
	require.NoError(t, os.WriteFile(existing, []byte("package a // old\n"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0755))

	batch := NewFileOps().NewBatch()
	require.NoError(t, batch.Stage(existing, []byte("package a // new\n"), 0644))
	require.NoError(t, batch.Stage(fresh, []byte("package b\n"), 0644))
	require.NoError(t, batch.Stage(blocked, []byte("package c\n"), 0644))

	err := batch.Commit()
	require.Error(t, err)
	var writeErr *errors.ArtifactWriteError
	require.True(t, stderrors.As(err, &writeErr))
	assert.Equal(t, blocked, writeErr.Path)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "package a // old\n", string(content))
	info, err := os.Stat(existing)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.NoFileExists(t, fresh)
	assert.Empty(t, tempFiles(t, dir))
}

func TestBatch_StageFailureDiscards(t *testing.T) {
	dir := t.TempDir()
	batch := NewFileOps().NewBatch()

	require.NoError(t, batch.Stage(filepath.Join(dir, "autogen_a_base.go"), []byte("package a\n"), 0644))
	err := batch.Stage(filepath.Join(dir, "missing", "autogen_b_base.go"), []byte("package b\n"), 0644)
	require.Error(t, err)
	assert.Equal(t, errors.ArtifactWriteFailureCode, errors.CodeOf(err))
	assert.Empty(t, tempFiles(t, dir))

	require.NoError(t, batch.Commit())
	assert.NoFileExists(t, filepath.Join(dir, "autogen_a_base.go"))
}

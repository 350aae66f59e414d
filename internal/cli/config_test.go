package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("requires input", func(t *testing.T) {
		_, err := Config{}.Validate()
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("snapshots alone are enough", func(t *testing.T) {
		_, err := Config{Snapshots: []string{"decls.yaml"}}.Validate()
		assert.NoError(t, err)
	})

	t.Run("restricts kinds", func(t *testing.T) {
		kinds, err := Config{Directories: []string{"."}, Kinds: []string{"get", "post"}}.Validate()
		require.NoError(t, err)
		assert.ElementsMatch(t, []annotations.Kind{annotations.GetKind, annotations.PostKind}, kinds)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := Config{Directories: []string{"."}, Kinds: []string{"fetch"}}.Validate()
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})
}

package annotations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NotNil(t, registry)
	assert.Empty(t, registry.ListKinds())
}

func TestDefaultRegistry(t *testing.T) {
	registry1 := DefaultRegistry()
	registry2 := DefaultRegistry()

	assert.Same(t, registry1, registry2)
	assert.Equal(t,
		[]Kind{DeleteKind, ExchangeKind, GetKind, PatchKind, PostKind, PutKind},
		registry1.ListKinds())
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	schema := verbSchema(GetKind)

	require.NoError(t, registry.Register(schema))
	assert.True(t, registry.IsRegistered(GetKind))
	assert.False(t, registry.IsRegistered(PostKind))

	err := registry.Register(schema)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	got, err := registry.GetSchema(GetKind)
	require.NoError(t, err)
	assert.Contains(t, got.Parameters, DefaultParam)

	_, err = registry.GetSchema(PostKind)
	assert.Error(t, err)
}

func TestRegisterInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema AnnotationSchema
	}{
		{
			name:   "missing kind",
			schema: AnnotationSchema{Description: "no kind"},
		},
		{
			name: "empty parameter name",
			schema: AnnotationSchema{
				Kind:       GetKind,
				Parameters: map[string]ParameterSpec{"": {Type: StringType}},
			},
		},
		{
			name: "mismatched default",
			schema: AnnotationSchema{
				Kind:       GetKind,
				Parameters: map[string]ParameterSpec{"Default": {Type: BoolType, DefaultValue: "yes"}},
			},
		},
		{
			name: "invalid parameter type",
			schema: AnnotationSchema{
				Kind:       GetKind,
				Parameters: map[string]ParameterSpec{"x": {Type: ParameterType(42)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewRegistry().Register(tt.schema))
		})
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterBuiltinSchemas(registry))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, kind := range BuiltinKinds() {
				assert.True(t, registry.IsRegistered(kind))
			}
		}()
	}
	wg.Wait()
}

package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/axonbase/internal/models"
)

func method(name string, routes ...models.Route) models.MethodSignature {
	return models.MethodSignature{Name: name, Routes: routes}
}

func TestMatcher_Matches(t *testing.T) {
	matcher := NewMatcher(GetKind, PostKind)

	assert.True(t, matcher.Matches(method("Get", models.Route{Kind: "get"})))
	assert.True(t, matcher.Matches(method("Both", models.Route{Kind: "patch"}, models.Route{Kind: "post"})))
	assert.False(t, matcher.Matches(method("Patch", models.Route{Kind: "patch"})))
	assert.False(t, matcher.Matches(method("Plain")))
}

func TestMatcher_DefaultBodiedMethodsNeverMatch(t *testing.T) {
	matcher := NewMatcher()

	health := method("Health", models.Route{Kind: "get", Path: "/health", Default: true})
	assert.False(t, matcher.Matches(health))
}

func TestMatcher_HasAnyMatch(t *testing.T) {
	matcher := NewMatcher()

	t.Run("no annotations", func(t *testing.T) {
		decl := &models.TypeDecl{Name: "Plain"}
		needs, count := matcher.HasAnyMatch(decl, []models.MethodSignature{method("A"), method("B")})
		assert.False(t, needs)
		assert.Zero(t, count)
	})

	t.Run("interface annotation alone", func(t *testing.T) {
		decl := &models.TypeDecl{Name: "API", Routes: []models.Route{{Kind: "exchange", Path: "/api"}}}
		needs, count := matcher.HasAnyMatch(decl, []models.MethodSignature{method("A")})
		assert.True(t, needs)
		assert.Zero(t, count)
	})

	t.Run("counts every matching method", func(t *testing.T) {
		decl := &models.TypeDecl{Name: "API", Routes: []models.Route{{Kind: "exchange"}}}
		closure := []models.MethodSignature{
			method("Get", models.Route{Kind: "get"}),
			method("Health", models.Route{Kind: "get", Default: true}),
			method("Post", models.Route{Kind: "post"}),
		}
		needs, count := matcher.HasAnyMatch(decl, closure)
		assert.True(t, needs)
		assert.Equal(t, 2, count)
	})

	t.Run("unrecognized kinds", func(t *testing.T) {
		decl := &models.TypeDecl{Name: "API", Routes: []models.Route{{Kind: "exchange"}}}
		needs, _ := NewMatcher(GetKind).HasAnyMatch(decl, []models.MethodSignature{method("Put", models.Route{Kind: "put"})})
		assert.False(t, needs)
	})
}

func TestMatcher_Kinds(t *testing.T) {
	assert.Equal(t, []Kind{GetKind, PostKind}, NewMatcher(PostKind, GetKind).Kinds())
	assert.Len(t, NewMatcher().Kinds(), 6)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclSet_AddAndLookup(t *testing.T) {
	set := NewDeclSet()

	app, err := set.Add(TypeDecl{
		Kind:        OtherKind,
		Name:        "Application",
		Package:     "example.com/app/api",
		PackageName: "api",
		Dir:         "/work/api",
	}, NoDecl)
	require.NoError(t, err)

	userAPI, err := set.Add(TypeDecl{Name: "UserAPI"}, app)
	require.NoError(t, err)

	root, err := set.Add(TypeDecl{Name: "UserAPI", Package: "example.com/app/api"}, NoDecl)
	require.NoError(t, err, "a root with the same simple name does not collide with a nested one")

	nested := set.Get(userAPI)
	require.NotNil(t, nested)
	assert.Equal(t, "example.com/app/api", nested.Package, "nested declarations inherit the package")
	assert.Equal(t, "/work/api", nested.Dir)
	assert.Equal(t, app, nested.Outer)
	assert.Equal(t, []DeclID{userAPI}, set.Get(app).Nested)

	found, ok := set.Lookup(DeclRef{Package: "example.com/app/api", Name: "Application.UserAPI"})
	require.True(t, ok)
	assert.Equal(t, userAPI, found.ID)

	assert.Equal(t, DeclRef{Package: "example.com/app/api", Name: "Application.UserAPI"}, set.Ref(userAPI))
	assert.Equal(t, []DeclID{app, root}, set.Roots())
	assert.Equal(t, 3, set.Len())
	assert.Len(t, set.Interfaces(), 2)
}

func TestDeclSet_AddErrors(t *testing.T) {
	set := NewDeclSet()

	_, err := set.Add(TypeDecl{Package: "example.com/app"}, NoDecl)
	assert.Error(t, err)

	_, err = set.Add(TypeDecl{Name: "Orphan"}, DeclID(7))
	assert.Error(t, err)

	_, err = set.Add(TypeDecl{Name: "Repo", Package: "example.com/app", File: "repo.go", Line: 3}, NoDecl)
	require.NoError(t, err)
	_, err = set.Add(TypeDecl{Name: "Repo", Package: "example.com/app"}, NoDecl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined at repo.go:3")
}

func TestDeclSet_Missing(t *testing.T) {
	set := NewDeclSet()
	assert.Nil(t, set.Get(NoDecl))
	assert.Nil(t, set.Get(DeclID(3)))
	assert.Equal(t, DeclRef{}, set.Ref(DeclID(3)))

	_, ok := set.Lookup(DeclRef{Name: "Nope"})
	assert.False(t, ok)
}

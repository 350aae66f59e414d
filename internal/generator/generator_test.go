package generator

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
	"github.com/toyz/axonbase/internal/parser"
	"github.com/toyz/axonbase/internal/walker"
)

const testImportPath = "example.com/app/api"

// generateArchive runs a full round over the Go sources of a txtar archive
// and returns the generated artifacts by file name along with the issues
func generateArchive(t *testing.T, ar *txtar.Archive) (map[string]string, []errors.AxonError) {
	t.Helper()

	set := models.NewDeclSet()
	p := parser.NewParser(annotations.DefaultRegistry())
	for _, f := range ar.Files {
		if strings.HasPrefix(f.Name, "want/") {
			continue
		}
		require.NoError(t, p.ParseSource(set, filepath.Join("api", f.Name), string(f.Data), testImportPath))
	}

	matcher := annotations.NewMatcher(archiveKinds(t, ar)...)
	gen := NewGenerator()
	issues := append([]errors.AxonError{}, p.Issues()...)
	issues = append(issues, walker.Exclusions(set)...)

	got := make(map[string]string)
	for _, id := range walker.Candidates(set) {
		sel := Select(set, walker.Walk(set, id), matcher)
		issues = append(issues, sel.Issues...)

		generated, err := gen.EmitSelection(set.Get(id), sel)
		require.NoError(t, err)
		if generated == nil {
			continue
		}
		got[filepath.Base(generated.FilePath)] = generated.Content
	}
	return got, issues
}

// archiveKinds reads an optional "Kinds: get, post" line from the comment
func archiveKinds(t *testing.T, ar *txtar.Archive) []annotations.Kind {
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), "Kinds:"); ok {
			kinds, err := annotations.ParseKinds([]string{value})
			require.NoError(t, err)
			return kinds
		}
	}
	return nil
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			want := make(map[string]string)
			for _, f := range ar.Files {
				if rel, ok := strings.CutPrefix(f.Name, "want/"); ok {
					want[rel] = string(f.Data)
				}
			}

			got, _ := generateArchive(t, ar)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("generated artifacts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ar, err := txtar.ParseFile(filepath.Join("testdata", "inheritance.txtar"))
	require.NoError(t, err)

	first, _ := generateArchive(t, ar)
	for i := 0; i < 5; i++ {
		again, _ := generateArchive(t, ar)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestGenerate_ArityEdgeIsolated(t *testing.T) {
	ar, err := txtar.ParseFile(filepath.Join("testdata", "arity.txtar"))
	require.NoError(t, err)

	_, issues := generateArchive(t, ar)

	var arity []errors.AxonError
	for _, issue := range issues {
		switch issue.ErrorCode() {
		case errors.ArityMismatchCode:
			arity = append(arity, issue)
		case errors.GenericRootCode:
		default:
			t.Errorf("unexpected issue: %v", issue)
		}
	}
	require.Len(t, arity, 1)
	assert.Contains(t, arity[0].Error(), "Store embeds Pair with 1 type argument(s), Pair declares 2")
}

func TestEmit_NotNeeded(t *testing.T) {
	decl := &models.TypeDecl{Kind: models.InterfaceKind, Name: "Plain", Package: testImportPath, PackageName: "api"}

	generated, err := NewGenerator().Emit(decl, nil, false)
	require.NoError(t, err)
	assert.Nil(t, generated)
}

func TestEmit_RejectsGenericRoot(t *testing.T) {
	decl := &models.TypeDecl{Kind: models.InterfaceKind, Name: "Repo", PackageName: "api", TypeParams: []string{"T"}}

	_, err := NewGenerator().Emit(decl, nil, true)
	assert.Equal(t, errors.GenericRootCode, errors.CodeOf(err))
}

func TestEmit_RejectsFreeVariables(t *testing.T) {
	decl := &models.TypeDecl{Kind: models.InterfaceKind, Name: "Users", PackageName: "api"}
	stub := Stub{Method: models.MethodSignature{
		Name:    "Get",
		Results: []models.Param{{Type: models.TypeVar("T")}},
	}}

	_, err := NewGenerator().Emit(decl, []Stub{stub}, true)
	assert.Equal(t, errors.UnresolvedTypeVariableCode, errors.CodeOf(err))
}

func TestEmit_Metadata(t *testing.T) {
	decl := &models.TypeDecl{
		Kind: models.InterfaceKind, Name: "userAPI", Package: testImportPath, PackageName: "api",
		Dir: filepath.Join("internal", "api"), File: filepath.Join("internal", "api", "user.go"),
	}
	stub := Stub{Method: models.MethodSignature{
		Name:    "Ping",
		Routes:  []models.Route{{Kind: "get", Verb: "GET", Path: "/ping"}},
		Results: []models.Param{{Type: models.Simple("error")}},
	}}

	generated, err := NewGenerator().Emit(decl, []Stub{stub}, true)
	require.NoError(t, err)

	assert.Equal(t, "userAPIBase", generated.Name)
	assert.Equal(t, filepath.Join("internal", "api", "autogen_user_api_base.go"), generated.FilePath)
	assert.Same(t, decl, generated.Source)
	assert.True(t, generated.NeedsGeneration)
	require.Len(t, generated.Methods, 1)
	assert.Contains(t, generated.Content, "// Source: user.go\n")
	assert.Contains(t, generated.Content, "type myUserAPI struct {")
	assert.Contains(t, generated.Content, `return axon.ErrNotImplemented("userAPI", "Ping")`)
}

func TestEmit_SelfNamedInterface(t *testing.T) {
	decl := &models.TypeDecl{
		Kind: models.InterfaceKind, Name: "Health", Package: testImportPath, PackageName: "api",
		Methods: []models.MethodSignature{{Name: "Health", Results: []models.Param{{Type: models.Simple("error")}}}},
	}
	stub := Stub{Method: models.MethodSignature{
		Name:    "Ready",
		Routes:  []models.Route{{Kind: "get", Verb: "GET", Path: "/ready"}},
		Results: []models.Param{{Type: models.Simple("error")}},
	}}

	generated, err := NewGenerator().Emit(decl, []Stub{stub}, true)
	require.NoError(t, err)

	assert.Equal(t, "healthInterface", EmbeddedName("Health"))
	assert.Contains(t, generated.Content, "type healthInterface = Health\n")
	assert.Contains(t, generated.Content, "type HealthBase struct {\n\thealthInterface\n}")
	assert.Contains(t, generated.Content, "var _ Health = HealthBase{}")

	plain := &models.TypeDecl{Kind: models.InterfaceKind, Name: "Users", Package: testImportPath, PackageName: "api"}
	generated, err = NewGenerator().Emit(plain, []Stub{stub}, true)
	require.NoError(t, err)
	assert.NotContains(t, generated.Content, "usersInterface")
	assert.Contains(t, generated.Content, "type UsersBase struct {\n\tUsers\n}")
}

func TestAccessible(t *testing.T) {
	foreign := models.Named("example.com/app/internal/store", "store", "record")

	tests := []struct {
		name    string
		stub    Stub
		wantErr bool
	}{
		{
			name: "exported foreign types",
			stub: Stub{Method: models.MethodSignature{Name: "Get", Results: []models.Param{
				{Type: models.PointerTo(models.Named("example.com/app/dto", "dto", "User"))},
			}}, OwnerPackage: "example.com/app/crud"},
		},
		{
			name: "unexported local type",
			stub: Stub{Method: models.MethodSignature{Name: "Get", Params: []models.Param{
				{Type: models.Named(testImportPath, "api", "filter")},
			}}, OwnerPackage: testImportPath},
		},
		{
			name: "unexported foreign type nested in a slice",
			stub: Stub{Method: models.MethodSignature{Name: "List", Results: []models.Param{
				{Type: models.SliceOf(foreign)},
			}}},
			wantErr: true,
		},
		{
			name:    "unexported foreign method",
			stub:    Stub{Method: models.MethodSignature{Name: "list"}, OwnerPackage: "example.com/app/crud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Accessible(tt.stub, testImportPath)
			if tt.wantErr {
				assert.Equal(t, errors.UnsupportedTypeCode, errors.CodeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "autogen_user_api_base.go", FileName("UserAPI"))
	assert.Equal(t, "autogen_http_server_base.go", FileName("HTTPServer"))
	assert.Equal(t, "autogen_api_v2_base.go", FileName("ApiV2"))
	assert.Equal(t, "UserAPIBase", BaseName("UserAPI"))
}

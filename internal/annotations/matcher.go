package annotations

import (
	"sort"

	"github.com/toyz/axonbase/internal/models"
)

// Matcher decides which methods and interfaces are generation targets. It is
// built from the closed set of route kinds recognized for one run.
type Matcher struct {
	kinds map[Kind]bool
}

// NewMatcher creates a matcher recognizing kinds. With no kinds every
// built-in route kind is recognized.
func NewMatcher(kinds ...Kind) *Matcher {
	if len(kinds) == 0 {
		kinds = BuiltinKinds()
	}
	set := make(map[Kind]bool, len(kinds))
	for _, kind := range kinds {
		set[kind] = true
	}
	return &Matcher{kinds: set}
}

// Kinds returns the recognized kinds, sorted
func (m *Matcher) Kinds() []Kind {
	kinds := make([]Kind, 0, len(m.kinds))
	for kind := range m.kinds {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Recognizes reports whether the route's kind is in the recognized set
func (m *Matcher) Recognizes(route models.Route) bool {
	return m.kinds[Kind(route.Kind)]
}

// Matches reports whether a method is a stub target: it carries a recognized
// route annotation and no supplied default body
func (m *Matcher) Matches(method models.MethodSignature) bool {
	if method.HasDefault() {
		return false
	}
	for _, route := range method.Routes {
		if m.Recognizes(route) {
			return true
		}
	}
	return false
}

// MatchesInterface reports whether the interface itself carries a recognized
// route annotation
func (m *Matcher) MatchesInterface(decl *models.TypeDecl) bool {
	for _, route := range decl.Routes {
		if m.Recognizes(route) {
			return true
		}
	}
	return false
}

// HasAnyMatch reports whether decl needs a generated base: the interface is
// annotated, or any method of its closure matches. Every method is visited so
// the returned count covers the whole closure.
func (m *Matcher) HasAnyMatch(decl *models.TypeDecl, closure []models.MethodSignature) (bool, int) {
	needs := m.MatchesInterface(decl)
	count := 0
	for _, method := range closure {
		if m.Matches(method) {
			needs = true
			count++
		}
	}
	return needs, count
}

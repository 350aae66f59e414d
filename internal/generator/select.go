package generator

import (
	"github.com/toyz/axonbase/internal/annotations"
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
	"github.com/toyz/axonbase/internal/resolver"
	"github.com/toyz/axonbase/internal/walker"
)

// Selection is the outcome of matching and resolving one interface closure
type Selection struct {
	Stubs           []Stub
	NeedsGeneration bool
	Matches         int                // matched methods before resolution
	SelfNamed       bool               // the closure has a method named after the root
	Issues          []errors.AxonError // skipped edges and methods
}

// Select picks the stub targets of a walked closure and resolves their
// signatures. Methods that fail to resolve are skipped without affecting
// the others.
func Select(set *models.DeclSet, closure walker.Closure, matcher *annotations.Matcher) Selection {
	root := set.Get(closure.Root)
	sel := Selection{Issues: append([]errors.AxonError{}, closure.Issues...)}
	if root == nil {
		return sel
	}

	sel.NeedsGeneration, sel.Matches = matcher.HasAnyMatch(root, closure.Signatures())

	for i, inherited := range closure.Methods {
		if inherited.Method.Name == root.Name {
			sel.SelfNamed = true
		}
		if !matcher.Matches(inherited.Method) {
			continue
		}

		owner := set.Get(inherited.Owner)
		loc := errors.SourceLocation{File: root.File, Line: inherited.Method.Line}
		if owner != nil {
			loc.File = owner.File
		}

		resolved, err := resolver.ResolveMethod(inherited.Method, inherited.Substitution)
		if err != nil {
			sel.Issues = append(sel.Issues, asIssue(err, loc))
			continue
		}

		stub := Stub{Method: resolved}
		if owner != nil {
			stub.OwnerPackage = owner.Package
			if closure.Inherited(i) {
				stub.InheritedFrom = owner.Name
			}
		}

		if err := Accessible(stub, root.Package); err != nil {
			sel.Issues = append(sel.Issues, asIssue(err, loc))
			continue
		}
		sel.Stubs = append(sel.Stubs, stub)
	}

	return sel
}

func asIssue(err error, loc errors.SourceLocation) errors.AxonError {
	return errors.Locate(err, errors.GenerationErrorCode, loc)
}

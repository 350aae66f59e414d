// Package walker enumerates generation candidates and flattens the method
// closure of an interface across its embedded interfaces.
package walker

import (
	stderrors "errors"

	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
	"github.com/toyz/axonbase/internal/resolver"
)

// Candidates returns the interfaces that may be generation roots, in
// declaration order. Nested declarations are visited at any depth, including
// those nested in generic interfaces. Generic and constraint interfaces are
// never candidates.
func Candidates(set *models.DeclSet) []models.DeclID {
	var candidates []models.DeclID
	visit(set, set.Roots(), func(decl *models.TypeDecl) {
		if decl.IsInterface() && !decl.IsGeneric() && !decl.Constraint {
			candidates = append(candidates, decl.ID)
		}
	})
	return candidates
}

// Exclusions describes the interfaces Candidates leaves out because they
// declare their own type parameters
func Exclusions(set *models.DeclSet) []errors.AxonError {
	var excluded []errors.AxonError
	visit(set, set.Roots(), func(decl *models.TypeDecl) {
		if decl.IsInterface() && decl.IsGeneric() && !decl.Constraint {
			excluded = append(excluded, errors.NewGenericRootError(decl.Name, decl.TypeParams, location(decl, decl.Line)))
		}
	})
	return excluded
}

func visit(set *models.DeclSet, ids []models.DeclID, fn func(*models.TypeDecl)) {
	for _, id := range ids {
		decl := set.Get(id)
		if decl == nil {
			continue
		}
		fn(decl)
		visit(set, decl.Nested, fn)
	}
}

// Closure is the flattened method set of an interface
type Closure struct {
	Root    models.DeclID
	Methods []models.InheritedMethod // own methods first, then embedded ones depth-first
	Issues  []errors.AxonError       // edges skipped during the walk
}

// Signatures returns the unresolved signatures of every method in the closure
func (c Closure) Signatures() []models.MethodSignature {
	signatures := make([]models.MethodSignature, len(c.Methods))
	for i, method := range c.Methods {
		signatures[i] = method.Method
	}
	return signatures
}

// Inherited reports whether the method at index i was declared on an
// embedded interface
func (c Closure) Inherited(i int) bool {
	return c.Methods[i].Owner != c.Root
}

// Walk flattens the method closure of the interface id. Methods are
// deduplicated by name, the first occurrence in walk order wins. Each
// embedding edge composes its substitution map with the one accumulated on
// the way down. Edges that cannot be followed are reported as issues and
// skipped without affecting their siblings.
func Walk(set *models.DeclSet, id models.DeclID) Closure {
	w := &closureWalker{
		set:    set,
		seen:   make(map[string]bool),
		onPath: make(map[models.DeclID]bool),
	}
	closure := Closure{Root: id}
	if root := set.Get(id); root != nil {
		w.walk(root, models.SubstitutionMap{})
	}
	closure.Methods = w.methods
	closure.Issues = w.issues
	return closure
}

type closureWalker struct {
	set     *models.DeclSet
	seen    map[string]bool
	onPath  map[models.DeclID]bool
	methods []models.InheritedMethod
	issues  []errors.AxonError
}

func (w *closureWalker) walk(decl *models.TypeDecl, m models.SubstitutionMap) {
	w.onPath[decl.ID] = true
	defer delete(w.onPath, decl.ID)

	for _, method := range decl.Methods {
		if w.seen[method.Name] {
			continue
		}
		w.seen[method.Name] = true
		w.methods = append(w.methods, models.InheritedMethod{
			Method:       method,
			Owner:        decl.ID,
			Substitution: m,
		})
	}

	for _, edge := range decl.Embeds {
		parent, ok := w.set.Lookup(edge.Parent)
		if !ok || !parent.IsInterface() {
			w.issues = append(w.issues, errors.NewUnknownParentError(decl.Name, edge.Parent.String(), location(decl, edge.Line)))
			continue
		}
		if w.onPath[parent.ID] {
			w.issues = append(w.issues, errors.NewCyclicEmbeddingError(decl.Name, parent.Name, location(decl, edge.Line)))
			continue
		}

		pm, err := resolver.BuildSubstitutionMap(parent, edge, m)
		if err != nil {
			var arity *errors.ArityMismatchError
			if stderrors.As(err, &arity) {
				arity.WithChild(decl.Name).WithLocation(location(decl, edge.Line))
				w.issues = append(w.issues, arity)
			} else {
				w.issues = append(w.issues, errors.Wrap(errors.UnknownErrorCode, "failed to follow embedded interface", err))
			}
			continue
		}
		w.walk(parent, pm)
	}
}

func location(decl *models.TypeDecl, line int) errors.SourceLocation {
	return errors.SourceLocation{File: decl.File, Line: line}
}

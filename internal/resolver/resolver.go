// Package resolver substitutes type variables along interface embedding edges.
package resolver

import (
	"github.com/toyz/axonbase/internal/errors"
	"github.com/toyz/axonbase/internal/models"
)

// BuildSubstitutionMap pairs the parent's type parameters positionally with
// the type arguments supplied on edge. Each argument is first resolved through
// outer, the accumulated map of the embedding interface, so variables bound
// further down the walk are threaded up to the parent.
func BuildSubstitutionMap(parent *models.TypeDecl, edge models.SuperInterfaceEdge, outer models.SubstitutionMap) (models.SubstitutionMap, error) {
	if len(parent.TypeParams) != len(edge.Args) {
		return nil, errors.NewArityMismatchError("", parent.Name, len(parent.TypeParams), len(edge.Args))
	}

	m := make(models.SubstitutionMap, len(parent.TypeParams))
	for i, name := range parent.TypeParams {
		m[name] = Resolve(edge.Args[i], outer)
	}
	return m, nil
}

// Resolve replaces every type variable in ref that m binds. Unbound variables
// are left in place.
func Resolve(ref models.TypeRef, m models.SubstitutionMap) models.TypeRef {
	switch ref.Kind {
	case models.TypeVarRef:
		if bound, ok := m[ref.Name]; ok {
			return bound
		}
		return ref
	case models.ParameterizedRef:
		if len(ref.Args) == 0 {
			return ref
		}
		resolved := ref
		resolved.Args = make([]models.TypeRef, len(ref.Args))
		for i, arg := range ref.Args {
			resolved.Args[i] = Resolve(arg, m)
		}
		return resolved
	default:
		return ref
	}
}

// ResolveMethod applies m to every parameter and result of method. It fails
// when the resolved signature still references a type variable.
func ResolveMethod(method models.MethodSignature, m models.SubstitutionMap) (models.MethodSignature, error) {
	resolved := method
	resolved.Params = resolveParams(method.Params, m)
	resolved.Results = resolveParams(method.Results, m)

	if free := FreeVariables(resolved); len(free) > 0 {
		return models.MethodSignature{}, errors.NewUnresolvedTypeVariableError(method.Name, free)
	}
	return resolved, nil
}

// FreeVariables lists the type variables a method signature references, in
// order of first appearance
func FreeVariables(method models.MethodSignature) []string {
	var names []string
	seen := make(map[string]bool)
	for _, list := range [][]models.Param{method.Params, method.Results} {
		for _, param := range list {
			for _, name := range param.Type.FreeVariables() {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}
	return names
}

func resolveParams(params []models.Param, m models.SubstitutionMap) []models.Param {
	if params == nil {
		return nil
	}
	resolved := make([]models.Param, len(params))
	for i, param := range params {
		resolved[i] = models.Param{Name: param.Name, Type: Resolve(param.Type, m)}
	}
	return resolved
}

package parser

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/toyz/axonbase/internal/models"
)

// typeConverter turns type expressions of one interface into TypeRefs
type typeConverter struct {
	scope      *fileScope
	typeParams map[string]bool
}

// fields converts a parameter or result list, expanding grouped names
func (c *typeConverter) fields(list *ast.FieldList) ([]models.Param, error) {
	if list == nil {
		return nil, nil
	}

	var params []models.Param
	for _, field := range list.List {
		ref, err := c.convert(field.Type)
		if err != nil {
			return nil, err
		}
		if len(field.Names) == 0 {
			params = append(params, models.Param{Type: ref})
			continue
		}
		for _, name := range field.Names {
			params = append(params, models.Param{Name: name.Name, Type: ref})
		}
	}
	return params, nil
}

func (c *typeConverter) convert(expr ast.Expr) (models.TypeRef, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if c.typeParams[t.Name] {
			return models.TypeVar(t.Name), nil
		}
		if isPredeclared(t.Name) {
			return models.Simple(t.Name), nil
		}
		return models.Named(c.scope.importPath, c.scope.packageName, t.Name), nil
	case *ast.SelectorExpr:
		pkgIdent, ok := t.X.(*ast.Ident)
		if !ok {
			return models.TypeRef{}, fmt.Errorf("unsupported qualified type %s", types.ExprString(t))
		}
		return models.Named(c.scope.resolveImport(pkgIdent.Name), pkgIdent.Name, t.Sel.Name), nil
	case *ast.ParenExpr:
		return c.convert(t.X)
	case *ast.StarExpr:
		elem, err := c.convert(t.X)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.PointerTo(elem), nil
	case *ast.Ellipsis:
		elem, err := c.convert(t.Elt)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.Composite(models.RawEllipsis, elem), nil
	case *ast.ArrayType:
		elem, err := c.convert(t.Elt)
		if err != nil {
			return models.TypeRef{}, err
		}
		if t.Len == nil {
			return models.SliceOf(elem), nil
		}
		return models.Composite("["+types.ExprString(t.Len)+"]", elem), nil
	case *ast.MapType:
		key, err := c.convert(t.Key)
		if err != nil {
			return models.TypeRef{}, err
		}
		value, err := c.convert(t.Value)
		if err != nil {
			return models.TypeRef{}, err
		}
		return models.MapOf(key, value), nil
	case *ast.ChanType:
		elem, err := c.convert(t.Value)
		if err != nil {
			return models.TypeRef{}, err
		}
		raw := models.RawChan
		switch t.Dir {
		case ast.RECV:
			raw = models.RawRecvChan
		case ast.SEND:
			raw = models.RawSendChan
		}
		return models.Composite(raw, elem), nil
	case *ast.FuncType:
		return c.funcType(t)
	case *ast.IndexExpr:
		return c.instantiate(t.X, []ast.Expr{t.Index})
	case *ast.IndexListExpr:
		return c.instantiate(t.X, t.Indices)
	case *ast.InterfaceType, *ast.StructType:
		return c.literal(expr)
	default:
		return models.TypeRef{}, fmt.Errorf("unsupported type expression %s", types.ExprString(expr))
	}
}

func (c *typeConverter) funcType(t *ast.FuncType) (models.TypeRef, error) {
	params, err := c.fields(t.Params)
	if err != nil {
		return models.TypeRef{}, err
	}
	results, err := c.fields(t.Results)
	if err != nil {
		return models.TypeRef{}, err
	}
	return models.FuncOf(paramTypes(params), paramTypes(results)), nil
}

func (c *typeConverter) instantiate(base ast.Expr, indices []ast.Expr) (models.TypeRef, error) {
	raw, err := c.convert(base)
	if err != nil {
		return models.TypeRef{}, err
	}
	if raw.Kind != models.SimpleRef {
		return models.TypeRef{}, fmt.Errorf("cannot instantiate %s", types.ExprString(base))
	}

	args := make([]models.TypeRef, 0, len(indices))
	for _, index := range indices {
		arg, err := c.convert(index)
		if err != nil {
			return models.TypeRef{}, err
		}
		args = append(args, arg)
	}
	return models.Parameterized(raw, args...), nil
}

// literal keeps an anonymous struct or interface type as written. Literals
// that mention type parameters or other packages cannot be carried through
// substitution and are rejected.
func (c *typeConverter) literal(expr ast.Expr) (models.TypeRef, error) {
	var problem error
	ast.Inspect(expr, func(n ast.Node) bool {
		if problem != nil {
			return false
		}
		switch node := n.(type) {
		case *ast.Ident:
			if c.typeParams[node.Name] {
				problem = fmt.Errorf("anonymous type %s references type parameter %s", types.ExprString(expr), node.Name)
			}
		case *ast.SelectorExpr:
			problem = fmt.Errorf("anonymous type %s references package %s", types.ExprString(expr), types.ExprString(node.X))
			return false
		}
		return true
	})
	if problem != nil {
		return models.TypeRef{}, problem
	}
	return models.Simple(types.ExprString(expr)), nil
}

func paramTypes(params []models.Param) []models.TypeRef {
	refs := make([]models.TypeRef, len(params))
	for i, param := range params {
		refs[i] = param.Type
	}
	return refs
}

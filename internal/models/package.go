package models

import (
	"fmt"
)

// DeclSet is the arena of declarations visible in one generation round.
// Declarations reference each other through DeclID and DeclRef, never through
// pointers, so malformed cyclic graphs stay representable.
type DeclSet struct {
	decls []*TypeDecl
	roots []DeclID
	index map[DeclRef]DeclID
}

// NewDeclSet creates an empty declaration set
func NewDeclSet() *DeclSet {
	return &DeclSet{index: make(map[DeclRef]DeclID)}
}

// Add stores a declaration nested in outer (NoDecl for a root declaration)
// and returns its ID. The declaration is indexed under its package and its
// outer-qualified name.
func (s *DeclSet) Add(decl TypeDecl, outer DeclID) (DeclID, error) {
	if decl.Name == "" {
		return NoDecl, fmt.Errorf("declaration in package %q has no name", decl.Package)
	}
	if outer != NoDecl {
		parent := s.Get(outer)
		if parent == nil {
			return NoDecl, fmt.Errorf("declaration %s: unknown outer declaration %d", decl.Name, outer)
		}
		if decl.Package == "" {
			decl.Package = parent.Package
			decl.PackageName = parent.PackageName
		}
		if decl.Dir == "" {
			decl.Dir = parent.Dir
		}
	}

	ref := DeclRef{Package: decl.Package, Name: s.qualify(decl.Name, outer)}
	if existing, ok := s.index[ref]; ok {
		return NoDecl, fmt.Errorf("declaration %s already defined at %s", ref, s.decls[existing].Location())
	}

	id := DeclID(len(s.decls))
	decl.ID = id
	decl.Outer = outer
	decl.Nested = nil
	stored := decl
	s.decls = append(s.decls, &stored)
	s.index[ref] = id

	if outer == NoDecl {
		s.roots = append(s.roots, id)
	} else {
		parent := s.decls[outer]
		parent.Nested = append(parent.Nested, id)
	}
	return id, nil
}

// Get returns the declaration with the given ID, or nil
func (s *DeclSet) Get(id DeclID) *TypeDecl {
	if id < 0 || int(id) >= len(s.decls) {
		return nil
	}
	return s.decls[id]
}

// Lookup finds a declaration by package and qualified name
func (s *DeclSet) Lookup(ref DeclRef) (*TypeDecl, bool) {
	id, ok := s.index[ref]
	if !ok {
		return nil, false
	}
	return s.decls[id], true
}

// Roots returns the root-level declarations in insertion order
func (s *DeclSet) Roots() []DeclID {
	return append([]DeclID(nil), s.roots...)
}

// Len returns the number of declarations in the set
func (s *DeclSet) Len() int {
	return len(s.decls)
}

// Ref returns the reference under which the declaration is indexed
func (s *DeclSet) Ref(id DeclID) DeclRef {
	decl := s.Get(id)
	if decl == nil {
		return DeclRef{}
	}
	return DeclRef{Package: decl.Package, Name: s.qualify(decl.Name, decl.Outer)}
}

// Interfaces returns every interface declaration in the set
func (s *DeclSet) Interfaces() []*TypeDecl {
	var result []*TypeDecl
	for _, decl := range s.decls {
		if decl.IsInterface() {
			result = append(result, decl)
		}
	}
	return result
}

func (s *DeclSet) qualify(name string, outer DeclID) string {
	names := []string{name}
	for id := outer; id != NoDecl; {
		decl := s.Get(id)
		if decl == nil {
			break
		}
		names = append(names, decl.Name)
		id = decl.Outer
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return qualifiedName(names)
}

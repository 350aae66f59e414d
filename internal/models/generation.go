package models

// InheritedMethod is a method reached while walking an interface closure,
// together with the declaration it was found on and the substitution that
// binds that declaration's type variables
type InheritedMethod struct {
	Method       MethodSignature
	Owner        DeclID
	Substitution SubstitutionMap
}

// GeneratedType is the <Interface>Base type synthesized for one interface
type GeneratedType struct {
	Name            string
	Source          *TypeDecl
	Methods         []MethodSignature // fully substituted stubs, in closure order
	NeedsGeneration bool
	FilePath        string // path where the artifact should be written
	Content         string // generated Go code
}

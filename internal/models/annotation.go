package models

import "strings"

// Route is a route annotation attached to an interface or one of its methods
type Route struct {
	Kind    string `yaml:"kind"`              // annotation kind, e.g. "get" or "exchange"
	Verb    string `yaml:"verb,omitempty"`    // HTTP verb the route serves
	Path    string `yaml:"path,omitempty"`    // path template, preserved only for documentation
	Default bool   `yaml:"default,omitempty"` // method is served by a supplied default body
	File    string `yaml:"file,omitempty"`
	Line    int    `yaml:"line,omitempty"`
}

// Describe returns the verb and path of the route, e.g. "GET /users/{id}"
func (r Route) Describe() string {
	verb := r.Verb
	if verb == "" {
		verb = strings.ToUpper(r.Kind)
	}
	if r.Path == "" {
		return verb
	}
	return verb + " " + r.Path
}

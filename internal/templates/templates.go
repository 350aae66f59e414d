package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// BaseTemplateData drives BaseTemplate
type BaseTemplateData struct {
	Tool      string // generator name used in the provenance header
	Source    string // base name of the file declaring the interface
	Package   string
	Imports   string // rendered import section, may be empty
	Interface string
	BaseName  string
	Embedded  string // alias embedded in place of Interface, empty to embed Interface itself
	Example   string // name of the embedding type shown in the usage docs
	Routes    []string
	Stubs     []StubData
}

// StubData describes one generated method
type StubData struct {
	Name          string
	Routes        []string
	InheritedFrom string
	Params        string // rendered parameter list without parentheses
	Results       string // rendered result list, including parentheses when needed
	Body          string
}

// BaseTemplate renders a <Interface>Base type with its stub methods
const BaseTemplate = `// Code generated by {{.Tool}}. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}
{{if .Imports}}
{{.Imports}}{{end}}{{if .Embedded}}
// {{.Embedded}} lets {{.BaseName}} embed {{.Interface}} next to the method of the same name.
type {{.Embedded}} = {{.Interface}}
{{end}}
// {{.BaseName}} stubs the routes of {{.Interface}}.{{if .Routes}} {{.Interface}} serves {{join .Routes ", "}}.{{end}}
// Every stub fails with a 501 Not Implemented error until the embedding type
// overrides it:
//
//	type {{.Example}} struct {
//		{{.BaseName}}
//	}
//
// Methods of {{.Interface}} without a route annotation are not stubbed and must
// be provided by the embedding type.
type {{.BaseName}} struct {
	{{if .Embedded}}{{.Embedded}}{{else}}{{.Interface}}{{end}}
}

var _ {{.Interface}} = {{.BaseName}}{}
{{range .Stubs}}
// {{.Name}} {{if .Routes}}serves {{join .Routes ", "}}{{else}}is not implemented{{end}}.{{if .InheritedFrom}}
// Inherited from {{.InheritedFrom}}.{{end}}
func ({{$.BaseName}}) {{.Name}}({{.Params}}){{.Results}} {
	{{.Body}}
}
{{end}}`

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"join": joinStrings,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// GenerateBase renders the base type source
func GenerateBase(data BaseTemplateData) (string, error) {
	return executeTemplate("base", BaseTemplate, data)
}

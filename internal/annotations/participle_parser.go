package annotations

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/axonbase/internal/errors"
)

// Prefix introduces every axon annotation inside a comment
const Prefix = "axon::"

// ErrForeignAnnotation is returned for axon:: annotations whose kind is not a
// registered route kind. They belong to other axon tools and are ignored.
var ErrForeignAnnotation = stderrors.New("not a route annotation")

// annotationAST is the grammar of a route annotation:
//
//	axon::<kind> [VERB] [/path] [-Flag] [-Key=Value]
type annotationAST struct {
	Kind       string       `parser:"Prefix @Ident"`
	Positional []string     `parser:"@(Path | String | Ident)*"`
	Options    []*optionAST `parser:"@@*"`
}

type optionAST struct {
	Name  string  `parser:"Dash @Ident"`
	Value *string `parser:"(Equals @(String | Path | Ident | Number))?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Prefix", Pattern: `axon::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s]*`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// ParticipleParser parses route annotations using alecthomas/participle
type ParticipleParser struct {
	parser   *participle.Parser[annotationAST]
	registry AnnotationRegistry
}

// NewParticipleParser creates a parser validating against registry
func NewParticipleParser(registry AnnotationRegistry) *ParticipleParser {
	parser := participle.MustBuild[annotationAST](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{
		parser:   parser,
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line carries an axon annotation
func IsAnnotation(comment string) bool {
	return strings.HasPrefix(stripComment(comment), Prefix)
}

// ParseAnnotation parses one comment line such as "//axon::get /users/{id}".
// Annotations of kinds that are not registered return ErrForeignAnnotation.
func (p *ParticipleParser) ParseAnnotation(comment string, location errors.SourceLocation) (*ParsedAnnotation, error) {
	content := stripComment(comment)
	if !strings.HasPrefix(content, Prefix) {
		return nil, errors.NewSyntaxError(fmt.Sprintf("annotation must contain '%s' prefix", Prefix)).
			WithLocation(location)
	}

	kind := Kind(strings.ToLower(firstWord(strings.TrimPrefix(content, Prefix))))
	if !p.registry.IsRegistered(kind) {
		return nil, fmt.Errorf("%s%s: %w", Prefix, kind, ErrForeignAnnotation)
	}

	ast, err := p.parser.ParseString(location.File, content)
	if err != nil {
		return nil, errors.WrapParseError(fmt.Sprintf("annotation '%s'", content), err).
			WithLocation(location)
	}

	parsed := &ParsedAnnotation{
		Kind:       kind,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	if err := assignPositional(parsed, ast.Positional); err != nil {
		return nil, err
	}

	for _, option := range ast.Options {
		if option.Value == nil {
			// -Flag means true for booleans
			parsed.Parameters[option.Name] = true
			continue
		}
		parsed.Parameters[option.Name] = *option.Value
	}

	schema, err := p.registry.GetSchema(kind)
	if err != nil {
		return nil, err
	}
	if err := Validate(parsed, schema); err != nil {
		return nil, err
	}

	return parsed, nil
}

// assignPositional maps the positional words onto parameters: an optional
// verb for exchange routes followed by an optional path
func assignPositional(annotation *ParsedAnnotation, positional []string) error {
	for i, word := range positional {
		switch {
		case strings.HasPrefix(word, "/") && !annotation.HasParameter(PathParam):
			annotation.Parameters[PathParam] = word
		case annotation.Kind == ExchangeKind && i == 0:
			annotation.Parameters[MethodParam] = word
		default:
			return errors.NewSyntaxError(fmt.Sprintf("unexpected word '%s' in %s annotation", word, annotation.Kind)).
				WithLocation(annotation.Location)
		}
	}
	return nil
}

func stripComment(comment string) string {
	content := strings.TrimSpace(comment)
	content = strings.TrimPrefix(content, "//")
	return strings.TrimSpace(content)
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

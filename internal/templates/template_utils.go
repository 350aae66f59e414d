package templates

import (
	"strings"
	"unicode"

	"github.com/toyz/axonbase/internal/models"
)

// ToSnakeCase converts a Go identifier to snake case, keeping acronyms
// together: UserAPI -> user_api, HTTPServer -> http_server
func ToSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r == '.' {
			b.WriteRune('_')
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ZeroValue returns an expression for the zero value of ref
func ZeroValue(ref models.TypeRef, q models.Qualifier) string {
	if ref.IsPredeclared() {
		switch ref.Name {
		case "bool":
			return "false"
		case "string":
			return `""`
		case "error", "any":
			return "nil"
		default:
			return "0"
		}
	}
	if ref.IsComposite() {
		switch ref.Name {
		case models.RawPointer, models.RawSlice, models.RawMap, models.RawFunc,
			models.RawChan, models.RawRecvChan, models.RawSendChan:
			return "nil"
		}
	}
	return "*new(" + ref.Render(q) + ")"
}

func joinStrings(items []string, sep string) string {
	return strings.Join(items, sep)
}

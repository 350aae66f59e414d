package annotations

import (
	"fmt"
	"strings"
)

// Parameter names shared by every route schema
const (
	PathParam    = "path"
	DefaultParam = "Default"
	MethodParam  = "Method"
)

var validHTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// ValidateHTTPMethod validates HTTP method names
func ValidateHTTPMethod(v interface{}) error {
	method := strings.ToUpper(fmt.Sprint(v))
	for _, valid := range validHTTPMethods {
		if method == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(validHTTPMethods, ", "), method)
}

// ValidateURLPath validates URL path format
func ValidateURLPath(v interface{}) error {
	path := fmt.Sprint(v)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/', got '%s'", path)
	}
	return nil
}

func routeParameters() map[string]ParameterSpec {
	return map[string]ParameterSpec{
		PathParam: {
			Type:        StringType,
			Description: "URL path template, e.g. /users/{id}",
			Validator:   ValidateURLPath,
		},
		DefaultParam: {
			Type:         BoolType,
			DefaultValue: false,
			Description:  "The method is served by a supplied default and is never stubbed",
		},
	}
}

func verbSchema(kind Kind) AnnotationSchema {
	verb := kind.Verb()
	return AnnotationSchema{
		Kind:        kind,
		Description: fmt.Sprintf("Marks an interface method as a %s route", verb),
		Parameters:  routeParameters(),
		Examples: []string{
			fmt.Sprintf("//axon::%s", kind),
			fmt.Sprintf("//axon::%s /users/{id}", kind),
			fmt.Sprintf("//axon::%s /users/{id} -Default", kind),
		},
	}
}

// ExchangeAnnotationSchema defines the schema for //axon::exchange annotations.
// An exchange route may omit its verb, which leaves it a generic exchange.
var ExchangeAnnotationSchema = func() AnnotationSchema {
	params := routeParameters()
	params[MethodParam] = ParameterSpec{
		Type:        StringType,
		Description: "HTTP method served by the exchange",
		Validator:   ValidateHTTPMethod,
	}
	return AnnotationSchema{
		Kind:        ExchangeKind,
		Description: "Marks an interface or interface method as an HTTP exchange",
		Parameters:  params,
		Examples: []string{
			"//axon::exchange /users",
			"//axon::exchange GET /users/{id}",
			"//axon::exchange /users -Method=POST",
			"//axon::exchange /health -Method=GET -Default",
		},
	}
}()

// GetBuiltinSchemas returns all built-in annotation schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		verbSchema(GetKind),
		verbSchema(PostKind),
		verbSchema(PutKind),
		verbSchema(DeleteKind),
		verbSchema(PatchKind),
		ExchangeAnnotationSchema,
	}
}

// RegisterBuiltinSchemas registers every built-in schema with registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Kind, err)
		}
	}

	return nil
}

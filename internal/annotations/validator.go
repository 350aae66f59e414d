package annotations

import (
	"fmt"
	"sort"

	"github.com/toyz/axonbase/internal/errors"
)

// Validate checks an annotation against its schema, converting parameter
// values to the declared types in place
func Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	names := make([]string, 0, len(annotation.Parameters))
	for name := range annotation.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec, exists := schema.Parameters[name]
		if !exists {
			err := validationError(annotation, name, "known parameter", fmt.Sprintf("unknown parameter '%s'", name))
			err.WithSuggestion(fmt.Sprintf("Remove -%s or check parameter name spelling", name))
			return err
		}

		value, err := convertParameter(annotation.Parameters[name], spec.Type)
		if err != nil {
			return validationError(annotation, name, spec.Type.String(), fmt.Sprint(annotation.Parameters[name]))
		}
		annotation.Parameters[name] = value

		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return validationError(annotation, name, err.Error(), fmt.Sprint(value))
			}
		}
	}

	for name, spec := range schema.Parameters {
		if _, exists := annotation.Parameters[name]; spec.Required && !exists {
			return validationError(annotation, name, "required parameter of type "+spec.Type.String(), "missing")
		}
	}

	for _, custom := range schema.Validators {
		if err := custom(annotation); err != nil {
			return errors.Wrap(errors.ValidationErrorCode, "custom validation failed", err).
				WithLocation(annotation.Location)
		}
	}

	return nil
}

func convertParameter(value interface{}, paramType ParameterType) (interface{}, error) {
	switch paramType {
	case BoolType:
		return ConvertToBool(value)
	default:
		return fmt.Sprint(value), nil
	}
}

func validationError(annotation *ParsedAnnotation, field, expected, actual string) *errors.ValidationError {
	err := errors.NewValidationError(field, expected, actual)
	err.BaseError.
		WithLocation(annotation.Location).
		WithContext("kind", string(annotation.Kind))
	return err
}

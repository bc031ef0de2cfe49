// Package validation implements declarative request validation with
// exhaustive error collection. Body schemas are expressed as struct tags
// interpreted by go-playground/validator; path parameters are described by
// small ParamRule values interpreted by Param. Either way, every violated
// constraint produces one human-readable cause string, and validation never
// stops at the first failure.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Field names in cause messages
// come from the json tag, matching what the client actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v against its struct tags and returns one cause string
// per violated constraint. A nil return means v is valid.
func Struct(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError and friends are programming defects, not
		// client input problems.
		panic(err)
	}

	causes := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		causes = append(causes, fieldMessage(fe))
	}
	return causes
}

// fieldMessage renders a single constraint violation as a client-facing
// cause string, e.g. `"title" is required`.
func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		// Pointer fields are dereferenced before tag evaluation, so required
		// also fires on a present-but-empty string. A nil pointer surfaces
		// with kind Ptr, an empty string with kind String.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q is not allowed to be empty", name)
		}
		return fmt.Sprintf("%q is required", name)
	case "min":
		// min is only used as min=1 on strings, i.e. "non-empty"
		return fmt.Sprintf("%q is not allowed to be empty", name)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long",
			name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]",
			name, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%q is invalid", name)
	}
}

// MustContainOneOf renders the cause emitted when a request body supplies
// none of the listed alternative fields.
func MustContainOneOf(names ...string) string {
	return fmt.Sprintf("\"value\" must contain at least one of [%s]", strings.Join(names, ", "))
}

// NotAllowed renders the cause emitted for an unknown field in strict mode.
func NotAllowed(name string) string {
	return fmt.Sprintf("%q is not allowed", name)
}

// MustBeString renders the cause emitted when a body field carries a
// non-string JSON value. Every body field in the API is a string.
func MustBeString(name string) string {
	return fmt.Sprintf("%q must be a string", name)
}

// MustBeObject renders the cause emitted when the body is well-formed JSON
// but not an object.
func MustBeObject() string {
	return `"value" must be of type object`
}

// ParamKind enumerates the value kinds a path parameter rule can demand.
type ParamKind int

const (
	// PositiveInt requires a positive integer; the validated value is an int64.
	PositiveInt ParamKind = iota
	// Enum requires membership in the rule's Allowed set; the validated
	// value is the matching string.
	Enum
)

// ParamRule describes the constraints on one path parameter. Rules are plain
// data so routes can declare their parameter schemas as tables.
type ParamRule struct {
	Name    string
	Kind    ParamKind
	Allowed []string
}

// Param checks a raw path parameter value against its rule. On success it
// returns the coerced value (int64 for PositiveInt, string for Enum) and a
// nil cause list; on failure the value is nil and every violated constraint
// contributes one cause.
func Param(rule ParamRule, raw string) (any, []string) {
	switch rule.Kind {
	case PositiveInt:
		return positiveIntParam(rule.Name, raw)
	case Enum:
		return enumParam(rule.Name, rule.Allowed, raw)
	default:
		panic(fmt.Sprintf("unknown param kind %d", rule.Kind))
	}
}

func positiveIntParam(name, raw string) (any, []string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Distinguish "not numeric at all" from "numeric but not integral"
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			causes := []string{fmt.Sprintf("%q must be an integer", name)}
			if f <= 0 {
				causes = append(causes, fmt.Sprintf("%q must be a positive number", name))
			}
			return nil, causes
		}
		return nil, []string{fmt.Sprintf("%q must be a number", name)}
	}

	if id <= 0 {
		return nil, []string{fmt.Sprintf("%q must be a positive number", name)}
	}

	return id, nil
}

func enumParam(name string, allowed []string, raw string) (any, []string) {
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return nil, []string{fmt.Sprintf("%q must be one of [%s]", name, strings.Join(allowed, ", "))}
}

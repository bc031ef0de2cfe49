package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// UnknownFieldError reports a request body field that is not part of the
// route's schema. Bodies are decoded in strict mode, so unknown fields are
// validation failures rather than silently dropped input.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// TypeMismatchError reports a body field whose JSON value has the wrong type,
// or (with an empty Field) a body that is not a JSON object at all. The body
// itself is well-formed, so this is a validation failure rather than a
// malformed payload.
type TypeMismatchError struct {
	Field string
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return "body is not a JSON object"
	}
	return fmt.Sprintf("wrong type for field %q", e.Field)
}

// DecodeJSON decodes the request body into the given struct, rejecting
// fields that the struct does not declare. An entirely empty body decodes to
// the zero value, leaving the schema validation to report what is missing.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// No body at all; treated like an empty object
			return nil
		}
		if field, ok := unknownFieldName(err); ok {
			return &UnknownFieldError{Field: field}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &TypeMismatchError{Field: typeErr.Field}
		}
		return err
	}
	return nil
}

// unknownFieldName extracts the field name from the unexported error the
// json decoder returns for unknown fields.
func unknownFieldName(err error) (string, bool) {
	const prefix = `json: unknown field `
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

// IsMalformedJSON reports whether err stems from a body that is not
// well-formed JSON, as opposed to well-formed JSON that fails validation.
// A wrong-typed field arrives in a well-formed body and is not malformed.
func IsMalformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

package record

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Machine-readable error codes.
const (
	CodeRequiredField    = "required_field"
	CodeUnrecognizedEnum = "unrecognized_enum"
	CodeTypeMismatch     = "type_mismatch"
	CodeUndeclaredField  = "undeclared_field"
)

// MissingRequiredFieldError reports a required field absent after decode.
type MissingRequiredFieldError struct {
	Record string // Owning record type
	Field  string
	Path   string // JSON-path style path to the field
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: required field missing: %s.%s", pathOr(e.Path, e.Field), e.Record, e.Field)
}

// Code returns CodeRequiredField.
func (e *MissingRequiredFieldError) Code() string { return CodeRequiredField }

// UnrecognizedEnumValueError reports an enum value outside the closed set.
type UnrecognizedEnumValueError struct {
	Enum  string
	Value string
	Path  string
}

func (e *UnrecognizedEnumValueError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unrecognized %s value %q", e.Path, e.Enum, e.Value)
	}
	return fmt.Sprintf("unrecognized %s value %q", e.Enum, e.Value)
}

// Code returns CodeUnrecognizedEnum.
func (e *UnrecognizedEnumValueError) Code() string { return CodeUnrecognizedEnum }

// TypeMismatchError reports a value whose shape does not fit the declared
// kind of its field.
type TypeMismatchError struct {
	Field    string
	Expected string // Declared type, e.g. "integer" or "map<BlobBlobsetConfig>"
	Actual   string // Observed shape, e.g. "string" or "object"
	Path     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", pathOr(e.Path, e.Field), e.Expected, e.Actual)
}

// Code returns CodeTypeMismatch.
func (e *TypeMismatchError) Code() string { return CodeTypeMismatch }

// UndeclaredFieldError is the panic value raised when a record is accessed
// through a name its descriptor does not declare.
type UndeclaredFieldError struct {
	Record string
	Field  string
}

func (e *UndeclaredFieldError) Error() string {
	return fmt.Sprintf("%s has no field %q", e.Record, e.Field)
}

// Code returns CodeUndeclaredField.
func (e *UndeclaredFieldError) Code() string { return CodeUndeclaredField }

// ErrorCode returns the machine-readable code of the first coded error in
// err's chain, or "" if there is none.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// WithPath returns a copy of a record error with its path set. Other errors
// are returned unchanged.
func WithPath(err error, path string) error {
	switch e := err.(type) {
	case *MissingRequiredFieldError:
		c := *e
		c.Path = path
		return &c
	case *UnrecognizedEnumValueError:
		c := *e
		c.Path = path
		return &c
	case *TypeMismatchError:
		c := *e
		c.Path = path
		return &c
	}
	return err
}

// JoinPath appends a key to a JSON-path style path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Shape describes the JSON shape of a decoded or in-memory value for error
// messages.
func Shape(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case Symbol:
		return "symbol"
	case *Record:
		return "record"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func pathOr(path, fallback string) string {
	if path != "" {
		return path
	}
	if fallback != "" {
		return fallback
	}
	return "$"
}

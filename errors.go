package jsonschema

import (
	"errors"
	"fmt"
)

// Compile-time error sentinels (SchemaError taxonomy, §7). Every SchemaError
// wraps exactly one of these so callers can errors.Is/errors.As against a
// stable taxonomy.
var (
	ErrNotAnObject  = errors.New("schema must be a JSON object or boolean")
	ErrWrongID      = errors.New("id must not carry a fragment")
	ErrIDConflicts  = errors.New("id is already registered in this scope")
	ErrURLParse     = errors.New("value is not a valid URI")
	ErrUnknownKey   = errors.New("unknown keyword in strict mode")
	ErrMalformed    = errors.New("schema is malformed")
	ErrNoSuchSchema = errors.New("no schema registered for this URI")

	// Numeric conversion, kept for Rat helpers.
	ErrUnsupportedTypeForRat = errors.New("value cannot be converted to a rational number")
	ErrFailedToConvertToRat  = errors.New("failed to parse value as a rational number")

	// URI host checks, returned by formats.go's urlParse.
	ErrIPv6AddressNotEnclosed = errors.New("ipv6 address is not enclosed in brackets")
	ErrInvalidIPv6Address     = errors.New("invalid ipv6 address")
)

// SchemaError reports a compile-time failure. It is always returned, never
// panicked, matching §7's propagation policy.
type SchemaError struct {
	Code   string
	Path   string
	Detail string
	Err    error
}

func newSchemaError(sentinel error, code, path, detail string) *SchemaError {
	return &SchemaError{Code: code, Path: path, Detail: detail, Err: sentinel}
}

func (e *SchemaError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at %q: %s", e.Code, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s at %q", e.Code, e.Path)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

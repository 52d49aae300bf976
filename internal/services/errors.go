package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors the handlers map onto HTTP statuses. Services wrap them
// with context where useful; handlers test with errors.Is / errors.As.
var (
	// ErrInvalidID means a path identifier is not a well-formed UUID. It is
	// returned before any store access.
	ErrInvalidID = errors.New("invalid ID format")
	// ErrNotFound means the identifier was well-formed but matched no record.
	ErrNotFound = errors.New("listing not found")
	// ErrForbidden means the authenticated caller does not own the listing.
	ErrForbidden = errors.New("not authorized for this listing")
)

// ValidationError reports the schema constraints a payload violated, keyed by
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// newValidationError converts validator.ValidationErrors into a
// ValidationError; any other error becomes a single body-level entry.
func newValidationError(err error) *ValidationError {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		fields["body"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

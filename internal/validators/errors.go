package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidationFailed is matched by every *ValidationError via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownSchema is returned when no schema is declared for the
	// requested entity kind and operation.
	ErrUnknownSchema = errors.New("no schema declared for entity")
)

// ValidationError carries per-field violation messages out of the
// validation layer.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Messages(), "; "))
}

// Is makes errors.Is(err, ErrValidationFailed) hold for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Messages flattens the error map into "field: message" strings ordered by
// field name, keeping the per-field rule order.
func (e *ValidationError) Messages() []string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(e.Errors))
	for _, field := range fields {
		for _, msg := range e.Errors[field] {
			messages = append(messages, field+": "+msg)
		}
	}

	return messages
}

package utils

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/araddon/dateparse"
)

// ErrInvalidDateFormat is matched by every *DateFormatError via errors.Is.
var ErrInvalidDateFormat = errors.New("invalid date format")

var errBlankDate = errors.New("blank date")

// DateFormatError reports a string that could not be read as a calendar date.
type DateFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s %q", e.Field, ErrInvalidDateFormat, e.Value)
	}
	return fmt.Sprintf("%s %q", ErrInvalidDateFormat, e.Value)
}

func (e *DateFormatError) Is(target error) bool {
	return target == ErrInvalidDateFormat
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// ParseDate reads s as a date in any common layout (ISO-8601 first of all).
// Values without a zone are taken as UTC. An empty string yields no date
// and no error; a whitespace-only string is malformed.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	// surrounding whitespace is tolerated, a blank value is not
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &DateFormatError{Value: s, Err: errBlankDate}
	}

	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return nil, &DateFormatError{Value: s, Err: err}
	}

	return &t, nil
}

// ConvertDates returns a shallow copy of record where each listed field
// holding a string is replaced by the parsed time.Time (or nil for an empty
// string). Absent fields, non-string values and unlisted fields are copied
// as they are; nested maps and slices are not walked.
func ConvertDates(record map[string]any, fields []string) (map[string]any, error) {
	if record == nil {
		return nil, nil
	}

	out := maps.Clone(record)
	for _, field := range fields {
		raw, ok := out[field].(string)
		if !ok {
			continue
		}

		parsed, err := ParseDate(raw)
		if err != nil {
			var dateErr *DateFormatError
			if errors.As(err, &dateErr) {
				dateErr.Field = field
			}
			return nil, err
		}

		if parsed == nil {
			out[field] = nil
			continue
		}
		out[field] = *parsed
	}

	return out, nil
}

// ConvertDatesFor converts the date-bearing fields declared for kind in
// models.DateFields. Kinds without date fields are copied unchanged.
func ConvertDatesFor(kind models.EntityKind, record map[string]any) (map[string]any, error) {
	return ConvertDates(record, models.DateFields[kind])
}

func ConvertDatesForEpic(record map[string]any) (map[string]any, error) {
	return ConvertDatesFor(models.KindEpic, record)
}

func ConvertDatesForStory(record map[string]any) (map[string]any, error) {
	return ConvertDatesFor(models.KindStory, record)
}

func ConvertDatesForTask(record map[string]any) (map[string]any, error) {
	return ConvertDatesFor(models.KindTask, record)
}

func ConvertDatesForSubtask(record map[string]any) (map[string]any, error) {
	return ConvertDatesFor(models.KindSubtask, record)
}

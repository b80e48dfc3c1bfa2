package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/store"
)

var (
	// ErrNotFound is returned when the requested or referenced entity does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a payload passes the schema but still
	// cannot be applied (wrong parent kind, duplicate ids, bad field type).
	ErrInvalidInput = errors.New("invalid input")

	// ErrActorRequired is returned by operations that record who performed
	// them when no authenticated actor was given.
	ErrActorRequired = errors.New("authenticated actor required")

	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)

// ApplicationError is a domain-rule violation that carries the HTTP status
// it should be answered with.
type ApplicationError struct {
	Status  int
	Message string
	Err     error
}

// NewApplicationError constructs an [ApplicationError].
func NewApplicationError(status int, message string) *ApplicationError {
	return &ApplicationError{Status: status, Message: message}
}

func (e *ApplicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// mapStoreError translates repository sentinels into service errors. what
// names the entity for the message, e.g. "epic 4".
func mapStoreError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, store.ErrReferenceNotFound):
		return fmt.Errorf("%w: %s references a record that does not exist", ErrInvalidInput, what)
	case errors.Is(err, store.ErrUnknownColumn):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, store.ErrAlreadyExists), errors.Is(err, store.ErrLoginAlreadyExists):
		return &ApplicationError{Status: http.StatusConflict, Message: what + " already exists", Err: err}
	}
	return err
}

// isClientError reports whether err is caused by the request rather than
// by a failure of the service.
func isClientError(err error) bool {
	var appErr *ApplicationError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrActorRequired) ||
		errors.As(err, &appErr)
}

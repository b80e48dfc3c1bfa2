package http

import "errors"

// Authorization header errors, answered with 401.
var (
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is missing")
	ErrInvalidAuthorizationHeader = errors.New("authorization header is not a bearer token")
	ErrEmptyToken                 = errors.New("bearer token is empty")
)

// Request decoding errors, answered with 400.
var (
	errInvalidJSON  = errors.New("invalid JSON was passed")
	errInvalidID    = errors.New("invalid id")
	errInvalidQuery = errors.New("invalid query parameter")
)

// errBodyTooLarge is answered with 413.
var errBodyTooLarge = errors.New("request body is too large")

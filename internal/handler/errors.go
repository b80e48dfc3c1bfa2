package handler

import "errors"

// errNoHandlersAreCreated means the server config names no transport address.
var errNoHandlersAreCreated = errors.New("neither http nor grpc address is configured")

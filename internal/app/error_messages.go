// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// project tracker handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the message field of response envelopes or into log entries.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidID is returned when a path or query id is not a positive
	// integer.
	MsgInvalidID = "invalid id"

	// MsgValidationFailed accompanies a list of per-field errors.
	MsgValidationFailed = "validation failed"

	// MsgInvalidDataProvided is returned for input the services reject.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgRequestTooLarge is returned for bodies over the size limit.
	MsgRequestTooLarge = "request body is too large"

	// MsgNotFound is returned when the addressed entity does not exist.
	MsgNotFound = "not found"

	// MsgAuthenticationRequired is returned when no authenticated actor is
	// attached to the request.
	MsgAuthenticationRequired = "authentication required"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	MsgCreated = "created"
	MsgUpdated = "updated"
	MsgDeleted = "deleted"
)

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrValidationFailed: http.StatusBadRequest,
	utils.ErrInvalidDateFormat:     http.StatusBadRequest,
	service.ErrInvalidInput:        http.StatusBadRequest,
	errInvalidJSON:                 http.StatusBadRequest,
	errInvalidID:                   http.StatusBadRequest,
	errInvalidQuery:                http.StatusBadRequest,
	errBodyTooLarge:                http.StatusRequestEntityTooLarge,

	service.ErrNotFound:     http.StatusNotFound,
	store.ErrNotFound:       http.StatusNotFound,
	store.ErrNoUserWasFound: http.StatusNotFound,

	service.ErrActorRequired:           http.StatusUnauthorized,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	ErrEmptyToken:                      http.StatusUnauthorized,
}

// statusFromError picks the response status for err. An ApplicationError
// carries its own status; anything unclassified is a 500.
func statusFromError(err error) int {
	var appErr *service.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError builds the envelope message and errors list. Server
// errors never expose their text.
func messageFromError(err error, status int) (string, []string) {
	var appErr *service.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message, nil
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return app.MsgValidationFailed, validationErr.Messages()
	}

	switch status {
	case http.StatusBadRequest:
		if errors.Is(err, errInvalidJSON) {
			return app.MsgInvalidJSON, []string{err.Error()}
		}
		if errors.Is(err, errInvalidID) {
			return app.MsgInvalidID, []string{err.Error()}
		}
		return app.MsgInvalidDataProvided, []string{err.Error()}
	case http.StatusNotFound:
		return app.MsgNotFound, []string{err.Error()}
	case http.StatusRequestEntityTooLarge:
		return app.MsgRequestTooLarge, []string{err.Error()}
	case http.StatusUnauthorized:
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			return app.MsgInvalidLoginPassword, nil
		case errors.Is(err, service.ErrActorRequired):
			return app.MsgAuthenticationRequired, nil
		}
		return app.MsgTokenIsExpiredOrInvalid, []string{err.Error()}
	}

	return app.MsgInternalServerError, nil
}

// writeError answers with a failure envelope. 5xx errors are logged at error
// level, client errors at debug.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message, errs := messageFromError(err, status)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if _, wErr := utils.WriteFailure(w, message, errs, status); wErr != nil {
		log.Err(wErr).Str("func", "*Handler.writeError").Msg("error writing response")
	}
}

// writeSuccess answers with a success envelope carrying data.
func (h *Handler) writeSuccess(w http.ResponseWriter, r *http.Request, data any, message string, status int) {
	if _, err := utils.WriteSuccess(w, data, message, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeSuccess").Msg("error writing response")
	}
}

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the token's actor in the
// request context with [utils.WithActor]. The request logger is tagged with
// the actor. Any failure is answered with a 401 envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("authorization header rejected")
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		actor := token.Actor()
		ctx = log.ForActor(actor.UserID, actor.Login).WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(utils.WithActor(ctx, actor)))
	})
}

// getTokenFromAuthHeader extracts the token from a "Bearer <token>" header
// value. The scheme is matched case-insensitively.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// actorHandlerFunc is a handler that acts on behalf of an authenticated user.
type actorHandlerFunc func(w http.ResponseWriter, r *http.Request, actor models.Actor)

// withActor hands the authenticated actor to next explicitly. Requests
// without one are answered with 401.
func (h *Handler) withActor(next actorHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := utils.ActorFromContext(r.Context())
		if !ok {
			h.writeError(w, r, service.ErrActorRequired)
			return
		}
		next(w, r, actor)
	}
}

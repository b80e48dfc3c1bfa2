package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		h.writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeToken(w, r, registeredUser, "user registered", http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeJSON(r, &user); err != nil {
		h.writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.writeToken(w, r, foundUser, "logged in", http.StatusOK)
}

// writeToken issues a token for user and sends it both in the Authorization
// header and in the envelope.
func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, user models.User, message string, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user.Password = ""
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	h.writeSuccess(w, r, models.AuthResponse{Token: token.SignedString, User: user}, message, status)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, r, map[string]string{"status": "ok", "version": h.version}, "", http.StatusOK)
}

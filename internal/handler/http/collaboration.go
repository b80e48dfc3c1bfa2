package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/models"
)

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	var comment models.Comment
	if err := h.decodeValidated(r, models.KindComment, validators.OpCreate, &comment); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.CommentService.AddComment(r.Context(), actor, comment)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, created, "comment "+app.MsgCreated, http.StatusCreated)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	kind := models.EntityKind(r.URL.Query().Get("entity_kind"))
	if kind == "" {
		h.writeError(w, r, fmt.Errorf("%w: entity_kind is required", errInvalidQuery))
		return
	}

	entityID, err := queryID(r, "entity_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if entityID == nil {
		h.writeError(w, r, fmt.Errorf("%w: entity_id is required", errInvalidQuery))
		return
	}

	comments, err := h.services.CommentService.ListComments(r.Context(), kind, *entityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, comments, "", http.StatusOK)
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.CommentService.DeleteComment(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, nil, "comment "+app.MsgDeleted, http.StatusOK)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	unreadOnly, err := queryBool(r, "unread")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	notifications, err := h.services.NotificationService.ListNotifications(r.Context(), actor, unreadOnly)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, notifications, "", http.StatusOK)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.NotificationService.MarkRead(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, nil, "notification marked read", http.StatusOK)
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/models"
)

type (
	createItemFunc func(ctx context.Context, actor models.Actor, payload map[string]any) (models.WorkItem, error)
	getItemFunc    func(ctx context.Context, id int64) (models.WorkItem, error)
	updateItemFunc func(ctx context.Context, actor models.Actor, id int64, payload map[string]any) (models.WorkItem, error)
	deleteItemFunc func(ctx context.Context, id int64) error
)

func (h *Handler) createWorkItem(kind models.EntityKind, create createItemFunc) actorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, actor models.Actor) {
		record, err := h.decodeRecord(r, kind, validators.OpCreate)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		item, err := create(r.Context(), actor, record)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		h.writeSuccess(w, r, item, fmt.Sprintf("%s %s", kind, app.MsgCreated), http.StatusCreated)
	}
}

func (h *Handler) getWorkItem(get getItemFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		item, err := get(r.Context(), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		h.writeSuccess(w, r, item, "", http.StatusOK)
	}
}

func (h *Handler) updateWorkItem(kind models.EntityKind, update updateItemFunc) actorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, actor models.Actor) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		record, err := h.decodeRecord(r, kind, validators.OpUpdate)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		item, err := update(r.Context(), actor, id, record)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		h.writeSuccess(w, r, item, fmt.Sprintf("%s %s", kind, app.MsgUpdated), http.StatusOK)
	}
}

func (h *Handler) deleteWorkItem(kind models.EntityKind, del deleteItemFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		if err := del(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}

		h.writeSuccess(w, r, nil, fmt.Sprintf("%s %s", kind, app.MsgDeleted), http.StatusOK)
	}
}

// ── Epics ────────────────────────────────────────────────────────────────────

func (h *Handler) listEpics(w http.ResponseWriter, r *http.Request) {
	filter, err := epicFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	includeChildren, err := queryBool(r, "include_children")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	epics, err := h.services.EpicService.ListEpics(r.Context(), filter, includeChildren)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, epics, "", http.StatusOK)
}

// epicFilter reads the list filters from the query string.
func epicFilter(r *http.Request) (models.WorkItemFilter, error) {
	q := r.URL.Query()
	filter := models.WorkItemFilter{
		Kind:     models.KindEpic,
		Status:   models.Status(q.Get("status")),
		Priority: models.Priority(q.Get("priority")),
	}

	if filter.Status != "" && !slices.Contains(models.Statuses, filter.Status) {
		return filter, fmt.Errorf("%w: unknown status %q", errInvalidQuery, filter.Status)
	}
	if filter.Priority != "" && !slices.Contains(models.Priorities, filter.Priority) {
		return filter, fmt.Errorf("%w: unknown priority %q", errInvalidQuery, filter.Priority)
	}

	var err error
	if filter.CustomerID, err = queryID(r, "customer_id"); err != nil {
		return filter, err
	}
	if filter.PhaseID, err = queryID(r, "phase_id"); err != nil {
		return filter, err
	}
	if filter.AssigneeID, err = queryID(r, "assignee_id"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryUint(r, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryUint(r, "offset"); err != nil {
		return filter, err
	}

	return filter, nil
}

func (h *Handler) epicHierarchy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tree, err := h.services.EpicService.GetEpicHierarchy(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, tree, "", http.StatusOK)
}

func (h *Handler) reorderStories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	stories, err := h.services.EpicService.ReorderStories(r.Context(), id, req.IDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, stories, "stories reordered", http.StatusOK)
}

// ── Stories ──────────────────────────────────────────────────────────────────

func (h *Handler) storyTasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	includeSubtasks, err := queryBool(r, "include_subtasks")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tasks, err := h.services.EpicService.GetStoryTasks(r.Context(), id, includeSubtasks)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, tasks, "", http.StatusOK)
}

func (h *Handler) moveStoryToPhase(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.MoveToPhaseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.PhaseID <= 0 {
		h.writeError(w, r, fmt.Errorf("%w: phase_id %d", errInvalidID, req.PhaseID))
		return
	}

	story, err := h.services.EpicService.MoveStoryToPhase(r.Context(), actor, id, req.PhaseID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, story, "story moved", http.StatusOK)
}

// ── Tasks ────────────────────────────────────────────────────────────────────

func (h *Handler) bulkUpdateTasks(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	var req models.BulkUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	changes, err := h.coerceRecord(r, models.KindTask, validators.OpUpdate, req.Changes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req.Changes = changes

	tasks, err := h.services.EpicService.BulkUpdateTasks(r.Context(), actor, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, tasks, fmt.Sprintf("%d tasks updated", len(tasks)), http.StatusOK)
}

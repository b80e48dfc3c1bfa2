package http

import (
	"net/http"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/models"
)

// ── Phases ───────────────────────────────────────────────────────────────────

func (h *Handler) listPhases(w http.ResponseWriter, r *http.Request) {
	phases, err := h.services.PhaseService.ListPhases(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, phases, "", http.StatusOK)
}

func (h *Handler) createPhase(w http.ResponseWriter, r *http.Request) {
	var phase models.Phase
	if err := decodeJSON(r, &phase); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.PhaseService.CreatePhase(r.Context(), phase)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, created, "phase "+app.MsgCreated, http.StatusCreated)
}

// ── Customers ────────────────────────────────────────────────────────────────

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := h.decodeValidated(r, models.KindCustomer, validators.OpCreate, &customer); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.CustomerService.CreateCustomer(r.Context(), customer)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, created, "customer "+app.MsgCreated, http.StatusCreated)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.services.CustomerService.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, customers, "", http.StatusOK)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	customer, err := h.services.CustomerService.GetCustomer(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, customer, "", http.StatusOK)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.decodeRecord(r, models.KindCustomer, validators.OpUpdate)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	customer, err := h.services.CustomerService.UpdateCustomer(r.Context(), id, record)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, customer, "customer "+app.MsgUpdated, http.StatusOK)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.CustomerService.DeleteCustomer(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, nil, "customer "+app.MsgDeleted, http.StatusOK)
}

// ── Templates ────────────────────────────────────────────────────────────────

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	var template models.Template
	if err := h.decodeValidated(r, models.KindTemplate, validators.OpCreate, &template); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.services.TemplateService.CreateTemplate(r.Context(), actor, template)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, created, "template "+app.MsgCreated, http.StatusCreated)
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	kind := models.EntityKind(r.URL.Query().Get("kind"))

	templates, err := h.services.TemplateService.ListTemplates(r.Context(), kind)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, templates, "", http.StatusOK)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	template, err := h.services.TemplateService.GetTemplate(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, template, "", http.StatusOK)
}

// instantiateTemplate accepts an optional body of overrides. Coercion and
// validation of the merged record happen in the service.
func (h *Handler) instantiateTemplate(w http.ResponseWriter, r *http.Request, actor models.Actor) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var overrides map[string]any
	if len(body) > 0 {
		if err := decodeJSONBytes(body, &overrides); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	item, err := h.services.TemplateService.Instantiate(r.Context(), actor, id, overrides)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeSuccess(w, r, item, string(item.Kind)+" "+app.MsgCreated, http.StatusCreated)
}

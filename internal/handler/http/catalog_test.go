package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-project-tracker/internal/app"
	"github.com/MKhiriev/go-project-tracker/internal/service"
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// phases
// ─────────────────────────────────────────────

func TestPhases(t *testing.T) {
	svcs := newTestServices()
	svcs.PhaseService = &mockPhaseService{
		createPhaseFn: func(_ context.Context, p models.Phase) (models.Phase, error) {
			if p.Name == "Build" {
				return models.Phase{}, service.NewApplicationError(http.StatusConflict, `phase "Build" already exists`)
			}
			p.ID = 4
			return p, nil
		},
		listPhasesFn: func(context.Context) ([]models.Phase, error) {
			return []models.Phase{{ID: 1, Name: "Plan"}}, nil
		},
	}

	rec := do(t, svcs, http.MethodPost, "/api/phases", `{"name":"Ship","position":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var phase models.Phase
	decodeData(t, rec, &phase)
	assert.Equal(t, models.Phase{ID: 4, Name: "Ship", Position: 3}, phase)

	rec = do(t, svcs, http.MethodPost, "/api/phases", `{"name":"Build"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, svcs, http.MethodGet, "/api/phases", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var phases []models.Phase
	decodeData(t, rec, &phases)
	assert.Len(t, phases, 1)
}

// ─────────────────────────────────────────────
// customers
// ─────────────────────────────────────────────

func TestCreateCustomer(t *testing.T) {
	svcs := newTestServices()
	svcs.CustomerService = &mockCustomerService{
		createFn: func(_ context.Context, c models.Customer) (models.Customer, error) {
			assert.Equal(t, "Acme", c.Name)
			assert.Equal(t, "ops@acme.test", c.Email)
			c.ID = 2
			return c, nil
		},
	}

	rec := do(t, svcs, http.MethodPost, "/api/customers", `{"name":"Acme","email":"ops@acme.test"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, svcs, http.MethodPost, "/api/customers", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := envelope(t, rec)
	assert.Equal(t, app.MsgValidationFailed, env.Message)
	assert.Contains(t, env.Errors, "name: This field is required")
	assert.Contains(t, env.Errors, "email: Must be a valid email address")
}

func TestCustomerCRUD(t *testing.T) {
	svcs := newTestServices()
	svcs.CustomerService = &mockCustomerService{
		getFn: func(_ context.Context, id int64) (models.Customer, error) {
			if id == 404 {
				return models.Customer{}, service.ErrNotFound
			}
			return models.Customer{ID: id, Name: "Acme"}, nil
		},
		listFn: func(context.Context) ([]models.Customer, error) {
			return []models.Customer{{ID: 1}, {ID: 2}}, nil
		},
		updateFn: func(_ context.Context, id int64, payload map[string]any) (models.Customer, error) {
			assert.Equal(t, map[string]any{"company": "Acme Corp"}, payload)
			return models.Customer{ID: id, Company: "Acme Corp"}, nil
		},
		deleteFn: func(context.Context, int64) error { return nil },
	}

	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodGet, "/api/customers/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, svcs, http.MethodGet, "/api/customers/404", "").Code)
	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodGet, "/api/customers", "").Code)
	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodPut, "/api/customers/1", `{"company":"Acme Corp"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, svcs, http.MethodPut, "/api/customers/1", `{"name":""}`).Code)
	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodDelete, "/api/customers/1", "").Code)
}

// ─────────────────────────────────────────────
// templates
// ─────────────────────────────────────────────

func TestCreateTemplate(t *testing.T) {
	svcs := newTestServices()
	svcs.TemplateService = &mockTemplateService{
		createFn: func(_ context.Context, actor models.Actor, tmpl models.Template) (models.Template, error) {
			assert.Equal(t, testActor, actor)
			assert.Equal(t, models.KindTask, tmpl.Kind)
			assert.JSONEq(t, `{"priority":"high"}`, string(tmpl.Payload))
			tmpl.ID = 3
			return tmpl, nil
		},
	}

	rec := do(t, svcs, http.MethodPost, "/api/templates", `{"name":"Bug","kind":"task","payload":{"priority":"high"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, svcs, http.MethodPost, "/api/templates", `{"name":"Bug","kind":"customer","payload":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := envelope(t, rec)
	assert.Contains(t, env.Errors, "kind: Invalid format")
	assert.Contains(t, env.Errors, "payload: Must be an object")
}

func TestListAndGetTemplates(t *testing.T) {
	svcs := newTestServices()
	svcs.TemplateService = &mockTemplateService{
		listFn: func(_ context.Context, kind models.EntityKind) ([]models.Template, error) {
			assert.Equal(t, models.KindStory, kind)
			return []models.Template{{ID: 1, Kind: kind}}, nil
		},
		getFn: func(_ context.Context, id int64) (models.Template, error) {
			return models.Template{ID: id, Payload: json.RawMessage(`{}`)}, nil
		},
	}

	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodGet, "/api/templates?kind=story", "").Code)
	assert.Equal(t, http.StatusOK, do(t, svcs, http.MethodGet, "/api/templates/1", "").Code)
}

func TestInstantiateTemplate(t *testing.T) {
	svcs := newTestServices()
	svcs.TemplateService = &mockTemplateService{
		instantiateFn: func(_ context.Context, actor models.Actor, id int64, overrides map[string]any) (models.WorkItem, error) {
			assert.Equal(t, testActor, actor)
			assert.Equal(t, int64(3), id)
			if overrides == nil {
				return models.WorkItem{}, service.ErrInvalidInput
			}
			assert.Equal(t, map[string]any{"parent_id": float64(10)}, overrides)
			return models.WorkItem{ID: 20, Kind: models.KindStory}, nil
		},
	}

	rec := do(t, svcs, http.MethodPost, "/api/templates/3/instantiate", `{"parent_id":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "story "+app.MsgCreated, envelope(t, rec).Message)

	rec = do(t, svcs, http.MethodPost, "/api/templates/3/instantiate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

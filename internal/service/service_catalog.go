package service

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/internal/store"
	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/models"
)

type phaseService struct {
	phases store.PhaseRepository
	logger *logger.Logger
}

func NewPhaseService(phases store.PhaseRepository, logger *logger.Logger) PhaseService {
	return &phaseService{phases: phases, logger: logger}
}

func (s *phaseService) CreatePhase(ctx context.Context, phase models.Phase) (models.Phase, error) {
	phase.Name = strings.TrimSpace(phase.Name)
	if phase.Name == "" {
		return models.Phase{}, fmt.Errorf("%w: phase name is required", ErrInvalidInput)
	}
	if phase.Position < 0 {
		return models.Phase{}, fmt.Errorf("%w: phase position must not be negative", ErrInvalidInput)
	}

	created, err := s.phases.Create(ctx, phase)
	if err != nil {
		return models.Phase{}, mapStoreError(err, fmt.Sprintf("phase %q", phase.Name))
	}
	return created, nil
}

func (s *phaseService) ListPhases(ctx context.Context) ([]models.Phase, error) {
	phases, err := s.phases.List(ctx)
	return phases, mapStoreError(err, "phases")
}

type customerService struct {
	customers store.CustomerRepository
	logger    *logger.Logger
}

func NewCustomerService(customers store.CustomerRepository, logger *logger.Logger) CustomerService {
	return &customerService{customers: customers, logger: logger}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return models.Customer{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		return models.Customer{}, mapStoreError(err, "customer")
	}
	return created, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		return models.Customer{}, mapStoreError(err, fmt.Sprintf("customer %d", id))
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.List(ctx)
	return customers, mapStoreError(err, "customers")
}

// UpdateCustomer applies the string fields of payload that the store allows
// to change; other keys are ignored.
func (s *customerService) UpdateCustomer(ctx context.Context, id int64, payload map[string]any) (models.Customer, error) {
	changes := make(map[string]any, len(store.CustomerUpdatableColumns))
	for column := range store.CustomerUpdatableColumns {
		raw, ok := payload[column]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return models.Customer{}, fmt.Errorf("%w: %s must be a string", ErrInvalidInput, column)
		}
		changes[column] = value
	}
	if name, ok := changes["name"]; ok && strings.TrimSpace(name.(string)) == "" {
		return models.Customer{}, fmt.Errorf("%w: customer name must not be empty", ErrInvalidInput)
	}

	customer, err := s.customers.Update(ctx, id, changes)
	if err != nil {
		return models.Customer{}, mapStoreError(err, fmt.Sprintf("customer %d", id))
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	return mapStoreError(s.customers.Delete(ctx, id), fmt.Sprintf("customer %d", id))
}

type templateService struct {
	templates store.TemplateRepository
	epics     EpicService
	validator validators.Validator
	logger    *logger.Logger
}

func NewTemplateService(templates store.TemplateRepository, epics EpicService, validator validators.Validator, logger *logger.Logger) TemplateService {
	return &templateService{
		templates: templates,
		epics:     epics,
		validator: validator,
		logger:    logger,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, actor models.Actor, template models.Template) (models.Template, error) {
	if actor.UserID <= 0 {
		return models.Template{}, ErrActorRequired
	}
	if !template.Kind.IsWorkItem() {
		return models.Template{}, fmt.Errorf("%w: templates can only describe epics, stories, tasks or subtasks", ErrInvalidInput)
	}
	if _, err := decodePayload(template.Payload); err != nil {
		return models.Template{}, err
	}

	template.CreatedBy = actor.UserID
	created, err := s.templates.Create(ctx, template)
	if err != nil {
		return models.Template{}, mapStoreError(err, fmt.Sprintf("template %q", template.Name))
	}
	return created, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id int64) (models.Template, error) {
	template, err := s.templates.Get(ctx, id)
	if err != nil {
		return models.Template{}, mapStoreError(err, fmt.Sprintf("template %d", id))
	}
	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context, kind models.EntityKind) ([]models.Template, error) {
	templates, err := s.templates.List(ctx, kind)
	return templates, mapStoreError(err, "templates")
}

func (s *templateService) Instantiate(ctx context.Context, actor models.Actor, id int64, overrides map[string]any) (models.WorkItem, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return models.WorkItem{}, err
	}

	record, err := decodePayload(template.Payload)
	if err != nil {
		return models.WorkItem{}, err
	}
	maps.Copy(record, overrides)

	record, err = utils.ConvertDatesFor(template.Kind, record)
	if err != nil {
		return models.WorkItem{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.validator.Validate(ctx, template.Kind, validators.OpCreate, record); err != nil {
		return models.WorkItem{}, err
	}

	switch template.Kind {
	case models.KindEpic:
		return s.epics.CreateEpic(ctx, actor, record)
	case models.KindStory:
		return s.epics.CreateStory(ctx, actor, record)
	case models.KindTask:
		return s.epics.CreateTask(ctx, actor, record)
	case models.KindSubtask:
		return s.epics.CreateSubtask(ctx, actor, record)
	}

	return models.WorkItem{}, fmt.Errorf("%w: template %d has unknown kind %q", ErrInvalidInput, id, template.Kind)
}

func decodePayload(raw json.RawMessage) (map[string]any, error) {
	record := make(map[string]any)
	if len(raw) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: template payload must be a JSON object: %w", ErrInvalidInput, err)
	}
	if record == nil {
		record = make(map[string]any)
	}
	return record, nil
}

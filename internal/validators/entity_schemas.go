package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

// Operation distinguishes create payloads (all mandatory fields present)
// from partial update payloads.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 10000
	maxCommentLength     = 5000
)

type schemaKey struct {
	kind models.EntityKind
	op   Operation
}

var schemas = buildSchemas()

// SchemaFor returns the schema declared for kind and op.
func SchemaFor(kind models.EntityKind, op Operation) (Schema, bool) {
	s, ok := schemas[schemaKey{kind: kind, op: op}]
	return s, ok
}

func buildSchemas() map[schemaKey]Schema {
	out := make(map[schemaKey]Schema)

	for _, kind := range models.WorkItemKinds {
		out[schemaKey{kind, OpCreate}] = workItemSchema(kind, OpCreate)
		out[schemaKey{kind, OpUpdate}] = workItemSchema(kind, OpUpdate)
	}

	out[schemaKey{models.KindCustomer, OpCreate}] = Schema{
		"name":    {Required(), String().WithMin(1).WithMax(maxTitleLength)},
		"email":   {Email().Optional()},
		"company": {String().WithMax(maxTitleLength).Optional()},
	}
	out[schemaKey{models.KindCustomer, OpUpdate}] = Schema{
		"name":    {String().WithMin(1).WithMax(maxTitleLength).Optional()},
		"email":   {Email().Optional()},
		"company": {String().WithMax(maxTitleLength).Optional()},
	}

	out[schemaKey{models.KindComment, OpCreate}] = Schema{
		"entity_kind": {Required(), String().WithPattern(OneOf(models.KindEpic, models.KindStory, models.KindTask, models.KindSubtask, models.KindCustomer))},
		"entity_id":   {Required(), Number().WithMin(1)},
		"body":        {Required(), String().WithMin(1).WithMax(maxCommentLength)},
	}

	out[schemaKey{models.KindTemplate, OpCreate}] = Schema{
		"name":    {Required(), String().WithMin(1).WithMax(maxTitleLength)},
		"kind":    {Required(), String().WithPattern(OneOf(models.WorkItemKinds...))},
		"payload": {Required(), Object()},
	}

	return out
}

func workItemSchema(kind models.EntityKind, op Operation) Schema {
	title := []Rule{String().WithMin(1).WithMax(maxTitleLength)}
	if op == OpCreate {
		title = []Rule{Required(), title[0]}
	} else {
		title[0] = title[0].Optional()
	}

	s := Schema{
		"title":           title,
		"description":     {String().WithMax(maxDescriptionLength).Optional()},
		"status":          {String().WithPattern(OneOf(models.Statuses...)).WithMessage("Must be one of the known statuses").Optional()},
		"priority":        {String().WithPattern(OneOf(models.Priorities...)).WithMessage("Must be one of the known priorities").Optional()},
		"assignee_id":     {Number().WithMin(1).Optional()},
		"estimated_hours": {Number().WithMin(0).Optional()},
	}

	for _, field := range models.DateFields[kind] {
		s[field] = []Rule{Date().Optional()}
	}

	if _, hasParent := kind.ParentKind(); hasParent && op == OpCreate {
		s["parent_id"] = []Rule{Required(), Number().WithMin(1)}
	}

	switch kind {
	case models.KindEpic:
		s["phase_id"] = []Rule{Number().WithMin(1).Optional()}
		s["customer_id"] = []Rule{Number().WithMin(1).Optional()}
	case models.KindStory:
		s["phase_id"] = []Rule{Number().WithMin(1).Optional()}
	}

	return s
}

type schemaValidator struct {
	logger *logger.Logger
}

// NewSchemaValidator returns a Validator backed by the declared entity schemas.
func NewSchemaValidator(logger *logger.Logger) Validator {
	return &schemaValidator{logger: logger}
}

func (v *schemaValidator) Validate(ctx context.Context, kind models.EntityKind, op Operation, record map[string]any) error {
	schema, ok := SchemaFor(kind, op)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownSchema, kind, op)
	}

	result := ValidateSchema(record, schema)
	if !result.IsValid {
		logger.FromContext(ctx).Debug().
			Str("func", "schemaValidator.Validate").
			Str("kind", string(kind)).
			Str("op", string(op)).
			Any("errors", result.Errors).
			Msg("payload rejected")
	}

	return result.Err()
}

package validators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_EmptySchemaAlwaysValid(t *testing.T) {
	records := []map[string]any{
		nil,
		{},
		{"title": ""},
		{"anything": []any{1, "two"}, "nested": map[string]any{"x": nil}},
	}

	for _, rec := range records {
		res := ValidateSchema(rec, Schema{})
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
		assert.NoError(t, res.Err())
	}
}

func TestValidateSchema_RequiredAndTypeAccumulate(t *testing.T) {
	schema := Schema{
		"title":    {Required()},
		"priority": {Required(), String()},
	}

	res := ValidateSchema(map[string]any{"title": ""}, schema)

	require.False(t, res.IsValid)
	assert.Equal(t, []string{"This field is required"}, res.Errors["title"])
	assert.Equal(t, []string{"This field is required", "Must be a string"}, res.Errors["priority"])
}

func TestValidateSchema_IgnoresUndeclaredFields(t *testing.T) {
	schema := Schema{"name": {Required(), String()}}

	res := ValidateSchema(map[string]any{"name": "ok", "extra": float64(1)}, schema)

	assert.True(t, res.IsValid)
	assert.NotContains(t, res.Errors, "extra")
}

func TestValidateSchema_OnlyFailingFieldsReported(t *testing.T) {
	schema := Schema{
		"a": {Required()},
		"b": {Number()},
		"c": {Boolean()},
	}

	res := ValidateSchema(map[string]any{"a": "x", "b": "nope", "c": true}, schema)

	assert.False(t, res.IsValid)
	assert.Equal(t, map[string][]string{"b": {"Must be a number"}}, res.Errors)

	var vErr *ValidationError
	require.ErrorAs(t, res.Err(), &vErr)
	assert.Equal(t, []string{"b: Must be a number"}, vErr.Messages())
	assert.True(t, errors.Is(res.Err(), ErrValidationFailed))
}

func TestValidateSchema_FieldOrderDoesNotMatter(t *testing.T) {
	record := map[string]any{"x": "", "y": float64(3)}

	first := ValidateSchema(record, Schema{"x": {Required()}, "y": {String()}})
	second := ValidateSchema(record, Schema{"y": {String()}, "x": {Required()}})

	assert.Equal(t, first, second)
}

func TestValidationError_MessagesSortedByField(t *testing.T) {
	err := &ValidationError{Errors: map[string][]string{
		"zeta":  {"z1", "z2"},
		"alpha": {"a1"},
	}}

	assert.Equal(t, []string{"alpha: a1", "zeta: z1", "zeta: z2"}, err.Messages())
	assert.Contains(t, err.Error(), "alpha: a1")
}

func TestSchemaFor_WorkItems(t *testing.T) {
	for _, kind := range models.WorkItemKinds {
		create, ok := SchemaFor(kind, OpCreate)
		require.True(t, ok, kind)
		update, ok := SchemaFor(kind, OpUpdate)
		require.True(t, ok, kind)

		for _, field := range models.DateFields[kind] {
			assert.Contains(t, create, field, "%s create", kind)
			assert.Contains(t, update, field, "%s update", kind)
		}

		_, hasParent := kind.ParentKind()
		if hasParent {
			assert.Contains(t, create, "parent_id", kind)
		} else {
			assert.NotContains(t, create, "parent_id", kind)
		}
		assert.NotContains(t, update, "parent_id", kind)
	}

	epic, _ := SchemaFor(models.KindEpic, OpCreate)
	story, _ := SchemaFor(models.KindStory, OpCreate)
	assert.Contains(t, epic, "end_date")
	assert.NotContains(t, story, "end_date")
}

func TestSchemaValidator_EpicCreate(t *testing.T) {
	v := NewSchemaValidator(logger.Nop())
	ctx := context.Background()

	valid := map[string]any{
		"title":       "Launch",
		"status":      "todo",
		"priority":    "high",
		"start_date":  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"customer_id": float64(3),
	}
	require.NoError(t, v.Validate(ctx, models.KindEpic, OpCreate, valid))

	err := v.Validate(ctx, models.KindEpic, OpCreate, map[string]any{
		"status":   "someday",
		"due_date": "whenever",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"This field is required", "Must be a string"}, vErr.Errors["title"])
	assert.Equal(t, []string{"Must be one of the known statuses"}, vErr.Errors["status"])
	assert.Equal(t, []string{"Must be a valid date"}, vErr.Errors["due_date"])
}

func TestSchemaValidator_UpdateAllowsPartialPayload(t *testing.T) {
	v := NewSchemaValidator(logger.Nop())

	assert.NoError(t, v.Validate(context.Background(), models.KindTask, OpUpdate, map[string]any{"status": "done"}))
	assert.Error(t, v.Validate(context.Background(), models.KindTask, OpUpdate, map[string]any{"title": ""}))
}

func TestSchemaValidator_StoryRequiresParent(t *testing.T) {
	v := NewSchemaValidator(logger.Nop())

	err := v.Validate(context.Background(), models.KindStory, OpCreate, map[string]any{"title": "s"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "parent_id")
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	v := NewSchemaValidator(logger.Nop())

	err := v.Validate(context.Background(), models.KindComment, OpUpdate, map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

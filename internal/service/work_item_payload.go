package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/models"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldStatus
	fieldPriority
	fieldID
	fieldHours
	fieldDate
)

var baseWorkItemFields = map[string]fieldKind{
	"title":           fieldText,
	"description":     fieldText,
	"status":          fieldStatus,
	"priority":        fieldPriority,
	"assignee_id":     fieldID,
	"estimated_hours": fieldHours,

	models.FieldStartDate: fieldDate,
	models.FieldDueDate:   fieldDate,
}

// workItemFields lists the payload keys each kind accepts on create and
// update. parent_id is handled separately since it cannot change.
var workItemFields = map[models.EntityKind]map[string]fieldKind{
	models.KindEpic:    withFields(map[string]fieldKind{models.FieldEndDate: fieldDate, "phase_id": fieldID, "customer_id": fieldID}),
	models.KindStory:   withFields(map[string]fieldKind{"phase_id": fieldID}),
	models.KindTask:    withFields(nil),
	models.KindSubtask: withFields(nil),
}

func withFields(extra map[string]fieldKind) map[string]fieldKind {
	out := make(map[string]fieldKind, len(baseWorkItemFields)+len(extra))
	for k, v := range baseWorkItemFields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// workItemChanges turns a payload into a column → value map for kind.
// Unknown keys are dropped; known keys with an unusable value fail with
// ErrInvalidInput.
func workItemChanges(kind models.EntityKind, payload map[string]any) (map[string]any, error) {
	fields := workItemFields[kind]
	changes := make(map[string]any, len(payload))

	for key, raw := range payload {
		fk, ok := fields[key]
		if !ok {
			continue
		}

		value, err := normalizeField(fk, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, key, err)
		}
		changes[key] = value
	}

	return changes, nil
}

func normalizeField(fk fieldKind, raw any) (any, error) {
	switch fk {
	case fieldText:
		s, ok := raw.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		return s, nil

	case fieldStatus:
		s, _ := raw.(string)
		for _, st := range models.Statuses {
			if string(st) == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("unknown status %v", raw)

	case fieldPriority:
		s, _ := raw.(string)
		for _, p := range models.Priorities {
			if string(p) == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("unknown priority %v", raw)

	case fieldID:
		if raw == nil {
			return nil, nil
		}
		return toID(raw)

	case fieldHours:
		if raw == nil {
			return nil, nil
		}
		f, ok := toFloat(raw)
		if !ok || f < 0 {
			return nil, errors.New("must be a non-negative number")
		}
		return f, nil

	case fieldDate:
		return toDate(raw)
	}

	return nil, errors.New("unsupported field")
}

// toID accepts the numeric shapes a JSON decoder or a caller may produce.
func toID(raw any) (int64, error) {
	f, ok := toFloat(raw)
	if !ok || f < 1 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, errors.New("must be a positive integer id")
	}
	return int64(f), nil
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func toDate(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		return v.UTC(), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil, nil
		}
		return v.UTC(), nil
	case string:
		t, err := utils.ParseDate(v)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, nil
		}
		return *t, nil
	}
	return nil, errors.New("must be a date")
}

// applyChanges copies normalized changes onto item.
func applyChanges(item *models.WorkItem, changes map[string]any) {
	for key, value := range changes {
		switch key {
		case "title":
			item.Title = value.(string)
		case "description":
			item.Description = value.(string)
		case "status":
			item.Status = models.Status(value.(string))
		case "priority":
			item.Priority = models.Priority(value.(string))
		case "assignee_id":
			item.AssigneeID = idPtr(value)
		case "phase_id":
			item.PhaseID = idPtr(value)
		case "customer_id":
			item.CustomerID = idPtr(value)
		case "estimated_hours":
			if f, ok := value.(float64); ok {
				item.EstimatedHours = &f
			} else {
				item.EstimatedHours = nil
			}
		case models.FieldStartDate:
			item.StartDate = timePtr(value)
		case models.FieldEndDate:
			item.EndDate = timePtr(value)
		case models.FieldDueDate:
			item.DueDate = timePtr(value)
		}
	}
}

func idPtr(value any) *int64 {
	if id, ok := value.(int64); ok {
		return &id
	}
	return nil
}

func timePtr(value any) *time.Time {
	if t, ok := value.(time.Time); ok {
		return &t
	}
	return nil
}

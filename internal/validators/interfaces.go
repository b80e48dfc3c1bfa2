// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides declarative input validation for request
// payloads.
//
// Core concepts:
//   - Rule: one declarative check (a kind such as required/string/number plus
//     optional min, max, pattern and custom predicate).
//   - ValidateField: runs an ordered list of rules against one value and
//     collects every violation message.
//   - Schema / ValidateSchema: applies ValidateField to every declared field
//     of a record and aggregates the result per field.
//   - Validator: injectable entry point that picks the schema for an entity
//     kind and operation and turns violations into a *ValidationError.
//
// Records are map[string]any values as produced by encoding/json, possibly
// carrying time.Time values after date coercion.
package validators

import (
	"context"

	"github.com/MKhiriev/go-project-tracker/models"
)

// Validator validates an incoming payload for the given entity kind and
// operation. A nil error means the payload satisfies the schema.
type Validator interface {
	Validate(ctx context.Context, kind models.EntityKind, op Operation, record map[string]any) error
}

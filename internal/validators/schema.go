package validators

// Schema maps a field name to the ordered rules its value must satisfy.
type Schema map[string][]Rule

// Result is the outcome of validating a record against a Schema.
// Errors only holds fields with at least one violation.
type Result struct {
	IsValid bool                `json:"isValid"`
	Errors  map[string][]string `json:"errors"`
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// ValidateSchema runs ValidateField for every field declared in schema.
// A field missing from record is validated as nil; record fields the schema
// does not declare are ignored.
func ValidateSchema(record map[string]any, schema Schema) Result {
	errs := make(map[string][]string)

	for field, rules := range schema {
		if fieldErrs := ValidateField(record[field], rules); len(fieldErrs) > 0 {
			errs[field] = fieldErrs
		}
	}

	return Result{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-project-tracker/internal/utils"
	"github.com/MKhiriev/go-project-tracker/internal/validators"
	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies, see Init.
const maxBodySize = 1 << 20

// pathID reads the chi URL parameter name as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", errInvalidID, name, raw)
	}
	return id, nil
}

// queryID reads an optional positive id from the query string.
func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s %q", errInvalidID, name, raw)
	}
	return &id, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", errInvalidQuery, name)
	}
	return b, nil
}

func queryUint(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errInvalidQuery, name)
	}
	return n, nil
}

// readBody reads the whole body. The size limit is applied by the
// RequestSize middleware; exceeding it yields errBodyTooLarge.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return body, nil
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return decodeJSONBytes(body, dst)
}

func decodeJSONBytes(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return nil
}

// decodeRecord reads a JSON object body, coerces the date fields declared
// for kind and checks the result against kind's schema for op.
func (h *Handler) decodeRecord(r *http.Request, kind models.EntityKind, op validators.Operation) (map[string]any, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return h.recordFromBody(r, body, kind, op)
}

func (h *Handler) recordFromBody(r *http.Request, body []byte, kind models.EntityKind, op validators.Operation) (map[string]any, error) {
	var record map[string]any

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", errInvalidJSON)
	}

	return h.coerceRecord(r, kind, op, record)
}

// coerceRecord applies date coercion and then schema validation to an
// already decoded record.
func (h *Handler) coerceRecord(r *http.Request, kind models.EntityKind, op validators.Operation, record map[string]any) (map[string]any, error) {
	if record == nil {
		record = map[string]any{}
	}

	record, err := utils.ConvertDatesFor(kind, record)
	if err != nil {
		return nil, err
	}

	if err := h.validator.Validate(r.Context(), kind, op, record); err != nil {
		return nil, err
	}
	return record, nil
}

// decodeValidated checks the body against kind's schema for op and then
// decodes it into dst.
func (h *Handler) decodeValidated(r *http.Request, kind models.EntityKind, op validators.Operation, dst any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if _, err := h.recordFromBody(r, body, kind, op); err != nil {
		return err
	}
	return decodeJSONBytes(body, dst)
}

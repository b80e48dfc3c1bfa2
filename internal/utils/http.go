package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-project-tracker/models"
)

// encodeFailureBody is sent when a response body cannot be marshalled.
var encodeFailureBody = []byte(`{"success":false,"message":"Internal server error"}`)

// WriteJSON marshals data before touching w, so a marshalling failure still
// produces a well-formed 500 envelope instead of a half-written body.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(encodeFailureBody)
		return 0, fmt.Errorf("encoding response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}

// WriteSuccess sends {success:true,data,message}.
//
//	WriteSuccess(w, epic, "epic created", http.StatusCreated)
func WriteSuccess(w http.ResponseWriter, data any, message string, statusCode int) (int, error) {
	return WriteJSON(w, models.Response{Success: true, Data: data, Message: message}, statusCode)
}

// WriteFailure sends {success:false,message,errors}.
func WriteFailure(w http.ResponseWriter, message string, errs []string, statusCode int) (int, error) {
	return WriteJSON(w, models.Response{Message: message, Errors: errs}, statusCode)
}

package models

// Response is the envelope every API endpoint answers with.
type Response struct {
	// Success is true for 2xx answers.
	Success bool `json:"success"`

	// Data carries the payload of a successful call.
	Data any `json:"data,omitempty"`

	// Message is a short human-readable outcome description.
	Message string `json:"message,omitempty"`

	// Errors lists input problems, one "field: message" entry per violation.
	Errors []string `json:"errors,omitempty"`
}

// AuthResponse is the payload of register and login answers.
// The token is also sent in the Authorization header.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

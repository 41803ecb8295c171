// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error returned to the client. Code is a stable
// machine-readable identifier; Error is the human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

// ErrorResponse is the error envelope for all failure responses. Clients
// branch on the HTTP status code and show the message as-is.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error envelope with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// Package models defines request and response types for the dyndns HTTP API.
// All types are JSON-serializable and include binding tags where gin
// validates the request body.
package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

// SuccessResponse is returned by mutations that report a message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Package models defines request and response types for the nextdash REST API.
// All types are JSON-serializable and include binding tags where appropriate.
package models

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Profile ID is required"`
}

// NewError builds an ErrorResponse carrying message.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Error: true, Message: message}
}

// SuccessResponse acknowledges a write that has no payload of its own.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// StatusResponse represents a simple status response.
type StatusResponse struct {
	Status string `json:"status"`
}

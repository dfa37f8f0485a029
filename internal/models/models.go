// Package models defines the core data structures for MedAssist.
//
// It includes the per-user health record, the consultation session, the shared
// error variables, and the JSON envelope used by the HTTP collaborator layer.
package models

import "errors"

// Error variables for better error handling and testability
var (
	// ErrValidation indicates malformed structured input to a record-mutation
	// operation (nil record map, missing required keys on deserialization).
	ErrValidation = errors.New("validation failed")
	// ErrMissingRequiredKey indicates a required key was absent from a
	// serialized user record.
	ErrMissingRequiredKey = errors.New("missing required key")
	// ErrUserNotFound indicates no record exists for the requested user.
	ErrUserNotFound = errors.New("user not found")
)

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates a successful operation.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates a failed operation.
	APIStatusError APIStatus = "error"
)

// APIResponse is the JSON envelope returned by every HTTP endpoint.
type APIResponse struct {
	Status  APIStatus   `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: APIStatusOK, Result: result}
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: APIStatusOK, Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: APIStatusError, Message: message}
}

// ChatRequest is the payload accepted by the chat endpoint.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse carries the consultation result text back to the caller.
type ChatResponse struct {
	UserID   string `json:"user_id"`
	Response string `json:"response"`
}

package main

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ProcessError is returned when an external command such as git fails
type ProcessError struct {
	Operation string
	Command   string
	Output    string
	Err       error
}

func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %s: %v: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Command, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// APIError is returned for non-success responses from an HTTP endpoint
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GET %s: status %d", e.Endpoint, e.StatusCode)
}

// Is reports 404 responses as ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ValidationError represents a malformed manifest record or URL
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ManifestError wraps a failure to read or decode a manifest file
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

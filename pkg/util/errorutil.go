package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors on both sides of the wire:
// the API client maps failed responses into it and the fake API server's
// error middleware renders it.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewTransportError wraps a network-level failure that never produced a
// server response (connection refused, DNS, aborted body).
func NewTransportError(err error) error {
	return &DomainError{
		Code:    "TRANSPORT_ERROR",
		Message: "request failed before a response arrived",
		Err:     err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// IsAuthError reports whether err is an authorization failure. Admin
// surfaces use it to fall back to the login prompt instead of rendering
// an error state.
func IsAuthError(err error) bool {
	de := ToDomainError(err)
	return de != nil && (de.Code == "UNAUTHORIZED" || de.Code == "FORBIDDEN")
}

// IsTransportError reports whether err never reached the server.
func IsTransportError(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.Code == "TRANSPORT_ERROR"
}

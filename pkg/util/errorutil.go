package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Headers    map[string]string
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
func NewDomainError(code, message string, status int, headers map[string]string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Headers: headers}
}

// NewUnauthenticated builds a 401 carrying the scheme specific detail message.
func NewUnauthenticated(message string, headers map[string]string, cause error) error {
	err := NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized, headers)
	err.Err = cause
	return err
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal Server Error",
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
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal Server Error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	code := "HTTP_ERROR"
	message := err.Message
	switch err.Code {
	case http.StatusNotFound:
		// fiber reports unmatched routes as "Cannot GET /path"
		code, message = "NOT_FOUND", http.StatusText(err.Code)
	case http.StatusMethodNotAllowed:
		code, message = "METHOD_NOT_ALLOWED", http.StatusText(err.Code)
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusRequestTimeout:
		code = "TIMEOUT"
	}
	if message == "" {
		message = http.StatusText(err.Code)
	}
	return NewDomainError(code, message, err.Code, nil)
}

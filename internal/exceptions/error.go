package exceptions

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/harentsoaR/clinic-api/internal/store"
)

// CustomError carries the HTTP status and the message a client may see.
// DevMessage and Err stay server side and end up in the logs.
type CustomError struct {
	StatusCode    int
	ClientMessage string
	DevMessage    string
	Err           error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.DevMessage, e.Err)
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error { return e.Err }

func newError(status int, clientMessage, devMessage string, err error) *CustomError {
	if devMessage == "" {
		devMessage = clientMessage
	}
	return &CustomError{
		StatusCode:    status,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Err:           err,
	}
}

func ErrUnauthorized(message string) *CustomError {
	return newError(http.StatusUnauthorized, message, "", nil)
}

func ErrForbidden(message string) *CustomError {
	return newError(http.StatusForbidden, message, "", nil)
}

func ErrNotFound(message string) *CustomError {
	return newError(http.StatusNotFound, message, "", nil)
}

func ErrBadRequest(message string, err error) *CustomError {
	return newError(http.StatusBadRequest, message, "", err)
}

func ErrInternal(devMessage string, err error) *CustomError {
	return newError(http.StatusInternalServerError, "Internal server error", devMessage, err)
}

func ErrGatewayTimeout(devMessage string, err error) *CustomError {
	return newError(http.StatusGatewayTimeout, "Upstream timed out", devMessage, err)
}

// FromStoreError classifies an error returned by a store or an upstream call.
// notFoundMessage is what the client sees when the document is missing.
func FromStoreError(err error, op, notFoundMessage string) *CustomError {
	var ce *CustomError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, store.ErrNotFound):
		return newError(http.StatusNotFound, notFoundMessage, op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return ErrGatewayTimeout(op, err)
	default:
		return ErrInternal(op, err)
	}
}

// As returns err as a *CustomError, treating anything unclassified as internal.
func As(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternal("unclassified error", err)
}

package apperror

import (
	"errors"
	"net/http"
)

// Kind clasifica un error para elegir el código HTTP
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
)

// Error lleva un mensaje visible para el cliente y la causa opcional
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status traduce el tipo de error a un código HTTP
func (e *Error) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal envuelve un error inesperado. El mensaje nunca llega al cliente
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// From extrae un *Error de err; cualquier otro error se trata como interno
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("unhandled error", err)
}

package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/headcount/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("nil response")

	// ErrNotFound is passed to the error handler for unmatched requests.
	ErrNotFound error = routeError{msg: "not found", status: http.StatusNotFound}
)

type routeError struct {
	msg    string
	status int
}

func (e routeError) Error() string   { return e.msg }
func (e routeError) StatusCode() int { return e.status }

// statusCode is implemented by errors that carry an HTTP status.
type statusCode interface {
	StatusCode() int
}

func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statusCode); ok {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError is implemented by errors wrapping a recovered handler panic.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

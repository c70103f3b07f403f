package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/headcount/core/handler"
)

// statusCoder is implemented by errors that carry their own HTTP status,
// such as router.ErrNotFound.
type statusCoder interface {
	StatusCode() int
}

// asHTTPError returns err as an HTTPError. Errors without one are mapped by
// their status code, or to 500, with err attached as the cause.
func asHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := asHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as {"code", "message", "details"} JSON.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := asHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

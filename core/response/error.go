package response

import (
	"net/http"

	"github.com/dmitrymomot/headcount/core/handler"
)

// Error returns a response that fails with err, handing it to the router's
// error handler.
func Error(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}

package health

import (
	"github.com/dmitrymomot/headcount/core/handler"
	"github.com/dmitrymomot/headcount/core/response"
)

// Liveness reports that the process is running. It performs no checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

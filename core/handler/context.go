package handler

import (
	"context"
	"net/http"
)

// Context is the per-request context handed to handlers.
// It is a context.Context bound to the request's lifetime, so streaming
// handlers can select on Done to notice that the client went away.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

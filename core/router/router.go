package router

import (
	"net/http"

	"github.com/dmitrymomot/headcount/core/handler"
)

// Router registers type-safe handlers on top of http.ServeMux patterns.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Handle(pattern string, h handler.HandlerFunc[C])

	Use(middlewares ...handler.Middleware[C])
	Routes() []string
}

// New creates a router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}

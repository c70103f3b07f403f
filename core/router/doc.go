// Package router dispatches HTTP requests to type-safe handlers using the
// method-and-wildcard patterns of net/http.ServeMux.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//		router.WithMiddleware(middleware.RequestID[*router.Context]()),
//	)
//	r.Get("/count", countHandler)
//
// Handlers return a handler.Response; errors returned while rendering and
// recovered panics are routed to the error handler. The response writer
// passed to handlers supports flushing and hijacking, so Server-Sent
// Events and WebSocket upgrades work through the router.
package router

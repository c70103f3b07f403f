// Package middleware provides handler.Middleware implementations for
// request IDs and request logging.
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.LoggingWithLogger[*router.Context](log),
//		),
//	)
//
// RequestID must run before Logging for the id to appear in request logs.
package middleware

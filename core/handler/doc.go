// Package handler defines the types shared by the router, responses and
// middleware: type-safe handlers over a custom request context, responses
// as render functions, and composable middleware.
//
//	func count(hub *membership.Hub) handler.HandlerFunc[*router.Context] {
//		return func(ctx *router.Context) handler.Response {
//			return response.JSON(map[string]uint32{"count": hub.Count()})
//		}
//	}
//
// A Response does not write anything until the router calls it, which lets
// middleware decorate it (for example to add headers) after the handler
// has returned.
package handler

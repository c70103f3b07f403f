// Package response provides handler.Response constructors: plain text,
// JSON, structured HTTP errors, Server-Sent Events and WebSocket streams.
//
// Streaming responses block until their source channel is closed or the
// client goes away, so callers can release per-connection resources with
// a defer after the response returns.
package response

// Package health provides liveness and readiness HTTP handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log, counter.Ready(hub)))
//
// Readiness checks have the signature func(context.Context) error. The first
// failing check turns the probe into 503 Service Unavailable.
package health

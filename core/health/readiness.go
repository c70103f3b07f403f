package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/headcount/core/handler"
	"github.com/dmitrymomot/headcount/core/logger"
	"github.com/dmitrymomot/headcount/core/response"
)

// Readiness runs every check in order and responds "READY" when all pass.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
		}
		return response.String("READY")
	}
}

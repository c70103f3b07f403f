// Package logger provides structured logging utilities built on log/slog.
//
// New builds a logger from options; the attribute helpers keep key names
// consistent across components:
//
//	log := logger.New(
//		logger.WithProduction("headcount"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server started",
//		logger.Component("grpc"),
//		logger.Addr(":50051"),
//	)
//
//	log.Warn("dropping count update",
//		logger.Error(err),
//		logger.ID("subscription_id", id),
//	)
//
// Helpers return an empty slog.Attr for nil or empty values, which slog
// omits from output.
package logger

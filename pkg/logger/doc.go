// Package logger builds log/slog loggers for the application.
//
// New returns a *slog.Logger configured through functional options. The
// environment helpers pick sensible defaults: text output at debug level for
// development, JSON at info level for staging and production. Every record is
// passed through a decorator that can pull request-scoped values (such as a
// request id) out of the context.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "secretkeeper"),
//		logger.WithContextExtractors(logger.RequestIDExtractor(middleware.GetReqID)),
//	)
//	log.InfoContext(ctx, "user registered", logger.UserID(user.ID), logger.Component("auth"))
//
// The attribute helpers (Error, UserID, Component, Event, ...) keep attribute
// keys consistent across packages.
package logger

// Package logger builds slog loggers with environment-aware defaults and
// context-driven attribute injection.
//
// The context handler decorator lets request-scoped identifiers (tenant id,
// principal id, environment) appear on every log record without threading
// them through call sites:
//
//	log := logger.New(
//	    logger.WithEnvironment(env, "tenantkit"),
//	    logger.WithContextExtractors(
//	        tenant.LoggerExtractor(),
//	        principal.LoggerExtractor(),
//	    ),
//	)
//	log.InfoContext(ctx, "document created") // carries tenant_id automatically
package logger

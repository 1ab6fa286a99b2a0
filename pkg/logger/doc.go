// Package logger provides a thin factory around log/slog plus typed attribute
// helpers shared across the module.
//
// The factory produces JSON logs by default (production-safe) and a
// human-readable text format for development. Attribute helpers keep log field
// names consistent across packages, which matters here because suppressed
// fan-out failures are observable only through logs and result types.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("notifykit"),
//	    logger.WithAttr(logger.Component("fanout")),
//	)
//	log.Error("durable publish failed",
//	    logger.RoutingKey("notification.new"),
//	    logger.Error(err),
//	)
package logger

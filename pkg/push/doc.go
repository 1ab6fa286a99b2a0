// Package push batches device tokens and delivers external push
// notifications through a pluggable provider.
//
// The gateway filters out recipients without a registered device token and
// issues at most one outbound provider call per dispatch. Provider errors are
// suppressed and recorded in the DispatchResult - push delivery is a
// best-effort overlay on top of already-persisted notifications, and no
// delivery receipts are consumed.
//
//	var cfg push.Config
//	config.MustLoad(&cfg)
//
//	var provider push.Provider
//	if cfg.Enabled() {
//	    provider, _ = push.NewOneSignal(cfg)
//	}
//	gateway := push.NewGateway(provider) // nil provider downgrades to NoOp
//
//	result := gateway.Dispatch(ctx, tokens, "New Article Published", message, data)
//	if result.Err != nil {
//	    // already logged; persisted notifications are unaffected
//	}
package push

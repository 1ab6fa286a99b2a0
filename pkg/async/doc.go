// Package async provides a small generic Future primitive for running a
// computation in the background and supervising its completion.
//
// Within this module it backs the fan-out delivery side effects: after a
// content mutation has committed, event publishing and push dispatch run as a
// Future that the caller awaits with a bounded timeout. The task therefore has
// a supervised, bounded lifetime rather than being a detached goroutine, and
// tests can assert on both the "task ran" and "task failed silently" paths.
//
//	future := async.Async(ctx, batch, engine.deliver)
//	if _, err := future.AwaitWithTimeout(10 * time.Second); err != nil {
//	    // logged and suppressed; the committed mutation is unaffected
//	}
//
// All helpers are context-aware: a cancelled context completes the Future with
// the context error without invoking the computation.
package async

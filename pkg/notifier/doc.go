// Package notifier implements notification fan-out and read-state tracking
// for the blog platform.
//
// The Engine computes recipient sets from domain triggers (article published,
// comment created, likes), persists one notification row per recipient in a
// single bulk insert, then delivers side effects best-effort: one
// notification.new event per created row and one batched push dispatch.
// Delivery failures never fail the triggering mutation; they are collected in
// the returned Result.
//
//	engine := notifier.NewEngine(storage, directory, publisher, gateway,
//	    notifier.WithLogger(log),
//	    notifier.WithDeliveryTimeout(10*time.Second),
//	)
//
//	result := engine.Notify(ctx, notifier.CommentCreated{
//	    Article: article,
//	    Comment: comment,
//	    Parent:  parent,
//	})
//	// result.Created rows exist; result.Suppressed holds swallowed failures.
//
// Recipient rules are evaluated independently per trigger with no cross-rule
// deduplication, and the acting user never receives a notification about
// their own action.
//
// The Tracker serves per-user listing, unread counting and the one-way read
// transition, emitting notification.read and notification.read_all events
// when state actually changes.
//
// Storage and Directory each ship a MongoDB implementation for production
// and a memory implementation for tests.
package notifier

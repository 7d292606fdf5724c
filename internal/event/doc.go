// Package event carries the file-lifecycle notifications that drive the
// bootstrap layer.
//
// Events use hierarchical dot-notation topics ("file.opened"). Delivery
// is synchronous and in subscription order: the publisher's goroutine
// runs every handler before Publish returns, so an occurrence is fully
// handled by the time the producing code continues. Handlers are
// registered through an explicit subscription interface rather than a
// global hook list; the bus holds the handler references and invokes
// them directly.
//
// The bus is safe for concurrent use, but the expected discipline is
// configure-then-serve: subscriptions are added while the application
// boots and the first publish happens only after boot completes.
package event

package autoload

import (
	"context"
	"sync/atomic"

	"github.com/jhirn/doom-emacs/internal/event"
)

// Reporter receives isolated per-rule failures. Implementations must not
// influence dispatch control flow.
type Reporter interface {
	Report(err *ActionError)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(err *ActionError)

// Report implements Reporter.
func (f ReporterFunc) Report(err *ActionError) {
	f(err)
}

// Dispatcher evaluates a rule table against file-opened events and
// invokes the action of every matching rule.
//
// The hosting application owns the table: it constructs and populates it
// during its configuration phase and hands it in here. The dispatcher
// never mutates the table.
type Dispatcher struct {
	table    *Table
	reporter Reporter
	exec     executor

	// Stats
	dispatched atomic.Uint64
	matched    atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithReporter sets the diagnostic sink for action failures. Without a
// reporter, failures are silently discarded.
func WithReporter(r Reporter) Option {
	return func(d *Dispatcher) {
		d.reporter = r
	}
}

// NewDispatcher creates a dispatcher over the given rule table.
func NewDispatcher(table *Table, opts ...Option) *Dispatcher {
	d := &Dispatcher{table: table}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleFileOpened dispatches one file-opened event. It matches the
// event.FileOpenedHandler signature so the host bus can hold it directly
// as a subscription.
//
// Dispatch semantics:
//
//  1. An event without a path is a no-op.
//  2. The path is normalized: version/backup suffixes stripped, then the
//     remote marker removed when it prefixes the result.
//  3. Rules are evaluated in table order; every rule whose pattern
//     matches the normalized path has its action invoked with
//     EnableFlag. All matches fire; there is no short circuit.
//  4. Action failures and panics are contained, reported to the
//     Reporter, and never returned: opening a file must not fail
//     because one mode misbehaved. The returned error is always nil.
//
// No rule matching is not an error; dispatch completes silently.
func (d *Dispatcher) HandleFileOpened(_ context.Context, evt event.FileOpened) error {
	if evt.Path == "" {
		return nil
	}

	d.dispatched.Add(1)
	path := Normalize(evt.Path, evt.RemoteMarker)

	for i, rule := range d.table.Rules() {
		if rule.inert() || !rule.Pattern.MatchString(path) {
			continue
		}

		d.matched.Add(1)
		result := d.exec.invoke(rule.Action, EnableFlag)
		if result.Success {
			continue
		}

		if result.Panicked {
			d.panicked.Add(1)
		} else {
			d.failed.Add(1)
		}
		d.report(&ActionError{
			Index:   i,
			Pattern: rule.Pattern.String(),
			Path:    path,
			Err:     result.Error,
			Stack:   result.Stack,
		})
	}

	return nil
}

func (d *Dispatcher) report(err *ActionError) {
	if d.reporter != nil {
		d.reporter.Report(err)
	}
}

// Stats reports dispatch counters since construction.
func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{
		Dispatched: d.dispatched.Load(),
		Matched:    d.matched.Load(),
		Failed:     d.failed.Load(),
		Panicked:   d.panicked.Load(),
	}
}

// DispatchStats holds dispatch counters.
type DispatchStats struct {
	// Dispatched is the number of non-empty events processed.
	Dispatched uint64

	// Matched is the number of rule matches across all dispatches.
	Matched uint64

	// Failed is the number of actions that returned an error.
	Failed uint64

	// Panicked is the number of actions that panicked.
	Panicked uint64
}

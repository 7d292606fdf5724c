package autoload

import (
	"regexp"
	"sync"
)

// EnableFlag is the argument passed to actions when a rule fires. The
// value 1 means "enable"; enabling an already-enabled mode is expected
// to be a no-op on the action side.
const EnableFlag = 1

// Action is the capability a rule invokes when its pattern matches.
// Implementations activate (or deactivate) a minor mode. Enable must be
// idempotent for repeated activation.
type Action interface {
	Enable(flag int) error
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(flag int) error

// Enable implements Action.
func (f ActionFunc) Enable(flag int) error {
	return f(flag)
}

// Rule pairs a compiled path pattern with the action to invoke when the
// pattern matches a normalized path. A Rule with a nil Pattern or nil
// Action is inert: it never matches and is never invoked.
type Rule struct {
	// Pattern is matched unanchored against normalized paths.
	Pattern *regexp.Regexp

	// Action is invoked with EnableFlag for every matching dispatch.
	Action Action
}

// inert reports whether the rule should be skipped during dispatch.
func (r Rule) inert() bool {
	return r.Pattern == nil || r.Action == nil
}

// Table is an ordered sequence of rules. Order determines evaluation
// order only; every matching rule fires, so order carries no precedence.
//
// The table is populated during the configuration phase and read during
// dispatch. It is safe for concurrent reads and for registration from
// multiple goroutines, though the embedding application is expected to
// finish registration before the first dispatch.
type Table struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewTable creates an empty rule table.
func NewTable() *Table {
	return &Table{}
}

// Register compiles pattern and appends a rule invoking action. An
// invalid pattern is rejected immediately with a *PatternError and the
// table is left unchanged. An empty pattern registers an inert rule.
func (t *Table) Register(pattern string, action Action) error {
	if pattern == "" {
		t.Append(Rule{Action: action})
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}

	t.Append(Rule{Pattern: re, Action: action})
	return nil
}

// Append adds a pre-built rule at the end of the table.
func (t *Table) Append(rule Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append(t.rules, rule)
}

// Prepend adds a pre-built rule at the front of the table.
func (t *Table) Prepend(rule Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append([]Rule{rule}, t.rules...)
}

// Rules returns a snapshot of the table in evaluation order.
func (t *Table) Rules() []Rule {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table, inert rules included.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rules)
}

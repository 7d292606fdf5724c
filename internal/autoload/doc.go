// Package autoload implements the automatic minor-mode dispatch engine.
//
// The dispatcher owns an ordered table of rules, each pairing a regular
// expression over file paths with an action that enables a minor mode.
// On every file-open event the path is normalized (backup/version
// suffixes stripped, remote-authority prefix removed) and evaluated
// against all rules in registration order. Every matching rule fires;
// there is no first-match short circuit, because multiple unrelated
// modes may legitimately apply to the same file.
//
// # Failure isolation
//
// A failing or panicking action never stops evaluation of the remaining
// rules and never surfaces to the code that opened the file. Failures are
// reported to a diagnostic Reporter instead. Registration-time problems
// (a pattern that does not compile) fail fast with a *PatternError.
//
// # Lifecycle
//
// The embedding application constructs a Table, populates it during its
// configuration phase, and hands it to NewDispatcher before serving
// events. The table is not mutated after dispatch begins; under that
// configure-then-serve ordering no locking is required, though Table is
// internally safe for concurrent reads.
package autoload

// Package logging assembles the structured slog loggers used by audiofix.
//
// It owns the console and JSON handlers, level parsing, and the standard field
// names so every component emits records of the same shape. A run logs its
// progress (inventory counts, per-entry path changes, unresolved entries) here
// rather than printing directly; the CLI decides where the stream goes.
//
// Use NewComponentLogger to tag a package's records and NewNop in tests.
package logging

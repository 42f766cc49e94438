// Package fault defines the error markers shared by the catalog repair
// workflow.
//
// Every failure that escapes a package is wrapped with one of the sentinel
// markers below so the CLI and tests can classify it with errors.Is without
// parsing messages. Wrap keeps the original error in the chain.
package fault

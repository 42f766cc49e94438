// Package catalog reads and writes the GameWatcher dialogue catalog.
//
// The catalog is a JSON array of dialogue entries. Each entry is kept as its
// original object bytes: reads go through gjson and the few fields the repair
// pass changes are rewritten in place with sjson. Fields this package does
// not know about therefore survive a load/save cycle untouched, in their
// original position and with their original escaping.
//
// # Encoding
//
// Input may start with a UTF-8 BOM or be UTF-16 with a BOM (as written by some
// .NET tooling); both are decoded to UTF-8. Output is always UTF-8 without a
// BOM, indented with two spaces, with non-ASCII text written literally.
//
// # Persistence
//
// Save replaces the file through a temp file and rename. A failed save leaves
// the previous catalog in place.
package catalog

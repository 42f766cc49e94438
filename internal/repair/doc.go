// Package repair relinks dialogue catalog entries to voice-over files.
//
// Apply is the pass itself: it walks the catalog in order, keeps every entry
// whose audio path exists, and gives each remaining entry the first unused
// file from its speaker's inventory pool. Entries whose speaker has no pool,
// or whose pool has run dry, are left as they are and listed in the Report.
//
// Matching is by speaker only. The file handed out is whichever comes first in
// directory listing order; nothing checks that the recording says the entry's
// text. Review the report's assignments before shipping a repaired catalog.
//
// Runner wraps Apply with the I/O around it: it takes an advisory lock next to
// the catalog, loads the catalog, scans the voices tree, applies the pass, and
// saves atomically unless running dry.
package repair

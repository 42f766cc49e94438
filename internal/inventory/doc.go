// Package inventory builds the per-speaker pools of voice-over files.
//
// The voices root holds one directory per speaker. Scan lists those
// directories (skipping excluded names such as "previews" and hidden
// directories) and collects the files with the configured extension in
// directory listing order, which os.ReadDir returns sorted by name. Each pool
// is a FIFO queue: Pop hands out the first remaining file and never returns it
// again, so one run assigns every file at most once.
//
// Speaker names are compared after NFC normalization so directory names stored
// in decomposed form (as some filesystems do) still match catalog speakers.
// No attempt is made to check that a file's content matches any dialogue line.
package inventory

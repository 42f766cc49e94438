// Package main hosts the audiofix CLI.
//
// audiofix relinks entries of the GameWatcher dialogue catalog to voice-over
// files. Run without arguments it locates the repository root, loads
// SimpleLoop/dialogue_catalog.json, scans voices/<speaker>/ for recordings,
// gives every entry whose audio path is empty or missing the next unused file
// of its speaker, and writes the catalog back atomically.
//
// Assignment is by speaker and listing order only; the tool never listens to
// the audio. Use --dry-run to review the assignments first.
//
// Keep this package thin: the repair logic lives in internal/repair and its
// supporting packages, commands here only resolve configuration and render
// results.
package main

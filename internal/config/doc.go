// Package config loads and validates audiofix configuration.
//
// Configuration is optional. Load starts from Default, overlays the first TOML
// file it finds (explicit path, then audiofix.toml at the repository root,
// then ~/.config/gamewatcher/audiofix.toml), applies AUDIOFIX_* environment
// overrides (a .env file at the repository root is read first), and resolves
// catalog and voices paths against the repository root.
//
// Callers receive a normalized Config whose paths are absolute.
package config

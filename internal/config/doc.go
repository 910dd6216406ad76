// Package config loads, normalizes, and validates curator's TOML
// configuration. Load applies defaults first, then the file, then path
// expansion, so every consumer sees absolute directories and sane values.
// Validation failures here are the only fatal errors in the system; once a
// config loads, per-file problems are always recovered.
package config

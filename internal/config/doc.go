// Package config loads, normalizes, and validates filesort configuration.
//
// Configuration is read from TOML. Load searches an explicit path first, then
// ~/.config/filesort/config.toml, then ./filesort.toml, and falls back to
// Default when no file exists. Paths are expanded (including ~) and made
// absolute during normalization; environment variables may override the state
// directory and log level.
//
// Category rules are kept here as plain data. The category package turns them
// into a lookup table so the organizer never depends on configuration types.
package config

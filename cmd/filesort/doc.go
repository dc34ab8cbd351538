// Package main hosts the filesort CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into organize passes,
// history queries, scheduled watchers and configuration scaffolding. It
// centralizes configuration resolution, category table selection and logging
// setup so subcommands only deal with flags and output.
//
// Keep this package lean: new behavior belongs in the internal packages and
// is surfaced here through a dedicated command or flag.
package main

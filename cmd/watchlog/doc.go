// Package main hosts the watchlog CLI entrypoint and command graph.
//
// The Cobra command tree records, edits, lists and removes watch entries,
// looks titles up on TMDB, runs the interactive browse view, and manages
// the theme preference and configuration scaffolding. Configuration
// resolution, logger construction, and opening the locked key-value store
// are centralized in commandContext so subcommands only deal with output.
package main

// Package main hosts the muffle CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the engine's offline pieces:
// inspecting and managing the site rule table, parsing subtitle files,
// and scanning them against the configured word filter. It centralizes
// configuration resolution so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main

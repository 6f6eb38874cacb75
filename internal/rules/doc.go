// Package rules holds the declarative per-site rule model that drives
// caption detection.
//
// A Rule pairs one detection mode (element, elementChild, text, watcher,
// cue, dynamic, ytauto) with the selectors and mute behavior for one
// site. The Registry merges built-in tables, build-target additions, and
// user custom rules into the active list for a page, and Init runs each
// rule through its raw -> validated -> disabled|enabled state machine.
// Rules are mutated in place only during initialization; afterwards the
// table is read-only for the lifetime of the page.
package rules

// Package engine is the per-page caption detection and mute core.
//
// A State is built once per page from the active rule table. The host's
// mutation layer feeds observed DOM nodes to SupportedNode, native
// cue-change events to OnCueChange, and playback transitions to
// VideoPaused/VideoResumed; watcher rules poll on their own tickers once
// StartWatchers runs. All five detection strategies converge on the same
// mute/unmute state machine and the same show-policy visibility
// decision.
//
// The engine is event-driven and idempotent: muting twice performs the
// side effect once, a pending delayed unmute is replaced rather than
// stacked, and repeated mutation events carrying already-filtered text
// are recognized and skipped.
package engine

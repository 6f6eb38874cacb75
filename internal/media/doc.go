// Package media defines the host-side primitives the engine drives.
//
// The engine never talks to a page directly; the embedding host supplies
// a Video, optional filler AudioPlayer, a Messenger for cross-context
// notifications, Observer suspend/resume hooks for the mutation layer,
// and a Fetcher for external subtitle downloads. Text tracks and cues
// are concrete types owned by this package because the engine both reads
// and rewrites them.
package media

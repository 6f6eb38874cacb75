// Package overlay renders the synthetic caption element used when
// native captions cannot be safely edited in place.
//
// The renderer owns one container element per rule and rebuilds its
// line spans from filtered cue text on every update. Clearing removes
// the element from the document entirely.
package overlay

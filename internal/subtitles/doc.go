// Package subtitles converts externally fetched subtitle payloads into
// timed cue lists.
//
// Three formats are supported: SRT, SSA/ASS, and WebVTT, all as plain
// text. The parsers are tolerant and best-effort: unknown sections and
// decorations are skipped, but a malformed timing line fails the whole
// parse call so a partial track is never installed. Timing tokens accept
// numeric seconds or H:MM:SS.mmm clock strings and convert exactly to
// the millisecond.
package subtitles

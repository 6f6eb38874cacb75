// Package filter defines the text-filtering contract the detection
// engine calls and ships a word-list reference implementation.
//
// The engine only depends on the Filter interface: given caption text it
// receives the original, the filtered replacement, and whether anything
// changed. Hosts embedding the engine substitute their own matcher; the
// WordList implementation here backs the CLI and tests.
package filter

// Package dom provides the HTML node utilities the detection engine
// matches captions against.
//
// Nodes are golang.org/x/net/html nodes. Selector support is a practical
// subset of CSS: tag, .class, #id, [attr], [attr=val], and the descendant
// combinator, which covers every selector the built-in site rules use.
// All lookups degrade to "no match" rather than failing.
package dom

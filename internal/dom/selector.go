package dom

import (
	"strings"

	"golang.org/x/net/html"
)

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

// parseSimpleSelector parses "tag.class", "#id", "tag[attr=val]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eqIdx := strings.IndexByte(attrPart, '='); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = strings.ToLower(sel)
	return s
}

func matchesSimple(n *html.Node, s simpleSelector) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && strings.ToLower(n.Data) != s.tag {
		return false
	}
	if s.id != "" && Attr(n, "id") != s.id {
		return false
	}
	if s.class != "" && !HasClass(n, s.class) {
		return false
	}
	if s.attrKey != "" {
		if s.attrVal != "" {
			if Attr(n, s.attrKey) != s.attrVal {
				return false
			}
		} else if !HasAttr(n, s.attrKey) {
			return false
		}
	}
	return true
}

// Matches reports whether node satisfies the final part of selector; for
// a descendant selector ("div.outer span") the leading parts must match
// ancestors in order.
func Matches(n *html.Node, selector string) bool {
	parts := strings.Fields(selector)
	if len(parts) == 0 || n == nil {
		return false
	}
	if !matchesSimple(n, parseSimpleSelector(parts[len(parts)-1])) {
		return false
	}
	ancestor := n.Parent
	for i := len(parts) - 2; i >= 0; i-- {
		s := parseSimpleSelector(parts[i])
		for ancestor != nil && !matchesSimple(ancestor, s) {
			ancestor = ancestor.Parent
		}
		if ancestor == nil {
			return false
		}
		ancestor = ancestor.Parent
	}
	return true
}

// QueryAll returns all descendants of root (root included) matching selector.
func QueryAll(root *html.Node, selector string) []*html.Node {
	parts := strings.Fields(selector)
	if len(parts) == 0 || root == nil {
		return nil
	}

	matches := matchSimpleAll(root, parts[0], true)
	for i := 1; i < len(parts); i++ {
		// Descendant steps walk strictly below each match, and a node
		// reachable through several matched ancestors counts once.
		seen := make(map[*html.Node]bool)
		var next []*html.Node
		for _, parent := range matches {
			for _, m := range matchSimpleAll(parent, parts[i], false) {
				if seen[m] {
					continue
				}
				seen[m] = true
				next = append(next, m)
			}
		}
		matches = next
	}
	return matches
}

// Query returns the first match of selector under root, or nil.
func Query(root *html.Node, selector string) *html.Node {
	matches := QueryAll(root, selector)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// Closest walks from n upward (n included) and returns the first node
// matching selector, or nil.
func Closest(n *html.Node, selector string) *html.Node {
	s := parseSimpleSelector(strings.TrimSpace(selector))
	for cur := n; cur != nil; cur = cur.Parent {
		if matchesSimple(cur, s) {
			return cur
		}
	}
	return nil
}

func matchSimpleAll(root *html.Node, sel string, includeRoot bool) []*html.Node {
	s := parseSimpleSelector(sel)
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if matchesSimple(n, s) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if includeRoot {
		walk(root)
		return results
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return results
}

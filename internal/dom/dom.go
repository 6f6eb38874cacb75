package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of an attribute on a node, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether a node carries the attribute.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute value.
func SetAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// HasClass reports whether the node's class list contains name.
func HasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

// ElementChildCount counts element children only.
func ElementChildCount(n *html.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// Text collects the text content of a node and its descendants.
func Text(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b, false)
	return b.String()
}

// TextWithBreaks collects text content converting <br> elements to
// newlines, for sites that encode caption line breaks as markup.
func TextWithBreaks(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b, true)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder, breaks bool) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if breaks && strings.EqualFold(n.Data, "br") {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b, breaks)
	}
}

// SetText replaces the node's children with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Contains reports whether ancestor contains n (or is n itself).
func Contains(ancestor, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Attached reports whether n is still reachable from root.
func Attached(root, n *html.Node) bool {
	return Contains(root, n)
}

// Element creates an element node with optional class.
func Element(tag, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	if class != "" {
		SetAttr(n, "class", class)
	}
	return n
}

package overlay

import (
	"golang.org/x/net/html"

	"muffle/internal/dom"
)

// ContainerClass marks the overlay element in the document.
const ContainerClass = "muffle-captions"

// LineClass marks each rendered caption line.
const LineClass = "muffle-caption-line"

// Renderer maintains one synthetic caption overlay under a parent node.
type Renderer struct {
	parent *html.Node
	root   *html.Node
}

// New creates a renderer that mounts the overlay under parent.
func New(parent *html.Node) *Renderer {
	return &Renderer{parent: parent}
}

// Render replaces the overlay content with one span per line. Rendering
// an empty line list clears the overlay.
func (r *Renderer) Render(lines []string) {
	if r == nil || r.parent == nil {
		return
	}
	if len(lines) == 0 {
		r.Clear()
		return
	}
	if r.root == nil {
		r.root = dom.Element("div", ContainerClass)
		r.parent.AppendChild(r.root)
	}
	for r.root.FirstChild != nil {
		r.root.RemoveChild(r.root.FirstChild)
	}
	for _, line := range lines {
		span := dom.Element("span", LineClass)
		dom.SetText(span, line)
		r.root.AppendChild(span)
	}
}

// Clear detaches the overlay from the document.
func (r *Renderer) Clear() {
	if r == nil || r.root == nil {
		return
	}
	if r.root.Parent != nil {
		r.root.Parent.RemoveChild(r.root)
	}
	r.root = nil
}

// Lines returns the rendered caption lines, top to bottom.
func (r *Renderer) Lines() []string {
	if r == nil || r.root == nil {
		return nil
	}
	var lines []string
	for c := r.root.FirstChild; c != nil; c = c.NextSibling {
		lines = append(lines, dom.Text(c))
	}
	return lines
}

// Mounted reports whether the overlay element is currently attached.
func (r *Renderer) Mounted() bool {
	return r != nil && r.root != nil
}

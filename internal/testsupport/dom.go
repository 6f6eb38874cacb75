package testsupport

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// ParseDoc parses an HTML fragment into a full document tree.
func ParseDoc(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

package engine

import (
	"golang.org/x/net/html"

	"muffle/internal/dom"
	"muffle/internal/overlay"
)

// renderOverlayLocked rebuilds the synthetic caption overlay for a rule.
// The overlay mounts under the document body, never under the native
// caption display, which stays hidden while the overlay is live.
func (s *State) renderOverlayLocked(ruleIdx int, lines []string) {
	r, ok := s.overlays[ruleIdx]
	if !ok {
		parent := s.overlayParent()
		if parent == nil {
			return
		}
		r = overlay.New(parent)
		s.overlays[ruleIdx] = r
	}
	r.Render(lines)
}

func (s *State) clearOverlayLocked(ruleIdx int) {
	if r, ok := s.overlays[ruleIdx]; ok {
		r.Clear()
	}
}

func (s *State) overlayParent() *html.Node {
	if s.page.Doc == nil {
		return nil
	}
	if body := dom.Query(s.page.Doc, "body"); body != nil {
		return body
	}
	return s.page.Doc
}

// OverlayLines exposes the rendered overlay for a rule, primarily for
// hosts that mirror it into their own UI.
func (s *State) OverlayLines(ruleIdx int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.overlays[ruleIdx]; ok {
		return r.Lines()
	}
	return nil
}

package engine

import (
	"strings"

	"golang.org/x/net/html"

	"muffle/internal/rules"
)

// YTAutoCaptions handles YouTube's auto-generated caption windows. The
// rule is synthetic, always disabled in the normal dispatch loop, and
// driven by the host's dedicated mutation callback passing the caption
// window element here.
func (s *State) YTAutoCaptions(window *html.Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ytAutoIndexLocked()
	if idx == NoRule || window == nil || s.filter == nil {
		return false
	}
	rule := s.rules[idx]

	targets := s.captionTargets(rule, window)
	filtered := false
	for _, el := range targets {
		text := s.captionText(rule, el)
		if strings.TrimSpace(text) == "" {
			continue
		}
		result := s.filter.Replace(text, rule.Captions.FilterList, statsKindAudio)
		if !result.Modified {
			continue
		}
		filtered = true
		s.muteLocked(idx)
		s.writeCaption(el, result.Filtered)
	}
	if filtered {
		s.reportCaptionsFound()
	} else {
		s.unmuteLocked(idx, false)
	}
	return filtered
}

func (s *State) ytAutoIndexLocked() int {
	for i, rule := range s.rules {
		if rule != nil && rule.Mode == rules.ModeYTAuto {
			return i
		}
	}
	return NoRule
}

package engine

import (
	"strings"

	"golang.org/x/net/html"

	"muffle/internal/dom"
	"muffle/internal/logging"
	"muffle/internal/rules"
)

const statsKindAudio = "audio"

// ProcessCaptions runs the clean pass for an element-, elementChild-, or
// text-mode rule against the matched caption container. It filters the
// caption text, drives the mute state machine, rewrites the captions
// unless synthetic rendering suppresses direct edits, and applies the
// rule's show policy. It reports whether this pass ended filtered.
func (s *State) ProcessCaptions(ruleIdx int, container *html.Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processCaptionsLocked(ruleIdx, container)
}

func (s *State) processCaptionsLocked(ruleIdx int, container *html.Node) bool {
	rule := s.Rule(ruleIdx)
	if rule == nil || container == nil || s.filter == nil {
		return false
	}

	if rule.Captions.Synthetic {
		// Native captions are hidden up front so unfiltered text never
		// flashes while the overlay is rebuilt.
		s.hideCaptions(rule, container)
	}

	targets := s.captionTargets(rule, container)
	filtered := false
	changed := false

	for _, el := range targets {
		text := s.captionText(rule, el)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if el == s.lastFilteredNode && text == s.lastFilteredText {
			// Repeated mutation event for content already rewritten.
			filtered = true
			continue
		}

		result := s.filter.Replace(text, rule.Captions.FilterList, statsKindAudio)
		if !result.Modified {
			continue
		}
		filtered = true
		changed = true
		s.muteLocked(ruleIdx)
		if !rule.Captions.Synthetic {
			s.writeCaption(el, result.Filtered)
			s.lastFilteredNode = el
			s.lastFilteredText = result.Filtered
		} else {
			s.lastFilteredNode = el
			s.lastFilteredText = text
		}
		s.logger.Debug("caption filtered", logging.Args(logging.Int(logging.FieldRule, ruleIdx))...)
	}

	// A partial DOM update can fire a mutation event without touching
	// the caption that was filtered last pass. As long as that node is
	// still attached with unchanged text the pass counts as filtered,
	// preventing mute flapping.
	if !changed && !filtered && s.lastFilteredNode != nil &&
		dom.Attached(s.page.Doc, s.lastFilteredNode) &&
		dom.Text(s.lastFilteredNode) == s.lastFilteredText {
		filtered = true
	}

	if filtered {
		if rule.Captions.Synthetic {
			s.renderOverlayLocked(ruleIdx, s.overlayLines(rule, targets))
		}
	} else {
		s.unmuteLocked(ruleIdx, false)
		s.clearOverlayLocked(ruleIdx)
	}

	s.applyShowPolicy(rule, ruleIdx, container, filtered)
	return filtered
}

// captionTargets selects the sub-elements carrying caption text, falling
// back to the container itself.
func (s *State) captionTargets(rule *rules.Rule, container *html.Node) []*html.Node {
	if sel := rule.Captions.SubtitleSelector; sel != "" {
		if matches := dom.QueryAll(container, sel); len(matches) > 0 {
			return matches
		}
	}
	return []*html.Node{container}
}

func (s *State) captionText(rule *rules.Rule, el *html.Node) string {
	if rule.Captions.ConvertBreaks {
		return dom.TextWithBreaks(el)
	}
	return dom.Text(el)
}

// writeCaption rewrites an element's text with the mutation observer
// suspended so the engine never reacts to its own edits.
func (s *State) writeCaption(el *html.Node, text string) {
	if s.observer != nil {
		s.observer.Suspend()
		defer s.observer.Resume()
	}
	dom.SetText(el, text)
}

func (s *State) overlayLines(rule *rules.Rule, targets []*html.Node) []string {
	var lines []string
	for _, el := range targets {
		text := s.captionText(rule, el)
		if strings.TrimSpace(text) == "" {
			continue
		}
		result := s.filter.Replace(text, rule.Captions.FilterList, statsKindAudio)
		lines = append(lines, result.Filtered)
	}
	return lines
}

// applyShowPolicy toggles the display element per the rule's show policy
// and the pass's filtered flag. In synthetic mode the native display
// stays hidden and the policy drives the overlay instead.
func (s *State) applyShowPolicy(rule *rules.Rule, ruleIdx int, container *html.Node, filtered bool) {
	if rule.Captions.Synthetic {
		if !s.showPolicy(rule).ShowSubtitles(filtered) {
			s.clearOverlayLocked(ruleIdx)
		}
		return
	}
	target := container
	if sel := rule.Captions.DisplaySelector; sel != "" {
		if found := dom.Query(s.page.Doc, sel); found != nil {
			target = found
		}
	}
	if target == nil {
		return
	}
	if s.showPolicy(rule).ShowSubtitles(filtered) {
		s.showElement(target, rule)
	} else {
		s.hideElement(target, rule)
	}
}

func (s *State) hideCaptions(rule *rules.Rule, container *html.Node) {
	target := container
	if sel := rule.Captions.DisplaySelector; sel != "" {
		if found := dom.Query(s.page.Doc, sel); found != nil {
			target = found
		}
	}
	s.hideElement(target, rule)
}

func (s *State) hideElement(el *html.Node, rule *rules.Rule) {
	value := rule.Captions.DisplayHide
	if value == "" {
		value = "none"
	}
	dom.SetAttr(el, "style", "display: "+value+";")
}

func (s *State) showElement(el *html.Node, rule *rules.Rule) {
	if rule.Captions.DisplayShow == "" {
		dom.SetAttr(el, "style", "")
		return
	}
	dom.SetAttr(el, "style", "display: "+rule.Captions.DisplayShow+";")
}

package engine

import (
	"strings"

	"golang.org/x/net/html"

	"muffle/internal/dom"
	"muffle/internal/logging"
	"muffle/internal/rules"
)

// NoRule is returned by SupportedNode when no enabled rule matches.
const NoRule = -1

// SupportedNode tests an observed DOM node against the enabled rules in
// declaration order and returns the index of the first match, or NoRule.
// The first match also latches the captions-found transition.
func (s *State) SupportedNode(n *html.Node) int {
	if n == nil {
		return NoRule
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, idx := range s.sets.Enabled {
		rule := s.rules[idx]
		if rule == nil || rule.Disabled {
			continue
		}
		if !s.nodeMatchesLocked(rule, idx, n) {
			continue
		}
		s.reportCaptionsFound()
		return idx
	}
	return NoRule
}

func (s *State) nodeMatchesLocked(rule *rules.Rule, idx int, n *html.Node) bool {
	switch rule.Mode {
	case rules.ModeElement:
		return matchElement(rule.Element, n)
	case rules.ModeElementChild:
		return matchElementChild(rule.ElementChild, n)
	case rules.ModeText:
		return n.Type == html.TextNode && n.Parent != nil && dom.Matches(n.Parent, rule.Text.Parent)
	case rules.ModeWatcher:
		return s.matchWatcherNode(rule, n)
	case rules.ModeDynamic:
		return s.matchDynamicLocked(rule, idx, n)
	default:
		return false
	}
}

func matchElement(cfg *rules.ElementConfig, n *html.Node) bool {
	if cfg == nil || n.Type != html.ElementNode || !strings.EqualFold(n.Data, cfg.Tag) {
		return false
	}
	if cfg.Class != "" && !dom.HasClass(n, cfg.Class) {
		return false
	}
	if cfg.DataAttr != "" && !dom.HasAttr(n, "data-"+cfg.DataAttr) {
		return false
	}
	if cfg.ChildCount != nil && dom.ElementChildCount(n) != *cfg.ChildCount {
		return false
	}
	if cfg.Contains != "" && dom.Query(n, cfg.Contains) == nil {
		return false
	}
	return true
}

func matchElementChild(cfg *rules.ElementChildConfig, n *html.Node) bool {
	if cfg == nil || n.Type != html.ElementNode || !strings.EqualFold(n.Data, cfg.Tag) {
		return false
	}
	if cfg.Parent != "" && dom.Closest(n, cfg.Parent) != nil {
		return true
	}
	for _, parent := range cfg.Parents {
		if dom.Closest(n, parent) != nil {
			return true
		}
	}
	return false
}

func (s *State) matchWatcherNode(rule *rules.Rule, n *html.Node) bool {
	if sel := rule.Captions.SubtitleSelector; sel != "" && n.Parent != nil && dom.Matches(n.Parent, sel) {
		return true
	}
	if sel := rule.Watcher.ParentSelector; sel != "" {
		if container := dom.Query(s.page.Doc, sel); container != nil && dom.Contains(container, n) {
			return true
		}
	}
	return false
}

// matchDynamicLocked detects the rule's one-shot marker text. On a hit
// the dynamic rule is swapped for a fresh rule of its resolved mode and
// the replacement is initialized; the index sets are updated to the
// replacement's classification.
func (s *State) matchDynamicLocked(rule *rules.Rule, idx int, n *html.Node) bool {
	if rule.Dynamic == nil || !strings.Contains(dom.Text(n), rule.Dynamic.Marker) {
		return false
	}

	class := rules.ResolveDynamic(s.rules, idx, s.pageContext())
	s.logger.Info("dynamic rule resolved",
		logging.Args(logging.Int(logging.FieldRule, idx), logging.String("mode", string(s.rules[idx].Mode)))...)

	switch class {
	case rules.ClassCue:
		if !rules.Has(s.sets.Cue, idx) {
			s.sets.Cue = append(s.sets.Cue, idx)
		}
	case rules.ClassWatcher:
		if !rules.Has(s.sets.Watcher, idx) {
			s.sets.Watcher = append(s.sets.Watcher, idx)
		}
	case rules.ClassDisabled:
		return false
	}
	if s.rules[idx].Captions.Synthetic && !rules.Has(s.sets.Synthetic, idx) {
		s.sets.Synthetic = append(s.sets.Synthetic, idx)
	}
	return true
}

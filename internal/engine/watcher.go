package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"muffle/internal/dom"
	"muffle/internal/filter"
	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/rules"
)

// watcherData is the transient record of one poll pass.
type watcherData struct {
	filtered    bool
	initialCall bool
	skipped     bool
	textResults []filter.Result
}

// StartWatchers launches one polling ticker per watcher rule. Pollers
// run until StopWatchers; each touches only its own rule's fields, so
// they are safe to run alongside mutation callbacks.
func (s *State) StartWatchers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcherStop != nil {
		return
	}
	s.watcherStop = make(chan struct{})
	for _, idx := range s.sets.Watcher {
		rule := s.rules[idx]
		if rule == nil || rule.Disabled || rule.Watcher == nil {
			continue
		}
		s.watcherWG.Add(1)
		go s.watchLoop(idx, rule.Watcher.Interval, s.watcherStop)
	}
}

// StopWatchers cancels every poller and waits for them to exit. It is
// idempotent.
func (s *State) StopWatchers() {
	s.mu.Lock()
	stop := s.watcherStop
	s.watcherStop = nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	s.watcherWG.Wait()
}

func (s *State) watchLoop(ruleIdx int, interval time.Duration, stop <-chan struct{}) {
	defer s.watcherWG.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	first := true
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.WatchPass(ruleIdx, first)
			first = false
		}
	}
}

// WatchPass runs one watcher poll for the rule: it joins the current
// caption text, skips duplicate work when nothing changed, and either
// rewrites elements in place or converts the text to synthetic cues.
func (s *State) WatchPass(ruleIdx int, initialCall bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.watchPassLocked(ruleIdx, initialCall)
	return data.filtered
}

func (s *State) watchPassLocked(ruleIdx int, initialCall bool) watcherData {
	data := watcherData{initialCall: initialCall}
	rule := s.Rule(ruleIdx)
	if rule == nil || rule.Disabled || rule.Watcher == nil || s.filter == nil {
		data.skipped = true
		return data
	}

	container := s.page.Doc
	if sel := rule.Watcher.ParentSelector; sel != "" {
		container = dom.Query(s.page.Doc, sel)
	}
	if container == nil {
		data.skipped = true
		return data
	}

	targets := s.captionTargets(rule, container)
	joined := s.joinCaptionText(rule, targets)
	if !initialCall && joined == s.lastWatcherText[ruleIdx] {
		data.skipped = true
		data.filtered = s.muted
		return data
	}
	s.lastWatcherText[ruleIdx] = joined

	if strings.TrimSpace(joined) == "" {
		s.unmuteLocked(ruleIdx, false)
		s.removeWatcherCuesLocked(rule)
		return data
	}

	if rule.Watcher.ToCue {
		return s.watchToCueLocked(ruleIdx, rule, targets, data)
	}

	for _, el := range targets {
		data.filtered = s.filterWatcherElement(ruleIdx, rule, el) || data.filtered
	}
	if data.filtered {
		// Record the rewritten text so the next poll skips instead of
		// treating the engine's own edit as fresh clean captions.
		s.lastWatcherText[ruleIdx] = s.joinCaptionText(rule, targets)
	} else {
		s.unmuteLocked(ruleIdx, false)
	}
	s.applyShowPolicy(rule, ruleIdx, container, data.filtered)
	return data
}

// filterWatcherElement filters one caption element, recursing into
// nested element children so per-line spans are rewritten individually.
func (s *State) filterWatcherElement(ruleIdx int, rule *rules.Rule, el *html.Node) bool {
	if dom.ElementChildCount(el) > 0 {
		filtered := false
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				filtered = s.filterWatcherElement(ruleIdx, rule, c) || filtered
			}
		}
		if filtered {
			return true
		}
	}

	text := s.captionText(rule, el)
	if strings.TrimSpace(text) == "" {
		return false
	}
	result := s.filter.Replace(text, rule.Captions.FilterList, statsKindAudio)
	if !result.Modified {
		return false
	}
	s.muteLocked(ruleIdx)
	if rule.Watcher.DisableMutationGuard {
		dom.SetText(el, result.Filtered)
	} else {
		s.writeCaption(el, result.Filtered)
	}
	return true
}

// watchToCueLocked converts the watched text into synthetic cues pinned
// to the current playback position on the rule's dedicated track. Cue
// order is reversed to match the rendering of the sites using this
// variant.
func (s *State) watchToCueLocked(ruleIdx int, rule *rules.Rule, targets []*html.Node, data watcherData) watcherData {
	if s.video == nil {
		data.skipped = true
		return data
	}

	track := s.watcherTrackLocked(rule)
	track.Cues = track.Cues[:0]

	var lines []string
	for _, el := range targets {
		for _, line := range strings.Split(s.captionText(rule, el), "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}

	now := s.video.CurrentTime()
	duration := s.video.Duration()
	for i := len(lines) - 1; i >= 0; i-- {
		result := s.filter.Replace(lines[i], rule.Captions.FilterList, statsKindAudio)
		data.textResults = append(data.textResults, result)
		if result.Modified {
			data.filtered = true
		}
		track.Cues = append(track.Cues, &media.Cue{
			Start:        now,
			End:          duration,
			Text:         result.Filtered,
			Classified:   true,
			Filtered:     result.Modified,
			OriginalText: result.Original,
			FilteredText: result.Filtered,
		})
	}

	if data.filtered {
		s.muteLocked(ruleIdx)
	} else {
		s.unmuteLocked(ruleIdx, false)
	}
	return data
}

// watcherTrackLocked finds or installs the dedicated synthetic track.
func (s *State) watcherTrackLocked(rule *rules.Rule) *media.TextTrack {
	label := rule.Watcher.TrackLabel
	for _, track := range s.video.TextTracks() {
		if track.Label == label {
			return track
		}
	}
	track := &media.TextTrack{
		ID:    uuid.NewString(),
		Label: label,
		Kind:  "captions",
		Mode:  media.TrackModeShowing,
	}
	s.video.AddTextTrack(track)
	s.logger.Debug("installed watcher track", logging.Args(logging.String("label", label))...)
	return track
}

func (s *State) removeWatcherCuesLocked(rule *rules.Rule) {
	if !rule.Watcher.ToCue || s.video == nil {
		return
	}
	for _, track := range s.video.TextTracks() {
		if track.Label == rule.Watcher.TrackLabel {
			track.Cues = track.Cues[:0]
		}
	}
}

func (s *State) joinCaptionText(rule *rules.Rule, targets []*html.Node) string {
	var parts []string
	for _, el := range targets {
		parts = append(parts, s.captionText(rule, el))
	}
	return strings.Join(parts, "\n")
}

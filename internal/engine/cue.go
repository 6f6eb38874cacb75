package engine

import (
	"muffle/internal/logging"
	"muffle/internal/media"
	"muffle/internal/rules"
)

// Track score weights. A perfect score means every applicable criterion
// matched and the search can stop early.
const (
	scoreOverride = 1000
	scoreLabel    = 100
	scoreLanguage = 10
	scoreKind     = 1
)

// GetVideoTextTrack picks the track a cue rule should bind to. Tracks
// without cues are ignored; when the rule requires it, so are tracks not
// currently showing. Matches are weighted (override key, label,
// language, kind) and the best-scoring track wins, with the first track
// carrying any cues as the fallback when nothing scores.
func GetVideoTextTrack(tracks []*media.TextTrack, rule *rules.Rule, overrideKey string) *media.TextTrack {
	var cue rules.CueConfig
	if rule != nil && rule.Cue != nil {
		cue = *rule.Cue
	}

	perfect := scoreKind
	if overrideKey != "" {
		perfect += scoreOverride
	}
	if cue.Label != "" {
		perfect += scoreLabel
	}
	if cue.Language != "" {
		perfect += scoreLanguage
	}

	var best *media.TextTrack
	bestScore := 0
	var fallback *media.TextTrack
	for _, track := range tracks {
		if !track.HasCues() {
			continue
		}
		if cue.RequireShowing && track.Mode != media.TrackModeShowing {
			continue
		}
		if fallback == nil {
			fallback = track
		}

		score := 0
		if overrideKey != "" && track.Label == overrideKey {
			score += scoreOverride
		}
		if cue.Label != "" && track.Label == cue.Label {
			score += scoreLabel
		}
		if cue.Language != "" && track.Language == cue.Language {
			score += scoreLanguage
		}
		if kindMatches(cue.Kind, track.Kind) {
			score += scoreKind
		}
		if score == perfect {
			return track
		}
		if score > bestScore {
			bestScore = score
			best = track
		}
	}
	if best != nil {
		return best
	}
	return fallback
}

// kindMatches applies the default of accepting captions or subtitles
// when the rule names no kind.
func kindMatches(want, got string) bool {
	if want == "" {
		return got == "captions" || got == "subtitles"
	}
	return want == got
}

// ProcessCues classifies every not-yet-classified cue on the track:
// the optional time offset is applied, the text is filtered, and the
// original/filtered text plus the filtered flag are recorded. A cue is
// classified exactly once per instance.
func (s *State) ProcessCues(track *media.TextTrack, ruleIdx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processCuesLocked(track, ruleIdx)
}

func (s *State) processCuesLocked(track *media.TextTrack, ruleIdx int) {
	rule := s.Rule(ruleIdx)
	if rule == nil || track == nil || s.filter == nil {
		return
	}
	offset := 0.0
	if rule.Cue != nil {
		offset = rule.Cue.TimeOffset
	}
	for _, cue := range track.Cues {
		if cue == nil || cue.Classified {
			continue
		}
		if offset != 0 {
			cue.Start += offset
			cue.End += offset
		}
		result := s.filter.Replace(cue.Text, rule.Captions.FilterList, statsKindAudio)
		cue.OriginalText = result.Original
		cue.FilteredText = result.Filtered
		cue.Filtered = result.Modified
		cue.Classified = true
	}
}

// OnCueChange reacts to a native cue activation event: it classifies
// lazily, mutes or unmutes per the filtered state of the active cues,
// applies the show policy, and rebuilds the synthetic overlay when
// configured. With no active cues the engine unmutes and drops the
// overlay.
func (s *State) OnCueChange(ruleIdx int, track *media.TextTrack) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule := s.Rule(ruleIdx)
	if rule == nil || rule.Cue == nil || track == nil || s.video == nil {
		return
	}

	s.processCuesLocked(track, ruleIdx)

	active := track.ActiveAt(s.video.CurrentTime())
	if len(active) == 0 {
		s.unmuteLocked(ruleIdx, false)
		s.clearOverlayLocked(ruleIdx)
		return
	}

	filtered := false
	for _, cue := range active {
		if cue.Filtered {
			filtered = true
			break
		}
	}

	if filtered {
		s.muteLocked(ruleIdx)
	} else {
		s.unmuteLocked(ruleIdx, false)
	}

	show := s.showPolicy(rule).ShowSubtitles(filtered)
	if show {
		if !rule.Cue.HideCues {
			track.Mode = media.TrackModeShowing
		}
	} else {
		if rule.Cue.HideCues {
			for _, cue := range active {
				blankCue(cue)
			}
		} else {
			track.Mode = media.TrackModeHidden
		}
	}

	if rule.Captions.Synthetic {
		lines := make([]string, 0, len(active))
		for i := len(active) - 1; i >= 0; i-- {
			lines = append(lines, active[i].FilteredText)
		}
		s.renderOverlayLocked(ruleIdx, lines)
	}

	s.logger.Debug("cue change handled",
		logging.Args(logging.Int(logging.FieldRule, ruleIdx), logging.Bool("filtered", filtered), logging.Int("active", len(active)))...)
}

// blankCue erases a cue in place rather than hiding the whole track.
func blankCue(cue *media.Cue) {
	cue.Text = ""
	cue.Position = 100
	cue.Size = 0
}

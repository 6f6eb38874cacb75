package rules

import "time"

// DefaultWatcherInterval is used when a watcher rule declares none.
const DefaultWatcherInterval = 20 * time.Millisecond

// DefaultExternalTrackLabel names tracks installed from fetched subtitles.
const DefaultExternalTrackLabel = "muffle"

// PageContext describes the page a rule table is initialized against.
type PageContext struct {
	Host   string
	Iframe bool
}

// Sets indexes rules by their position in the active list.
type Sets struct {
	Enabled   []int
	Cue       []int
	Watcher   []int
	Synthetic []int
}

// Has reports membership of idx in set.
func Has(set []int, idx int) bool {
	for _, v := range set {
		if v == idx {
			return true
		}
	}
	return false
}

// InitForPage validates and normalizes every rule for the page, appends
// the synthetic YouTube auto-caption rule when applicable, and returns
// the extended list plus its index sets.
func InitForPage(list []*Rule, page PageContext) ([]*Rule, Sets) {
	if page.Host == "www.youtube.com" {
		list = append(list, ytAutoRule())
	}

	var sets Sets
	for i, rule := range list {
		switch InitRule(rule, page) {
		case ClassDisabled:
		case ClassCue:
			sets.Enabled = append(sets.Enabled, i)
			sets.Cue = append(sets.Cue, i)
		case ClassWatcher:
			sets.Enabled = append(sets.Enabled, i)
			sets.Watcher = append(sets.Watcher, i)
		default:
			sets.Enabled = append(sets.Enabled, i)
		}
		if !rule.Disabled && rule.Captions.Synthetic {
			sets.Synthetic = append(sets.Synthetic, i)
		}
	}
	return list, sets
}

// Class reports how an initialized rule participates in dispatch.
type Class int

const (
	ClassDisabled Class = iota
	ClassStandard
	ClassCue
	ClassWatcher
)

// InitRule runs one rule through the raw -> validated -> disabled|enabled
// transition, filling derived defaults in place.
func InitRule(r *Rule, page PageContext) Class {
	if r == nil {
		return ClassDisabled
	}
	if r.Mode == "" {
		r.Disabled = true
		return ClassDisabled
	}
	if r.Iframe != nil && *r.Iframe != page.Iframe {
		r.Disabled = true
		return ClassDisabled
	}

	switch r.Mode {
	case ModeElement:
		if r.Element == nil || r.Element.Tag == "" {
			r.Disabled = true
			return ClassDisabled
		}
		return ClassStandard

	case ModeElementChild:
		if r.ElementChild == nil || r.ElementChild.Tag == "" {
			r.Disabled = true
			return ClassDisabled
		}
		if r.ElementChild.Parent == "" && len(r.ElementChild.Parents) == 0 {
			r.Disabled = true
			return ClassDisabled
		}
		if r.Captions.Synthetic && r.Captions.DisplaySelector == "" {
			r.Disabled = true
			return ClassDisabled
		}
		return ClassStandard

	case ModeText:
		if r.Text == nil || r.Text.Parent == "" {
			r.Disabled = true
			return ClassDisabled
		}
		return ClassStandard

	case ModeWatcher:
		if r.Watcher == nil {
			r.Watcher = &WatcherConfig{}
		}
		if r.Watcher.Interval <= 0 {
			r.Watcher.Interval = DefaultWatcherInterval
		}
		if r.Watcher.ToCue && r.Watcher.TrackLabel == "" {
			r.Watcher.TrackLabel = DefaultExternalTrackLabel
		}
		return ClassWatcher

	case ModeCue:
		if r.Cue == nil {
			r.Cue = &CueConfig{}
		}
		if r.Captions.Synthetic {
			r.Cue.HideCues = true
		}
		if ext := r.Cue.External; ext != nil {
			if ext.FormatKey == "" {
				ext.FormatKey = "format"
			}
			if ext.URLKey == "" {
				ext.URLKey = "url"
			}
			if ext.LangKey == "" {
				ext.LangKey = "language"
			}
			if ext.TrackLabel == "" {
				ext.TrackLabel = DefaultExternalTrackLabel
			}
		}
		return ClassCue

	case ModeDynamic:
		// A dynamic rule only participates when its resolved target is
		// configured; an aimless dynamic rule can never activate.
		if r.Dynamic == nil || r.Dynamic.Marker == "" || r.Dynamic.Target == nil {
			r.Disabled = true
			return ClassDisabled
		}
		return ClassStandard

	case ModeYTAuto:
		// Driven by a dedicated mutation callback, never by the normal
		// dispatch loop.
		r.Disabled = true
		return ClassDisabled

	default:
		r.Disabled = true
		return ClassDisabled
	}
}

// ResolveDynamic swaps a triggered dynamic rule for a fresh copy of its
// target and initializes the replacement. It reports whether the
// replacement ended up enabled and how it classifies.
func ResolveDynamic(list []*Rule, idx int, page PageContext) Class {
	if idx < 0 || idx >= len(list) {
		return ClassDisabled
	}
	rule := list[idx]
	if rule == nil || rule.Mode != ModeDynamic || rule.Dynamic == nil || rule.Dynamic.Target == nil {
		return ClassDisabled
	}
	replacement := rule.Dynamic.Target.Clone()
	if replacement.MuteMethod == "" {
		replacement.MuteMethod = rule.MuteMethod
	}
	list[idx] = replacement
	return InitRule(replacement, page)
}

func ytAutoRule() *Rule {
	return &Rule{
		Mode:       ModeYTAuto,
		MuteMethod: MuteVideo,
		Captions: CaptionOptions{
			SubtitleSelector: "span.ytp-caption-segment",
		},
		Note: "auto-generated caption windows",
	}
}

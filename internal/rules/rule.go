package rules

import "time"

// Mode selects the detection strategy a rule uses. The set is closed;
// each mode reads only its own config group on the Rule.
type Mode string

const (
	ModeElement      Mode = "element"
	ModeElementChild Mode = "elementChild"
	ModeText         Mode = "text"
	ModeWatcher      Mode = "watcher"
	ModeCue          Mode = "cue"
	ModeDynamic      Mode = "dynamic"
	ModeYTAuto       Mode = "ytauto"
)

// MuteMethod selects the effector used when a rule mutes.
type MuteMethod string

const (
	// MuteTab asks the host to mute the whole tab via a cross-context message.
	MuteTab MuteMethod = "tab"
	// MuteVideo sets the video element's native muted flag.
	MuteVideo MuteMethod = "video"
	// MuteVolume zeroes the video volume, remembering the previous value.
	MuteVolume MuteMethod = "volume"
)

// ShowPolicy decides caption visibility relative to the filtered state.
type ShowPolicy string

const (
	ShowAll            ShowPolicy = "all"
	ShowFilteredOnly   ShowPolicy = "filteredOnly"
	ShowUnfilteredOnly ShowPolicy = "unfilteredOnly"
	ShowNone           ShowPolicy = "none"
)

// ShowSubtitles reports whether a caption with the given filtered state
// should be visible under this policy.
func (p ShowPolicy) ShowSubtitles(filtered bool) bool {
	switch p {
	case ShowFilteredOnly:
		return filtered
	case ShowUnfilteredOnly:
		return !filtered
	case ShowNone:
		return false
	default:
		return true
	}
}

// BuildTarget identifies the packaging flavor rules can be restricted to.
type BuildTarget string

const (
	TargetExtension  BuildTarget = "extension"
	TargetUserscript BuildTarget = "userscript"
)

// CaptionOptions are shared by the modes that read and rewrite caption
// elements (element, elementChild, text, watcher).
type CaptionOptions struct {
	// SubtitleSelector narrows which sub-elements inside a matched
	// container carry caption text; empty means the container itself.
	SubtitleSelector string `json:"subtitleSelector,omitempty"`
	// ConvertBreaks turns <br> elements into newlines before filtering.
	ConvertBreaks bool `json:"convertBreaks,omitempty"`
	// DisplaySelector locates the element whose visibility the show
	// policy toggles; empty means the matched container.
	DisplaySelector string `json:"displaySelector,omitempty"`
	DisplayHide     string `json:"displayHide,omitempty"`
	DisplayShow     string `json:"displayShow,omitempty"`
	// Synthetic renders the overlay caption instead of editing native
	// caption elements in place.
	Synthetic bool `json:"synthetic,omitempty"`
	// FilterList selects the word list passed to the text filter.
	FilterList int `json:"filterList,omitempty"`
}

// ElementConfig matches a caption container element directly.
type ElementConfig struct {
	Tag        string `json:"tag"`
	Class      string `json:"class,omitempty"`
	DataAttr   string `json:"dataAttr,omitempty"`
	ChildCount *int   `json:"childCount,omitempty"`
	Contains   string `json:"contains,omitempty"`
}

// ElementChildConfig matches an element inside a known caption ancestor.
type ElementChildConfig struct {
	Tag     string   `json:"tag"`
	Parent  string   `json:"parent,omitempty"`
	Parents []string `json:"parents,omitempty"`
}

// TextConfig matches bare text nodes under a fixed parent.
type TextConfig struct {
	Parent string `json:"parent"`
}

// WatcherConfig polls the page on a fixed interval instead of reacting
// to mutation events.
type WatcherConfig struct {
	Interval time.Duration `json:"interval,omitempty"`
	// ParentSelector scopes matching to nodes inside this container.
	ParentSelector string `json:"parentSelector,omitempty"`
	// VideoSelector locates the video the watcher mutes.
	VideoSelector string `json:"videoSelector,omitempty"`
	// DisableMutationGuard leaves the mutation observer running during
	// the watcher's own writes. The guard is on by default.
	DisableMutationGuard bool `json:"disableMutationGuard,omitempty"`
	// ToCue converts watched text into synthetic cues on a dedicated
	// track instead of editing elements.
	ToCue      bool   `json:"toCue,omitempty"`
	TrackLabel string `json:"trackLabel,omitempty"`
}

// ExternalConfig describes where externally hosted subtitles for a cue
// rule are advertised and how to interpret the descriptor entries.
type ExternalConfig struct {
	// Var names the page or background global holding the descriptor list.
	Var       string `json:"var"`
	FormatKey string `json:"formatKey,omitempty"`
	URLKey    string `json:"urlKey,omitempty"`
	LangKey   string `json:"langKey,omitempty"`
	// Language is the wanted subtitle language (BCP 47).
	Language   string `json:"language,omitempty"`
	TrackLabel string `json:"trackLabel,omitempty"`
}

// CueConfig matches cues on a native text track.
type CueConfig struct {
	Language       string  `json:"language,omitempty"`
	Label          string  `json:"label,omitempty"`
	Kind           string  `json:"kind,omitempty"`
	RequireShowing bool    `json:"requireShowing,omitempty"`
	HideCues       bool    `json:"hideCues,omitempty"`
	TimeOffset     float64 `json:"timeOffset,omitempty"`

	External *ExternalConfig `json:"external,omitempty"`
}

// DynamicConfig waits for a one-shot marker text and then swaps the rule
// for its resolved target.
type DynamicConfig struct {
	Marker string `json:"marker"`
	Target *Rule  `json:"target,omitempty"`
}

// Rule is one declarative matching strategy for one site. Exactly one
// config group, the one named by Mode, is consulted.
type Rule struct {
	Mode        Mode           `json:"mode"`
	MuteMethod  MuteMethod     `json:"muteMethod,omitempty"`
	Show        ShowPolicy     `json:"show,omitempty"`
	UnmuteDelay *time.Duration `json:"unmuteDelay,omitempty"`
	// Iframe restricts the rule to iframe (true) or top-level (false)
	// pages; nil applies everywhere.
	Iframe      *bool       `json:"iframe,omitempty"`
	BuildTarget BuildTarget `json:"buildTarget,omitempty"`
	Note        string      `json:"note,omitempty"`

	Captions CaptionOptions `json:"captions,omitempty"`

	Element      *ElementConfig      `json:"element,omitempty"`
	ElementChild *ElementChildConfig `json:"elementChild,omitempty"`
	Text         *TextConfig         `json:"text,omitempty"`
	Watcher      *WatcherConfig      `json:"watcher,omitempty"`
	Cue          *CueConfig          `json:"cue,omitempty"`
	Dynamic      *DynamicConfig      `json:"dynamic,omitempty"`

	// Disabled is set during initialization and never cleared.
	Disabled bool `json:"-"`
}

// Delay is a convenience constructor for UnmuteDelay values.
func Delay(d time.Duration) *time.Duration { return &d }

// IframeOnly and TopLevelOnly are convenience values for Rule.Iframe.
func IframeOnly() *bool   { v := true; return &v }
func TopLevelOnly() *bool { v := false; return &v }

package rules

import "time"

// builtinSites returns the shipped per-site rule tables. Order within a
// list matters: the first rule matching an observed node wins.
func builtinSites() Table {
	return Table{
		"www.youtube.com": {
			{
				Mode:       ModeElement,
				MuteMethod: MuteVideo,
				Element:    &ElementConfig{Tag: "div", Class: "caption-window"},
				Captions: CaptionOptions{
					SubtitleSelector: "span.ytp-caption-segment",
				},
			},
		},
		"www.netflix.com": {
			{
				Mode:        ModeElementChild,
				MuteMethod:  MuteVideo,
				UnmuteDelay: Delay(400 * time.Millisecond),
				ElementChild: &ElementChildConfig{
					Tag:    "span",
					Parent: "div.player-timedtext",
				},
				Captions: CaptionOptions{
					DisplaySelector: "div.player-timedtext",
					ConvertBreaks:   true,
				},
			},
		},
		"www.hulu.com": {
			{
				Mode:       ModeElement,
				MuteMethod: MuteVolume,
				Element:    &ElementConfig{Tag: "div", Class: "CaptionBox", Contains: "p"},
				Captions: CaptionOptions{
					SubtitleSelector: "p",
				},
			},
		},
		"www.amazon.com": {
			{
				Mode:       ModeWatcher,
				MuteMethod: MuteVideo,
				Watcher: &WatcherConfig{
					ParentSelector: "div.webPlayerContainer",
					VideoSelector:  "div.webPlayerElement video",
				},
				Captions: CaptionOptions{
					SubtitleSelector: "span.timedTextBackground",
				},
			},
		},
		"www.disneyplus.com": {
			{
				Mode:       ModeCue,
				MuteMethod: MuteVideo,
				Cue: &CueConfig{
					Kind:           "subtitles",
					RequireShowing: true,
					HideCues:       true,
				},
			},
		},
		"www.crunchyroll.com": {
			{
				Mode:       ModeCue,
				MuteMethod: MuteVideo,
				Cue: &CueConfig{
					External: &ExternalConfig{
						Var:      "subtitleDescriptors",
						Language: "en-US",
					},
				},
				Captions: CaptionOptions{Synthetic: true},
			},
		},
		"www.funimation.com": {
			{
				Mode:       ModeCue,
				MuteMethod: MuteVolume,
				Cue: &CueConfig{
					Label: "English",
					External: &ExternalConfig{
						Var:       "playerSubtitles",
						FormatKey: "type",
						URLKey:    "src",
						LangKey:   "lang",
						Language:  "en",
					},
				},
			},
		},
		"www.vudu.com": {
			{
				Mode:       ModeText,
				MuteMethod: MuteVideo,
				Text:       &TextConfig{Parent: "span.subtitles"},
			},
		},
		"app.plex.tv": {
			{
				Mode:       ModeElementChild,
				MuteMethod: MuteVideo,
				ElementChild: &ElementChildConfig{
					Tag: "span",
					Parents: []string{
						"div[data-dialogue-id]",
						"div.libjass-subs",
					},
				},
			},
		},
		"www.peacocktv.com": {
			{
				Mode: ModeDynamic,
				Dynamic: &DynamicConfig{
					Marker: "video-player-skip-intro",
					Target: &Rule{
						Mode:       ModeElementChild,
						MuteMethod: MuteVideo,
						ElementChild: &ElementChildConfig{
							Tag:    "span",
							Parent: "div.video-player__subtitles",
						},
					},
				},
			},
		},
		"tubitv.com": {
			{
				Mode:       ModeWatcher,
				MuteMethod: MuteVideo,
				Watcher: &WatcherConfig{
					ParentSelector: "div#captionsComponent",
					VideoSelector:  "video#video-player",
					ToCue:          true,
					TrackLabel:     "Filtered Captions",
				},
			},
		},
	}
}

// targetSites returns rule tables that only apply to one packaging
// flavor. Userscript builds cannot reach cross-origin subtitle payloads,
// so some sites get an element fallback there.
func targetSites() map[BuildTarget]Table {
	return map[BuildTarget]Table{
		TargetUserscript: {
			"www.crunchyroll.com": {
				{
					Mode:        ModeElement,
					MuteMethod:  MuteVideo,
					BuildTarget: TargetUserscript,
					Element:     &ElementConfig{Tag: "div", Class: "libassjs-canvas-parent"},
				},
			},
		},
	}
}

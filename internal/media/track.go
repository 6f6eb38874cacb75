package media

// TrackModeShowing and TrackModeHidden mirror the native text-track modes
// the engine toggles between.
const (
	TrackModeShowing  = "showing"
	TrackModeHidden   = "hidden"
	TrackModeDisabled = "disabled"
)

// Cue is one timed span on a text track. The classification fields are
// written exactly once per cue instance and never reset unless the cue
// text itself changes.
type Cue struct {
	Start float64
	End   float64
	Text  string

	Align    string
	Line     string
	Position int
	Size     int

	Classified   bool
	Filtered     bool
	OriginalText string
	FilteredText string
}

// TextTrack is a caption track bound to a video.
type TextTrack struct {
	ID       string
	Label    string
	Language string
	Kind     string
	Mode     string
	Cues     []*Cue
}

// ActiveAt returns the cues covering the given playback time.
func (t *TextTrack) ActiveAt(seconds float64) []*Cue {
	var active []*Cue
	for _, cue := range t.Cues {
		if cue.Start <= seconds && seconds < cue.End {
			active = append(active, cue)
		}
	}
	return active
}

// HasCues reports whether the track carries any cues.
func (t *TextTrack) HasCues() bool {
	return t != nil && len(t.Cues) > 0
}

package subtitles

// Cue is one timed text span produced by a parser.
type Cue struct {
	Start float64
	End   float64
	Text  string

	// WebVTT display settings, empty or zero when absent.
	Align    string
	Line     string
	Position string
}

package subtitles

import (
	"fmt"
	"strings"
)

// Parse dispatches payload text to the parser for the declared format.
func Parse(format, data string) ([]Cue, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "srt":
		return ParseSRT(data)
	case "ass", "ssa":
		return ParseSSA(data)
	case "vtt", "webvtt":
		return ParseVTT(data)
	default:
		return nil, fmt.Errorf("unrecognized subtitle format %q", format)
	}
}

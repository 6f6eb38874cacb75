package subtitles

import (
	"fmt"
	"strings"
)

// ParseSRT converts SRT text into cues. Blocks are delimited by blank
// lines; within a block the "start --> end" line plus the following
// joined lines form one cue. Blocks without a timing line are skipped.
func ParseSRT(data string) ([]Cue, error) {
	content := strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")

	var cues []Cue
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 {
			continue
		}
		start, end, _, err := parseTimingLine(lines[timingIdx])
		if err != nil {
			return nil, fmt.Errorf("srt: %w", err)
		}
		text := strings.TrimSpace(strings.Join(lines[timingIdx+1:], "\n"))
		cues = append(cues, Cue{Start: start, End: end, Text: text})
	}
	return cues, nil
}

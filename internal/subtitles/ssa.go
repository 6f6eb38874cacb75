package subtitles

import (
	"fmt"
	"regexp"
	"strings"
)

var ssaStyleTags = regexp.MustCompile(`\{\\[^}]*\}`)

// ParseSSA converts SSA/ASS text into cues. Only the [Events] section is
// read: the Format: line supplies the Start/End/Text column positions and
// each Dialogue: line yields one cue per \N-separated text line. The
// per-dialogue line order is reversed to match how the sites this engine
// targets render stacked captions; this is not general SSA semantics.
func ParseSSA(data string) ([]Cue, error) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	inEvents := false
	startIdx, endIdx, textIdx, columns := -1, -1, -1, 0
	var cues []Cue
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "["):
			inEvents = strings.EqualFold(line, "[Events]")
		case inEvents && strings.HasPrefix(line, "Format:"):
			fields := strings.Split(strings.TrimPrefix(line, "Format:"), ",")
			columns = len(fields)
			for i, field := range fields {
				switch strings.TrimSpace(field) {
				case "Start":
					startIdx = i
				case "End":
					endIdx = i
				case "Text":
					textIdx = i
				}
			}
		case inEvents && strings.HasPrefix(line, "Dialogue:"):
			if startIdx < 0 || endIdx < 0 || textIdx < 0 {
				return nil, fmt.Errorf("ssa: dialogue before format line")
			}
			fields := strings.Split(strings.TrimPrefix(line, "Dialogue:"), ",")
			if len(fields) < columns {
				continue
			}
			// The text column may itself contain commas; rejoin the tail.
			text := strings.Join(fields[textIdx:], ",")
			start, err := ParseTimestamp(fields[startIdx])
			if err != nil {
				return nil, fmt.Errorf("ssa: %w", err)
			}
			end, err := ParseTimestamp(fields[endIdx])
			if err != nil {
				return nil, fmt.Errorf("ssa: %w", err)
			}
			text = ssaStyleTags.ReplaceAllString(text, "")
			parts := strings.Split(text, `\N`)
			for i := len(parts) - 1; i >= 0; i-- {
				part := strings.TrimSpace(parts[i])
				if part == "" {
					continue
				}
				cues = append(cues, Cue{Start: start, End: end, Text: part})
			}
		}
	}
	return cues, nil
}

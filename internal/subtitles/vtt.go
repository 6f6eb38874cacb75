package subtitles

import (
	"fmt"
	"regexp"
	"strings"
)

// Structured cue labels of the form "<group>-<index>" mark cues that a
// site renders concurrently.
var vttGroupLabel = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseVTT converts WebVTT text into cues. Each "start --> end [settings]"
// line consumes the following text lines; settings are parsed as key:value
// pairs (align, line, position). Runs of cues whose labels share a numeric
// concurrency-group prefix are time-aligned to a shared end and inserted
// in reverse order; the sites this engine targets render such groups
// stacked bottom-up, so this is compatibility behavior, not VTT semantics.
func ParseVTT(data string) ([]Cue, error) {
	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")

	var cues []Cue
	groups := make([]int, 0)
	label := ""
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			// Remember a potential structured label for the next timing line.
			label = line
			continue
		}
		start, end, settings, err := parseTimingLine(line)
		if err != nil {
			return nil, fmt.Errorf("vtt: %w", err)
		}
		cue := Cue{Start: start, End: end}
		applyCueSettings(&cue, settings)

		var text []string
		for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			i++
			text = append(text, strings.TrimSpace(lines[i]))
		}
		cue.Text = strings.Join(text, "\n")

		group := 0
		if m := vttGroupLabel.FindStringSubmatch(label); m != nil {
			fmt.Sscanf(m[1], "%d", &group)
		}
		label = ""
		cues = append(cues, cue)
		groups = append(groups, group)
	}

	return alignConcurrencyGroups(cues, groups), nil
}

func applyCueSettings(cue *Cue, settings string) {
	for _, token := range strings.Fields(settings) {
		key, value, ok := strings.Cut(token, ":")
		if !ok {
			continue
		}
		switch key {
		case "align":
			cue.Align = value
		case "line":
			cue.Line = value
		case "position":
			cue.Position = value
		}
	}
}

// alignConcurrencyGroups rewrites runs of cues sharing a non-zero group:
// every cue in the run receives the run's final end time and the run is
// reversed in place.
func alignConcurrencyGroups(cues []Cue, groups []int) []Cue {
	out := make([]Cue, 0, len(cues))
	for i := 0; i < len(cues); {
		if groups[i] == 0 {
			out = append(out, cues[i])
			i++
			continue
		}
		j := i
		for j < len(cues) && groups[j] == groups[i] {
			j++
		}
		sharedEnd := cues[j-1].End
		for k := j - 1; k >= i; k-- {
			cue := cues[k]
			cue.End = sharedEnd
			out = append(out, cue)
		}
		i = j
	}
	return out
}

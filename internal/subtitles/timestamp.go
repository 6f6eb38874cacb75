package subtitles

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts a timing token into seconds. It accepts bare
// numeric seconds ("12.5") and clock strings ("0:00:12.500", "00:12,500")
// with comma or period millisecond separators. Conversion is exact to the
// millisecond.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	if !strings.Contains(value, ":") {
		seconds, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		return seconds, nil
	}

	// Normalize comma (SRT style) to period before splitting milliseconds.
	normalized := strings.ReplaceAll(value, ",", ".")
	clock := normalized
	millis := 0
	if idx := strings.LastIndexByte(normalized, '.'); idx >= 0 {
		clock = normalized[:idx]
		fraction := normalized[idx+1:]
		if fraction == "" {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		// Pad or truncate to millisecond precision.
		for len(fraction) < 3 {
			fraction += "0"
		}
		parsed, err := strconv.Atoi(fraction[:3])
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		millis = parsed
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	minutes, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	seconds, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// parseTimingLine splits "start --> end [settings]" and returns both
// endpoints plus any trailing settings text.
func parseTimingLine(line string) (start, end float64, settings string, err error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, "", fmt.Errorf("invalid timing line %q", line)
	}
	start, err = ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, "", err
	}
	rest := strings.TrimSpace(parts[1])
	endToken := rest
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		endToken = rest[:idx]
		settings = strings.TrimSpace(rest[idx+1:])
	}
	end, err = ParseTimestamp(endToken)
	if err != nil {
		return 0, 0, "", err
	}
	return start, end, settings, nil
}

package subtitles

import "testing"

func TestParseSRTSingleCue(t *testing.T) {
	cues, err := ParseSRT("1\n00:00:01,000 --> 00:00:02,000\nHello\n\n")
	if err != nil {
		t.Fatalf("parse srt: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 1.0 || cues[0].End != 2.0 {
		t.Fatalf("expected 1.0-2.0, got %v-%v", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "Hello" {
		t.Fatalf("expected text Hello, got %q", cues[0].Text)
	}
}

func TestParseSRTMultilineText(t *testing.T) {
	raw := `1
00:00:01,500 --> 00:00:03,250
First line
Second line

2
00:01:00,000 --> 00:01:02,000
Later
`
	cues, err := ParseSRT(raw)
	if err != nil {
		t.Fatalf("parse srt: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Text != "First line\nSecond line" {
		t.Fatalf("expected joined lines, got %q", cues[0].Text)
	}
	if cues[0].Start != 1.5 || cues[0].End != 3.25 {
		t.Fatalf("expected 1.5-3.25, got %v-%v", cues[0].Start, cues[0].End)
	}
	if cues[1].Start != 60.0 {
		t.Fatalf("expected 60.0, got %v", cues[1].Start)
	}
}

func TestParseSRTSkipsBlocksWithoutTiming(t *testing.T) {
	cues, err := ParseSRT("NOTE something\n\n1\n00:00:01,000 --> 00:00:02,000\nHi\n")
	if err != nil {
		t.Fatalf("parse srt: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
}

func TestParseSRTMalformedTimingFails(t *testing.T) {
	if _, err := ParseSRT("1\nbogus --> 00:00:02,000\nHi\n"); err == nil {
		t.Fatal("expected error for malformed timing")
	}
}

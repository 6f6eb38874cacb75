package subtitles

import "testing"

func TestParseVTTBasic(t *testing.T) {
	raw := `WEBVTT

00:00:01.000 --> 00:00:02.000
Hello

00:00:03.000 --> 00:00:04.000 align:start position:10%
Styled
`
	cues, err := ParseVTT(raw)
	if err != nil {
		t.Fatalf("parse vtt: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Text != "Hello" || cues[0].Start != 1.0 || cues[0].End != 2.0 {
		t.Fatalf("unexpected first cue: %+v", cues[0])
	}
	if cues[1].Align != "start" {
		t.Fatalf("expected align start, got %q", cues[1].Align)
	}
	if cues[1].Position != "10%" {
		t.Fatalf("expected position 10%%, got %q", cues[1].Position)
	}
}

func TestParseVTTShortClockForm(t *testing.T) {
	cues, err := ParseVTT("00:05.250 --> 00:06.000\nHi\n")
	if err != nil {
		t.Fatalf("parse vtt: %v", err)
	}
	if len(cues) != 1 || cues[0].Start != 5.25 {
		t.Fatalf("expected start 5.25, got %+v", cues)
	}
}

func TestParseVTTConcurrencyGroupReversal(t *testing.T) {
	raw := `WEBVTT

1-1
00:00:01.000 --> 00:00:02.000
First

1-2
00:00:01.000 --> 00:00:03.000
Second

00:00:05.000 --> 00:00:06.000
Solo
`
	cues, err := ParseVTT(raw)
	if err != nil {
		t.Fatalf("parse vtt: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	// Grouped cues come back reversed with a shared end time.
	if cues[0].Text != "Second" || cues[1].Text != "First" {
		t.Fatalf("expected reversed group order, got %q then %q", cues[0].Text, cues[1].Text)
	}
	if cues[0].End != 3.0 || cues[1].End != 3.0 {
		t.Fatalf("expected shared end 3.0, got %v and %v", cues[0].End, cues[1].End)
	}
	if cues[2].Text != "Solo" {
		t.Fatalf("expected ungrouped cue last, got %q", cues[2].Text)
	}
}

func TestParseVTTMalformedTimingFails(t *testing.T) {
	if _, err := ParseVTT("bogus --> 00:00:02.000\nHi\n"); err == nil {
		t.Fatal("expected error for malformed timing")
	}
}

func TestParseDispatch(t *testing.T) {
	if _, err := Parse("srt", "1\n00:00:01,000 --> 00:00:02,000\nHi\n"); err != nil {
		t.Fatalf("srt dispatch: %v", err)
	}
	if _, err := Parse("xyz", ""); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

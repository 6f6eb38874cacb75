package subtitles

import "testing"

const ssaSample = `[Script Info]
Title: sample

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,{\i1}Top line\NBottom line
Dialogue: 0,0:00:05.00,0:00:07.50,Default,,0,0,0,,One, two, three
`

func TestParseSSA(t *testing.T) {
	cues, err := ParseSSA(ssaSample)
	if err != nil {
		t.Fatalf("parse ssa: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	// \N-separated lines come out in reverse order.
	if cues[0].Text != "Bottom line" || cues[1].Text != "Top line" {
		t.Fatalf("expected reversed line order, got %q then %q", cues[0].Text, cues[1].Text)
	}
	if cues[0].Start != 1.0 || cues[0].End != 3.0 {
		t.Fatalf("expected 1.0-3.0, got %v-%v", cues[0].Start, cues[0].End)
	}
	// Commas inside the text column survive the split.
	if cues[2].Text != "One, two, three" {
		t.Fatalf("expected rejoined text, got %q", cues[2].Text)
	}
	if cues[2].End != 7.5 {
		t.Fatalf("expected end 7.5, got %v", cues[2].End)
	}
}

func TestParseSSAStripsStyleTags(t *testing.T) {
	cues, err := ParseSSA(ssaSample)
	if err != nil {
		t.Fatalf("parse ssa: %v", err)
	}
	for _, cue := range cues {
		if len(cue.Text) > 0 && cue.Text[0] == '{' {
			t.Fatalf("expected style tags stripped, got %q", cue.Text)
		}
	}
}

func TestParseSSAIgnoresOtherSections(t *testing.T) {
	raw := "[V4+ Styles]\nFormat: Name, Fontname\nStyle: Default,Arial\n"
	cues, err := ParseSSA(raw)
	if err != nil {
		t.Fatalf("parse ssa: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestParseSSAMalformedTimingFails(t *testing.T) {
	raw := "[Events]\nFormat: Start, End, Text\nDialogue: nope,0:00:02.00,Hi\n"
	if _, err := ParseSSA(raw); err == nil {
		t.Fatal("expected error for malformed timing")
	}
}

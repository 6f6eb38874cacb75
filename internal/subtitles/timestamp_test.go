package subtitles

import "testing"

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"0:00:01.000", 1.0},
		{"00:00:01,234", 1.234},
		{"01:02:03.004", 3723.004},
		{"02:03.4", 123.4},
		{"1:00:00", 3600.0},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseTimestampMalformed(t *testing.T) {
	for _, in := range []string{"", "a:b:c", "1:2:3:4", "nope", "00:00:01."} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

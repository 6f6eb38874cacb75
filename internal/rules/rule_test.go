package rules

import "testing"

func TestShowSubtitles(t *testing.T) {
	tests := []struct {
		policy     ShowPolicy
		filtered   bool
		unfiltered bool
	}{
		{ShowAll, true, true},
		{ShowFilteredOnly, true, false},
		{ShowUnfilteredOnly, false, true},
		{ShowNone, false, false},
		{"", true, true}, // unset behaves like all
	}
	for _, tc := range tests {
		if got := tc.policy.ShowSubtitles(true); got != tc.filtered {
			t.Fatalf("%q.ShowSubtitles(true) = %v, expected %v", tc.policy, got, tc.filtered)
		}
		if got := tc.policy.ShowSubtitles(false); got != tc.unfiltered {
			t.Fatalf("%q.ShowSubtitles(false) = %v, expected %v", tc.policy, got, tc.unfiltered)
		}
	}
}

package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{" robin ", 10, "robin"},
		{"robin", 0, "robin"},
		{"cardinal", 3, "car"},
		{"cardinal", 6, "car..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle tiny limit = %q, want ab", got)
	}
	got := truncateMiddle("http://birds.example/api/birds", 15)
	if len([]rune(got)) != 15 {
		t.Fatalf("truncateMiddle length = %d, want 15 (%q)", len([]rune(got)), got)
	}
	if got[:7] != "http://" || got[len(got)-5:] != "birds" {
		t.Fatalf("truncateMiddle = %q, want prefix and suffix preserved", got)
	}
}

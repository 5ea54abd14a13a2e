package statusutil

import (
	"testing"

	"broadcast-mode/internal/model"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Status
		wantErr bool
	}{
		{"live", model.StatusLive, false},
		{"LIVE", model.StatusLive, false},
		{"active", model.StatusLive, false},
		{"shipped", model.StatusLive, false},
		{" in-progress ", model.StatusInProgress, false},
		{"archived", model.StatusArchived, false},
		{"", "", true},
		{"paused", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeStatus(tc.in)
		if tc.wantErr && err == nil {
			t.Fatalf("NormalizeStatus(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("NormalizeStatus(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeStatus(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestParseFilter(t *testing.T) {
	if _, ok, err := ParseFilter("all"); ok || err != nil {
		t.Fatalf("expected all => no filter, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := ParseFilter(""); ok || err != nil {
		t.Fatalf("expected empty => no filter, got ok=%v err=%v", ok, err)
	}
	st, ok, err := ParseFilter("archived")
	if err != nil || !ok || st != model.StatusArchived {
		t.Fatalf("expected archived filter, got %q ok=%v err=%v", st, ok, err)
	}
	if _, _, err := ParseFilter("nope"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestRank(t *testing.T) {
	if !(Rank(model.StatusLive) < Rank(model.StatusInProgress) && Rank(model.StatusInProgress) < Rank(model.StatusArchived)) {
		t.Fatalf("expected live < in-progress < archived")
	}
}

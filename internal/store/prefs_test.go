package store

import (
	"errors"
	"testing"

	"broadcast-mode/internal/model"
)

// brokenKV fails every operation, like storage in a locked-down private window.
type brokenKV struct{}

var errBroken = errors.New("quota exceeded")

func (brokenKV) Get(string) (string, bool, error) { return "", false, errBroken }
func (brokenKV) Set(string, string) error         { return errBroken }
func (brokenKV) Remove(string) error              { return errBroken }

func TestPrefs_ReadSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   string
		set   bool
		want  RecordState
		wantV model.Settings
	}{
		{name: "absent", set: false, want: RecordAbsent},
		{name: "empty", raw: "", set: true, want: RecordAbsent},
		{name: "not json", raw: "{oops", set: true, want: RecordInvalid},
		{name: "array", raw: "[1,2]", set: true, want: RecordInvalid},
		{name: "missing intensity", raw: `{"vhsEnabled":true,"reducedMotion":false}`, set: true, want: RecordInvalid},
		{name: "bad intensity", raw: `{"vhsEnabled":true,"reducedMotion":false,"vhsIntensity":"max"}`, set: true, want: RecordInvalid},
		{name: "string bool", raw: `{"vhsEnabled":"yes","reducedMotion":false,"vhsIntensity":"low"}`, set: true, want: RecordInvalid},
		{name: "null bool", raw: `{"vhsEnabled":null,"reducedMotion":false,"vhsIntensity":"low"}`, set: true, want: RecordInvalid},
		{
			name:  "valid",
			raw:   `{"vhsEnabled":false,"reducedMotion":true,"vhsIntensity":"high","extra":1}`,
			set:   true,
			want:  RecordOK,
			wantV: model.Settings{VhsEnabled: false, ReducedMotion: true, VhsIntensity: model.IntensityHigh},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			local := NewMemory()
			if tc.set {
				_ = local.Set(KeySettings, tc.raw)
			}
			p := Prefs{Local: local, Session: NewMemory()}
			got, state, err := p.ReadSettings()
			if err != nil {
				t.Fatalf("ReadSettings: %v", err)
			}
			if state != tc.want {
				t.Fatalf("expected state %v, got %v", tc.want, state)
			}
			if state == RecordOK && got != tc.wantV {
				t.Fatalf("expected %#v, got %#v", tc.wantV, got)
			}
		})
	}
}

func TestPrefs_WriteSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	p := Prefs{Local: NewMemory(), Session: NewMemory()}
	want := model.Settings{VhsEnabled: true, VhsIntensity: model.IntensityLow, ReducedMotion: true}
	if err := p.WriteSettings(want); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	got, state, err := p.ReadSettings()
	if err != nil || state != RecordOK || got != want {
		t.Fatalf("expected %#v OK, got %#v state=%v err=%v", want, got, state, err)
	}
}

func TestPrefs_BootFlags(t *testing.T) {
	t.Parallel()

	p := Prefs{Local: NewMemory(), Session: NewMemory()}
	if on, err := p.BootEnabled(); err != nil || !on {
		t.Fatalf("expected boot enabled by default, got %v err=%v", on, err)
	}
	if booted, err := p.BootedThisSession(); err != nil || booted {
		t.Fatalf("expected not booted, got %v err=%v", booted, err)
	}
	if err := p.SetBootEnabled(false); err != nil {
		t.Fatalf("SetBootEnabled(false): %v", err)
	}
	if on, _ := p.BootEnabled(); on {
		t.Fatalf("expected boot disabled")
	}
	if err := p.SetBootEnabled(true); err != nil {
		t.Fatalf("SetBootEnabled(true): %v", err)
	}
	if on, _ := p.BootEnabled(); !on {
		t.Fatalf("expected boot re-enabled")
	}
	if err := p.MarkBooted(); err != nil {
		t.Fatalf("MarkBooted: %v", err)
	}
	if booted, _ := p.BootedThisSession(); !booted {
		t.Fatalf("expected booted this session")
	}
}

func TestPrefs_StorageFailuresSurfaceErrors(t *testing.T) {
	t.Parallel()

	p := Prefs{Local: brokenKV{}, Session: brokenKV{}}
	if _, state, err := p.ReadSettings(); err == nil || state != RecordAbsent {
		t.Fatalf("expected error + absent, got state=%v err=%v", state, err)
	}
	if on, err := p.BootEnabled(); err == nil || !on {
		t.Fatalf("expected error with enabled fallback, got %v err=%v", on, err)
	}
	if err := p.MarkBooted(); err == nil {
		t.Fatalf("expected write error")
	}
	if _, ok := p.TickerMessages(); ok {
		t.Fatalf("expected no ticker cache")
	}
}

func TestPrefs_TickerMessages(t *testing.T) {
	t.Parallel()

	p := Prefs{Local: NewMemory(), Session: NewMemory()}
	if _, ok := p.TickerMessages(); ok {
		t.Fatalf("expected empty cache")
	}
	msgs := []model.TickerMessage{{ID: "a", Text: "A", Tone: model.ToneInfo}}
	if err := p.SetTickerMessages(msgs); err != nil {
		t.Fatalf("SetTickerMessages: %v", err)
	}
	got, ok := p.TickerMessages()
	if !ok || len(got) != 1 || got[0] != msgs[0] {
		t.Fatalf("unexpected cache: %#v ok=%v", got, ok)
	}
	_ = p.Session.Set(KeyTickerSession, "[]")
	if _, ok := p.TickerMessages(); ok {
		t.Fatalf("expected empty list to count as missing")
	}
}

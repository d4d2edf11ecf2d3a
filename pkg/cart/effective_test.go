package cart

import (
	"reflect"
	"testing"
	"time"
)

func TestEffectivePitchLevelChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pitch     uint16
		playLevel uint16
		newLevel  uint16
		wantPitch Value
		wantLevel Value
	}{
		{
			name:      "high bit set",
			pitch:     0x8000 | 1010,
			playLevel: 0x8000 | 20000,
			wantPitch: PitchRatio(1010),
			wantLevel: LevelRatio(20000),
		},
		{
			name:      "sentinel redirects level",
			pitch:     PitchLevelSentinel,
			playLevel: 0x8000 | 20000,
			newLevel:  0x8000 | 950,
			wantPitch: Invalid{Reason: "pitch ignored, level taken from newplaylev"},
			wantLevel: LevelPercent(950),
		},
		{
			name:      "sentinel with invalid percent",
			pitch:     PitchLevelSentinel,
			playLevel: 0x8000 | 20000,
			newLevel:  950,
			wantPitch: Invalid{Reason: "pitch ignored, level taken from newplaylev"},
			wantLevel: Invalid{Reason: "newplaylev not valid"},
		},
		{
			name:      "no valid pitch, no fallback",
			pitch:     1010,
			playLevel: 20000,
			newLevel:  0x8000 | 950,
			wantPitch: Invalid{Reason: "no valid pitch data"},
			wantLevel: Invalid{Reason: "playlevel not valid"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var r Record
			r.Pitch = Flagged16From(tt.pitch)
			r.PlayLevel = Flagged16From(tt.playLevel)
			r.NewPlayLevel = Flagged16From(tt.newLevel)
			if got := r.Effective(FieldPitch); got != tt.wantPitch {
				t.Fatalf("pitch mismatch: got %#v want %#v", got, tt.wantPitch)
			}
			if got := r.Effective(FieldLevel); got != tt.wantLevel {
				t.Fatalf("level mismatch: got %#v want %#v", got, tt.wantLevel)
			}
		})
	}
}

func TestEffectiveExtendedGate(t *testing.T) {
	t.Parallel()

	var r Record
	r.Attrib2 = ^Attrib2(0)
	r.HrCanPlay[0] = 0xFF
	r.VTEOMOvr = 100
	r.DesiredLen = 3000
	r.Triggers[0] = Trigger{Source: 1, Tenths: 10}
	r.HookStartMS = 5

	gated := []Field{FieldDayparting, FieldVTEOMOverride, FieldDesiredLength, FieldTriggers, FieldHooks}
	for _, f := range gated {
		if v := r.Effective(f); !IsInvalid(v) {
			t.Fatalf("%s with gate clear: got %#v want Invalid", f, v)
		}
	}

	r.Attrib |= AttribExtended
	want := map[Field]Value{
		FieldDayparting:    r.HrCanPlay,
		FieldVTEOMOverride: Duration{100 * time.Millisecond},
		FieldDesiredLength: Duration{30 * time.Second},
		FieldTriggers:      Triggers{{Source: 1, Tenths: 10}},
		FieldHooks:         Hooks{Start: 5 * time.Millisecond},
	}
	for f, w := range want {
		if got := r.Effective(f); !reflect.DeepEqual(got, w) {
			t.Fatalf("%s: got %#v want %#v", f, got, w)
		}
	}

	r.Attrib2 = r.Attrib2.With(Attrib2Hooks, false)
	if v := r.Effective(FieldHooks); !IsInvalid(v) {
		t.Fatalf("hooks with bit clear: got %#v", v)
	}
}

func TestEffectiveHours(t *testing.T) {
	t.Parallel()

	for raw := 0; raw <= 255; raw++ {
		r := Record{StartHour: Hour(raw)}
		got := r.Effective(FieldStartHour)
		switch {
		case raw <= 128:
			if got != (AllHours{}) {
				t.Fatalf("hour byte %d: got %#v want AllHours", raw, got)
			}
		case raw <= 151:
			if got != HourOfDay(raw-128) {
				t.Fatalf("hour byte %d: got %#v want %d", raw, got, raw-128)
			}
		default:
			if !IsInvalid(got) {
				t.Fatalf("hour byte %d: got %#v want Invalid", raw, got)
			}
		}
	}
}

func TestEffectiveLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		asclen string
		attrib Attrib
		want   Value
	}{
		{" 2:30", 0, Length{Duration: 150 * time.Second}},
		{"99:59", AttribLengthToEOM, Length{Duration: 99*time.Minute + 59*time.Second, ToEOM: true}},
		{"10230", AttribLengthHMMSS, Length{Duration: time.Hour + 2*time.Minute + 30*time.Second}},
		{" 0230", AttribLengthHMMSS, Length{Duration: 2*time.Minute + 30*time.Second}},
		{"10230", 0, Invalid{Reason: "asclen not parseable"}},
		{" 2:75", 0, Invalid{Reason: "asclen not parseable"}},
		{"  :  ", 0, Invalid{Reason: "asclen not parseable"}},
	}
	for _, tt := range tests {
		r := Record{Attrib: tt.attrib}
		copy(r.AscLen[:], tt.asclen)
		if got := r.Effective(FieldLength); got != tt.want {
			t.Fatalf("asclen %q: got %#v want %#v", tt.asclen, got, tt.want)
		}
	}
}

func TestEffectiveDatesAndTimings(t *testing.T) {
	t.Parallel()

	r := Record{
		StartDate:  dateLiteral(StartDateUnset),
		KillDate:   dateLiteral("070425"),
		RecordDate: dateLiteral("13AB00"),
		Start:      Timing{Seconds: 12, Hundredths: 90},
		EOMStart:   1234,
		EOMLength:  250,
		LenValid:   0x80,
		FileLength: 4096,
		ChopSize:   Flagged32{Valid: true, Value: 150},
	}
	checks := map[Field]Value{
		FieldStartDate:  Unset{},
		FieldKillDate:   CalendarDate{time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)},
		FieldRecordDate: Invalid{Reason: "bad date 13AB00"},
		FieldCueIn:      Duration{12*time.Second + 900*time.Millisecond},
		FieldEOM:        EOM{Start: 123*time.Second + 400*time.Millisecond, Length: 2500 * time.Millisecond},
		FieldFileLength: FileLength(4096),
		FieldChopSize:   Duration{1500 * time.Millisecond},
		FieldVTStart:    Invalid{Reason: "no override, source EOM applies"},
	}
	for f, want := range checks {
		if got := r.Effective(f); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %#v want %#v", f, got, want)
		}
	}
	if v := (Record{}).Effective(FieldFileLength); !IsInvalid(v) {
		t.Fatalf("file length without lenvalid: got %#v", v)
	}
	if v := (Record{Start: Timing{Hundredths: 120}}).Effective(FieldCueIn); !IsInvalid(v) {
		t.Fatalf("out of range hundredths: got %#v", v)
	}
}

func TestFieldNames(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, f := range Fields() {
		name := f.String()
		if name == "" || name == "unknown" || seen[name] {
			t.Fatalf("bad or duplicate name %q for field %d", name, f)
		}
		seen[name] = true
	}
}

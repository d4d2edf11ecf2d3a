package api

import (
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/samcharles93/cartchunk/pkg/cart"
)

func TestDTORoundTrip(t *testing.T) {
	t.Parallel()

	r := testRecord(t, cart.SizeStandalone)
	r.Attrib = cart.AttribExtended | cart.AttribVoiceTrack
	r.Attrib2 = cart.Attrib2Triggers | cart.Attrib2Dayparting
	r.Triggers[0] = cart.Trigger{Source: 3, Tenths: 42}
	r.HrCanPlay.Set(time.Friday, 17, true)
	r.ChopSize = cart.Flagged32{Valid: true, Value: 250}
	r.VTStart = cart.Timing{Seconds: 4, Hundredths: 50}
	if err := r.SetArtist("Beyoncé"); err != nil {
		t.Fatalf("set artist: %v", err)
	}

	d := FromRecord(r)
	if d.Artist != "Beyoncé" {
		t.Fatalf("artist mismatch: got %q", d.Artist)
	}
	got, err := d.ToRecord()
	if err != nil {
		t.Fatalf("to record: %v", err)
	}
	if got != r {
		t.Fatalf("record mismatch after round trip:\n got %+v\nwant %+v", got, r)
	}
}

func TestDTONonASCIIRawFields(t *testing.T) {
	t.Parallel()

	r := testRecord(t, cart.SizeEmbedded)
	copy(r.KillDate[:], []byte{'1', '2', 0xFF, '1', '2', '5'})
	r.Padd[0] = 0xA0
	copy(r.AscLen[:], []byte{0x96, '0', ':', '1', '0'})

	body, err := json.Marshal(FromRecord(r))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d CartDTO
	if err := json.Unmarshal(body, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.KillDate != "hex:3132ff313235" {
		t.Fatalf("kill date mismatch: got %q", d.KillDate)
	}
	if d.StartDate != r.StartDate.String() {
		t.Fatalf("ascii start date should stay literal: got %q", d.StartDate)
	}
	got, err := d.ToRecord()
	if err != nil {
		t.Fatalf("to record: %v", err)
	}
	if got != r {
		t.Fatalf("record mismatch after JSON round trip:\n got %+v\nwant %+v", got, r)
	}

	d.KillDate = "hex:zz32ff313235"
	if _, err := d.ToRecord(); err == nil {
		t.Fatalf("expected error for malformed hex")
	}
}

func TestDTOOverflow(t *testing.T) {
	t.Parallel()

	d := FromRecord(testRecord(t, cart.SizeEmbedded))
	d.Pitch.Value = 40000
	_, err := d.ToRecord()
	var fe *cart.FieldError
	if !errors.As(err, &fe) || fe.Field != "pitch" {
		t.Fatalf("got %v want pitch overflow", err)
	}

	d = FromRecord(testRecord(t, cart.SizeEmbedded))
	d.KillDate = "12312025"
	if _, err := d.ToRecord(); !errors.Is(err, cart.ErrFieldOverflow) {
		t.Fatalf("got %v want ErrFieldOverflow", err)
	}

	d = FromRecord(testRecord(t, cart.SizeEmbedded))
	d.Triggers = append(d.Triggers, TriggerDTO{})
	if _, err := d.ToRecord(); !errors.Is(err, cart.ErrFieldOverflow) {
		t.Fatalf("got %v want ErrFieldOverflow for a fourth trigger", err)
	}
}

func TestRenderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   cart.Value
		kind string
		str  string
	}{
		{cart.Invalid{Reason: "nope"}, "invalid", "invalid (nope)"},
		{cart.AllHours{}, "all_hours", "all_hours"},
		{cart.HourOfDay(7), "hour", "7"},
		{cart.PitchRatio(1010), "pitch_percent", "101"},
		{cart.Unset{}, "unset", "unset"},
		{cart.CalendarDate{Time: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}, "date", "2024-02-29"},
	}
	for _, tt := range tests {
		got := RenderValue(tt.in)
		if got.Kind != tt.kind || got.String() != tt.str {
			t.Fatalf("render %#v: got %s/%q want %s/%q", tt.in, got.Kind, got.String(), tt.kind, tt.str)
		}
	}
}

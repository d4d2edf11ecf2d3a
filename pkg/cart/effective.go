package cart

import (
	"errors"
	"time"
)

// Field names a logical, possibly flag-gated, quantity of a record.
type Field uint8

const (
	FieldLength Field = iota
	FieldCueIn
	FieldEOD
	FieldEOM
	FieldPitch
	FieldLevel
	FieldFileLength
	FieldChopSize
	FieldDayparting
	FieldVTEOMOverride
	FieldVTStart
	FieldDesiredLength
	FieldTriggers
	FieldHooks
	FieldStartHour
	FieldKillHour
	FieldRecordHour
	FieldStartDate
	FieldKillDate
	FieldRecordDate

	fieldCount
)

var fieldNames = [fieldCount]string{
	"length", "cue_in", "eod", "eom", "pitch", "level", "file_length", "chop_size",
	"dayparting", "vt_eom_override", "vt_start", "desired_length", "triggers", "hooks",
	"start_hour", "kill_hour", "record_hour", "start_date", "kill_date", "record_date",
}

func (f Field) String() string {
	if f < fieldCount {
		return fieldNames[f]
	}
	return "unknown"
}

// Fields lists every logical field in order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Value is the result of Effective: one of the types below, or Invalid.
type Value interface {
	isValue()
}

// Invalid marks a quantity that must not be used.
type Invalid struct {
	Reason string
}

// Length is the asclen duration. ToEOM reports whether it runs to the EOM
// rather than to the end of audio.
type Length struct {
	Duration time.Duration
	ToEOM    bool
}

type Duration struct {
	time.Duration
}

// EOM is the end-of-message start (from audio start) and length.
type EOM struct {
	Start  time.Duration
	Length time.Duration
}

// PitchRatio is the playback rate in tenths of a percent of the sample
// rate: 1010 plays 1% fast.
type PitchRatio uint16

func (p PitchRatio) Percent() float64 { return float64(p) / 10 }

// LevelRatio is the legacy playlevel: 32767 is the loudest the adapter can
// play, 0 is off.
type LevelRatio uint16

func (l LevelRatio) Fraction() float64 { return float64(l) / float64(mask16) }

// LevelPercent is the newplaylev adjustment in tenths of a percent.
type LevelPercent uint16

func (l LevelPercent) Percent() float64 { return float64(l) / 10 }

// FileLength is the total file size in bytes at recording time.
type FileLength uint32

type Triggers []Trigger

type Hooks struct {
	Start time.Duration
	EOM   time.Duration
	End   time.Duration
}

type HourOfDay int

type AllHours struct{}

type CalendarDate struct {
	time.Time
}

type Unset struct{}

func (Invalid) isValue()      {}
func (Length) isValue()       {}
func (Duration) isValue()     {}
func (EOM) isValue()          {}
func (PitchRatio) isValue()   {}
func (LevelRatio) isValue()   {}
func (LevelPercent) isValue() {}
func (FileLength) isValue()   {}
func (Dayparting) isValue()   {}
func (Triggers) isValue()     {}
func (Hooks) isValue()        {}
func (HourOfDay) isValue()    {}
func (AllHours) isValue()     {}
func (CalendarDate) isValue() {}
func (Unset) isValue()        {}

// IsInvalid reports whether v is Invalid.
func IsInvalid(v Value) bool {
	_, ok := v.(Invalid)
	return ok
}

// Effective resolves f against the flags that gate it. Callers should use
// it instead of reading the raw storage fields.
func (r Record) Effective(f Field) Value {
	switch f {
	case FieldLength:
		d, err := parseAscLen(r.AscLen, r.Attrib.Has(AttribLengthHMMSS))
		if err != nil {
			return Invalid{Reason: err.Error()}
		}
		return Length{Duration: d, ToEOM: r.Attrib.Has(AttribLengthToEOM)}
	case FieldCueIn:
		return timingValue(r.Start)
	case FieldEOD:
		return timingValue(r.End)
	case FieldEOM:
		if r.EOMStart < 0 || r.EOMLength < 0 {
			return Invalid{Reason: "negative eom"}
		}
		return EOM{
			Start:  time.Duration(r.EOMStart) * 100 * time.Millisecond,
			Length: time.Duration(r.EOMLength) * 10 * time.Millisecond,
		}
	case FieldPitch:
		switch {
		case r.Pitch.Valid:
			return PitchRatio(r.Pitch.Value)
		case r.levelOverride():
			return Invalid{Reason: "pitch ignored, level taken from newplaylev"}
		default:
			return Invalid{Reason: "no valid pitch data"}
		}
	case FieldLevel:
		if r.levelOverride() {
			if !r.NewPlayLevel.Valid {
				return Invalid{Reason: "newplaylev not valid"}
			}
			return LevelPercent(r.NewPlayLevel.Value)
		}
		if !r.PlayLevel.Valid {
			return Invalid{Reason: "playlevel not valid"}
		}
		return LevelRatio(r.PlayLevel.Value)
	case FieldFileLength:
		if r.LenValid&lenValidFlag == 0 {
			return Invalid{Reason: "lenvalid not set"}
		}
		return FileLength(r.FileLength)
	case FieldChopSize:
		if !r.ChopSize.Valid {
			return Invalid{Reason: "chop size not valid"}
		}
		return Duration{time.Duration(r.ChopSize.Value) * 10 * time.Millisecond}
	case FieldDayparting:
		if !r.Extended(Attrib2Dayparting) {
			return Invalid{Reason: "dayparting not enabled"}
		}
		return r.HrCanPlay
	case FieldVTEOMOverride:
		if !r.Extended(Attrib2VTEOMOverride) {
			return Invalid{Reason: "vteomovr not enabled"}
		}
		return Duration{time.Duration(r.VTEOMOvr) * time.Millisecond}
	case FieldVTStart:
		if r.VTStart.IsZero() {
			return Invalid{Reason: "no override, source EOM applies"}
		}
		return timingValue(r.VTStart)
	case FieldDesiredLength:
		if !r.Extended(Attrib2DesiredLength) {
			return Invalid{Reason: "desired length not enabled"}
		}
		if r.DesiredLen == 0 {
			return Invalid{Reason: "no stretch or squeeze requested"}
		}
		return Duration{time.Duration(r.DesiredLen) * 10 * time.Millisecond}
	case FieldTriggers:
		if !r.Extended(Attrib2Triggers) {
			return Invalid{Reason: "triggers not enabled"}
		}
		var ts Triggers
		for _, t := range r.Triggers {
			if !t.IsZero() {
				ts = append(ts, t)
			}
		}
		return ts
	case FieldHooks:
		if !r.Extended(Attrib2Hooks) {
			return Invalid{Reason: "hooks not enabled"}
		}
		return Hooks{
			Start: time.Duration(r.HookStartMS) * time.Millisecond,
			EOM:   time.Duration(r.HookEOMMS) * time.Millisecond,
			End:   time.Duration(r.HookEndMS) * time.Millisecond,
		}
	case FieldStartHour:
		return hourValue(r.StartHour)
	case FieldKillHour:
		return hourValue(r.KillHour)
	case FieldRecordHour:
		return hourValue(r.RecordHour)
	case FieldStartDate:
		return dateValue(r.StartDate, r.StartDate.String() == StartDateUnset)
	case FieldKillDate:
		return dateValue(r.KillDate, r.KillDate.String() == KillDateUnset)
	case FieldRecordDate:
		return dateValue(r.RecordDate, r.RecordDate.blank() || r.RecordDate.String() == StartDateUnset)
	default:
		return Invalid{Reason: "unknown field"}
	}
}

// Extended reports whether an attrib2 bit is set and trustworthy.
func (r Record) Extended(bit Attrib2) bool {
	return r.Attrib.Has(AttribExtended) && r.Attrib2.Has(bit)
}

// levelOverride reports the pitch sentinel that redirects the playback
// level to newplaylev.
func (r Record) levelOverride() bool {
	return !r.Pitch.Valid && r.Pitch.Raw() == PitchLevelSentinel
}

func timingValue(t Timing) Value {
	if t.Hundredths < 0 || t.Hundredths > 99 || t.Seconds < 0 {
		return Invalid{Reason: "timing out of range: " + t.String()}
	}
	return Duration{t.Duration()}
}

func hourValue(h Hour) Value {
	hour, all, ok := h.Resolve()
	switch {
	case !ok:
		return Invalid{Reason: "hour out of range"}
	case all:
		return AllHours{}
	default:
		return HourOfDay(hour)
	}
}

func dateValue(d Date, unset bool) Value {
	if unset {
		return Unset{}
	}
	t, err := d.Time()
	if err != nil {
		return Invalid{Reason: "bad date " + d.String()}
	}
	return CalendarDate{t}
}

var errAscLen = errors.New("asclen not parseable")

// parseAscLen reads " 2:30" (MM:SS) or "10230" (HMMSS).
func parseAscLen(b [5]byte, hmmss bool) (time.Duration, error) {
	var h, m, s int
	var ok bool
	if hmmss {
		if h, ok = digits(b[0:1]); !ok {
			return 0, errAscLen
		}
		if m, ok = digits(b[1:3]); !ok || m > 59 {
			return 0, errAscLen
		}
	} else {
		if b[2] != ':' {
			return 0, errAscLen
		}
		if m, ok = digits(b[0:2]); !ok {
			return 0, errAscLen
		}
	}
	if s, ok = digits(b[3:5]); !ok || s > 59 {
		return 0, errAscLen
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// digits parses ASCII digits allowing leading spaces. A field of spaces
// alone is not a number, except a single leading hour digit may be blank.
func digits(b []byte) (int, bool) {
	n, seen := 0, false
	for _, c := range b {
		switch {
		case c == ' ' && !seen:
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			seen = true
		default:
			return 0, false
		}
	}
	return n, seen || len(b) == 1
}

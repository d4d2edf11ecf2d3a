package api

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samcharles93/cartchunk/pkg/cart"
)

// CartDTO is the JSON view of a cart record. Text fields are decoded from
// Windows-1252 with their padding stripped; dates are the stored MMDDYY
// characters. Opaque byte regions are hex. Raw character fields holding
// bytes outside ASCII are written as "hex:" followed by every byte.
type CartDTO struct {
	Tag    string `json:"tag"`
	Size   int32  `json:"size"`
	Alter  uint8  `json:"alter"`
	Attrib uint8  `json:"attrib"`
	ArtNum int16  `json:"artnum"`

	Name   string `json:"name"`
	Copy   string `json:"copy"`
	Padd   string `json:"padd"`
	AscLen string `json:"asclen"`

	Start TimingDTO `json:"start"`
	End   TimingDTO `json:"end"`

	StartDate string `json:"start_date"`
	KillDate  string `json:"kill_date"`
	StartHour uint8  `json:"start_hour"`
	KillHour  uint8  `json:"kill_hour"`

	Digital    uint8 `json:"digital"`
	SampleRate int16 `json:"sample_rate"`
	Stereo     uint8 `json:"stereo"`
	Compress   uint8 `json:"compress"`

	EOMStart  int32  `json:"eom_start"`
	EOMLength int16  `json:"eom_length"`
	Attrib2   uint32 `json:"attrib2"`

	HookStartMS  uint32 `json:"hook_start_ms"`
	HookEOMMS    uint32 `json:"hook_eom_ms"`
	HookEndMS    uint32 `json:"hook_end_ms"`
	CatFontColor uint32 `json:"cat_font_color"`
	CatColor     uint32 `json:"cat_color"`
	SegEOMPos    int32  `json:"seg_eom_pos"`

	VTStart TimingDTO `json:"vt_start"`

	PriorCat  string `json:"prior_cat"`
	PriorCopy string `json:"prior_copy"`
	PriorPadd string `json:"prior_padd"`
	PostCat   string `json:"post_cat"`
	PostCopy  string `json:"post_copy"`
	PostPadd  string `json:"post_padd"`

	HrCanPlay string `json:"hrcanplay"`
	Future2   string `json:"future2"`

	Artist  string `json:"artist"`
	Trivia  string `json:"trivia"`
	Intro   string `json:"intro"`
	EndType string `json:"end"`
	Year    string `json:"year"`

	Obsolete2  uint8  `json:"obsolete2"`
	RecordHour uint8  `json:"record_hour"`
	RecordDate string `json:"record_date"`

	MPEGBitrate int16 `json:"mpeg_bitrate"`

	Pitch        FlaggedDTO   `json:"pitch"`
	PlayLevel    FlaggedDTO   `json:"play_level"`
	LenValid     uint8        `json:"lenvalid"`
	FileLength   uint32       `json:"file_length"`
	NewPlayLevel FlaggedDTO   `json:"new_play_level"`
	ChopSize     FlaggedDTO   `json:"chop_size"`
	VTEOMOvr     uint32       `json:"vt_eom_override"`
	DesiredLen   uint32       `json:"desired_length"`
	Triggers     []TriggerDTO `json:"triggers"`
	Category     string       `json:"category"`

	Fillout string `json:"fillout,omitempty"`
}

type TimingDTO struct {
	Seconds    int16 `json:"seconds"`
	Hundredths int16 `json:"hundredths"`
}

type FlaggedDTO struct {
	Valid bool   `json:"valid"`
	Value uint32 `json:"value"`
}

type TriggerDTO struct {
	Source uint8  `json:"source"`
	Tenths uint32 `json:"tenths"`
}

// FromRecord builds the JSON view of r.
func FromRecord(r cart.Record) CartDTO {
	d := CartDTO{
		Tag:    rawText(r.Tag[:]),
		Size:   r.Size,
		Alter:  r.Alter,
		Attrib: uint8(r.Attrib),
		ArtNum: r.ArtNum,

		Name:   cart.Text(r.Name[:]),
		Copy:   cart.Text(r.Copy[:]),
		Padd:   rawText(r.Padd[:]),
		AscLen: rawText(r.AscLen[:]),

		Start: TimingDTO(r.Start),
		End:   TimingDTO(r.End),

		StartDate: rawText(r.StartDate[:]),
		KillDate:  rawText(r.KillDate[:]),
		StartHour: uint8(r.StartHour),
		KillHour:  uint8(r.KillHour),

		Digital:    r.Digital,
		SampleRate: r.SampleRate,
		Stereo:     r.Stereo,
		Compress:   r.Compress,

		EOMStart:  r.EOMStart,
		EOMLength: r.EOMLength,
		Attrib2:   uint32(r.Attrib2),

		HookStartMS:  r.HookStartMS,
		HookEOMMS:    r.HookEOMMS,
		HookEndMS:    r.HookEndMS,
		CatFontColor: r.CatFontColor,
		CatColor:     r.CatColor,
		SegEOMPos:    r.SegEOMPos,

		VTStart: TimingDTO(r.VTStart),

		PriorCat:  cart.Text(r.PriorCat[:]),
		PriorCopy: cart.Text(r.PriorCopy[:]),
		PriorPadd: rawText(r.PriorPadd[:]),
		PostCat:   cart.Text(r.PostCat[:]),
		PostCopy:  cart.Text(r.PostCopy[:]),
		PostPadd:  rawText(r.PostPadd[:]),

		HrCanPlay: hex.EncodeToString(r.HrCanPlay[:]),
		Future2:   hex.EncodeToString(r.Future2[:]),

		Artist:  cart.Text(r.Artist[:]),
		Trivia:  cart.Text(r.Trivia[:]),
		Intro:   cart.Text(r.Intro[:]),
		EndType: cart.Text(r.EndType[:]),
		Year:    cart.Text(r.Year[:]),

		Obsolete2:  r.Obsolete2,
		RecordHour: uint8(r.RecordHour),
		RecordDate: rawText(r.RecordDate[:]),

		MPEGBitrate: r.MPEGBitrate,

		Pitch:        FlaggedDTO{Valid: r.Pitch.Valid, Value: uint32(r.Pitch.Value)},
		PlayLevel:    FlaggedDTO{Valid: r.PlayLevel.Valid, Value: uint32(r.PlayLevel.Value)},
		LenValid:     r.LenValid,
		FileLength:   r.FileLength,
		NewPlayLevel: FlaggedDTO{Valid: r.NewPlayLevel.Valid, Value: uint32(r.NewPlayLevel.Value)},
		ChopSize:     FlaggedDTO(r.ChopSize),
		VTEOMOvr:     r.VTEOMOvr,
		DesiredLen:   r.DesiredLen,
		Category:     cart.Text(r.Category[:]),
	}
	for _, t := range r.Triggers {
		d.Triggers = append(d.Triggers, TriggerDTO(t))
	}
	if fill := r.Fillout[:]; !allZero(fill) {
		d.Fillout = hex.EncodeToString(fill)
	}
	return d
}

// ToRecord converts d back into a record. Text wider than its field, or
// not representable in Windows-1252, fails with cart.ErrFieldOverflow.
func (d CartDTO) ToRecord() (cart.Record, error) {
	r := cart.Record{
		Size:   d.Size,
		Alter:  d.Alter,
		Attrib: cart.Attrib(d.Attrib),
		ArtNum: d.ArtNum,

		Start: cart.Timing(d.Start),
		End:   cart.Timing(d.End),

		StartHour: cart.Hour(d.StartHour),
		KillHour:  cart.Hour(d.KillHour),

		Digital:    d.Digital,
		SampleRate: d.SampleRate,
		Stereo:     d.Stereo,
		Compress:   d.Compress,

		EOMStart:  d.EOMStart,
		EOMLength: d.EOMLength,
		Attrib2:   cart.Attrib2(d.Attrib2),

		HookStartMS:  d.HookStartMS,
		HookEOMMS:    d.HookEOMMS,
		HookEndMS:    d.HookEndMS,
		CatFontColor: d.CatFontColor,
		CatColor:     d.CatColor,
		SegEOMPos:    d.SegEOMPos,

		VTStart: cart.Timing(d.VTStart),

		Obsolete2:  d.Obsolete2,
		RecordHour: cart.Hour(d.RecordHour),

		MPEGBitrate: d.MPEGBitrate,

		LenValid:   d.LenValid,
		FileLength: d.FileLength,
		ChopSize:   cart.Flagged32(d.ChopSize),
		VTEOMOvr:   d.VTEOMOvr,
		DesiredLen: d.DesiredLen,
	}

	var err error
	flagged16 := func(field string, f FlaggedDTO) cart.Flagged16 {
		if err == nil && f.Value > 0x7FFF {
			err = &cart.FieldError{Field: field, Value: f.Value, Limit: "15 bits"}
		}
		return cart.Flagged16{Valid: f.Valid, Value: uint16(f.Value)}
	}
	r.Pitch = flagged16("pitch", d.Pitch)
	r.PlayLevel = flagged16("play_level", d.PlayLevel)
	r.NewPlayLevel = flagged16("new_play_level", d.NewPlayLevel)
	if err != nil {
		return cart.Record{}, err
	}

	if len(d.Triggers) > len(r.Triggers) {
		return cart.Record{}, &cart.FieldError{Field: "triggers", Value: len(d.Triggers), Limit: "3 slots"}
	}
	for i, t := range d.Triggers {
		r.Triggers[i] = cart.Trigger(t)
	}

	for _, f := range []struct {
		name string
		dst  []byte
		src  string
	}{
		{"tag", r.Tag[:], d.Tag},
		{"start_date", r.StartDate[:], d.StartDate},
		{"kill_date", r.KillDate[:], d.KillDate},
		{"record_date", r.RecordDate[:], d.RecordDate},
	} {
		if ok, err := decodeRaw(f.dst, f.src); err != nil {
			return cart.Record{}, fmt.Errorf("%s: %w", f.name, err)
		} else if ok {
			continue
		}
		if len(f.src) != len(f.dst) {
			return cart.Record{}, &cart.FieldError{Field: f.name, Value: f.src, Limit: fmt.Sprintf("exactly %d bytes", len(f.dst))}
		}
		copy(f.dst, f.src)
	}

	for _, f := range []struct {
		name string
		dst  []byte
		src  string
	}{
		{"name", r.Name[:], d.Name},
		{"copy", r.Copy[:], d.Copy},
		{"padd", r.Padd[:], d.Padd},
		{"asclen", r.AscLen[:], d.AscLen},
		{"prior_cat", r.PriorCat[:], d.PriorCat},
		{"prior_copy", r.PriorCopy[:], d.PriorCopy},
		{"prior_padd", r.PriorPadd[:], d.PriorPadd},
		{"post_cat", r.PostCat[:], d.PostCat},
		{"post_copy", r.PostCopy[:], d.PostCopy},
		{"post_padd", r.PostPadd[:], d.PostPadd},
		{"artist", r.Artist[:], d.Artist},
		{"trivia", r.Trivia[:], d.Trivia},
		{"intro", r.Intro[:], d.Intro},
		{"end", r.EndType[:], d.EndType},
		{"year", r.Year[:], d.Year},
		{"category", r.Category[:], d.Category},
	} {
		if ok, err := decodeRaw(f.dst, f.src); err != nil {
			return cart.Record{}, fmt.Errorf("%s: %w", f.name, err)
		} else if ok {
			continue
		}
		if err := cart.SetText(f.dst, f.src); err != nil {
			return cart.Record{}, &cart.FieldError{Field: f.name, Value: f.src, Limit: fmt.Sprintf("%d bytes of Windows-1252", len(f.dst))}
		}
	}

	for _, f := range []struct {
		name string
		dst  []byte
		src  string
	}{
		{"hrcanplay", r.HrCanPlay[:], d.HrCanPlay},
		{"future2", r.Future2[:], d.Future2},
		{"fillout", r.Fillout[:], d.Fillout},
	} {
		if f.src == "" {
			continue
		}
		b, err := hex.DecodeString(f.src)
		if err != nil {
			return cart.Record{}, fmt.Errorf("%s: %w", f.name, err)
		}
		if len(b) > len(f.dst) {
			return cart.Record{}, &cart.FieldError{Field: f.name, Value: f.src, Limit: fmt.Sprintf("%d bytes", len(f.dst))}
		}
		copy(f.dst, b)
	}
	return r, nil
}

const rawPrefix = "hex:"

// rawText renders a fixed width character field. Bytes past 0x7F cannot
// survive a trip through JSON strings, so such fields are hex encoded.
func rawText(b []byte) string {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return rawPrefix + hex.EncodeToString(b)
		}
	}
	return string(b)
}

// decodeRaw fills dst from the "hex:" form written by rawText. The form is
// recognized only when it carries exactly len(dst) bytes, a length no
// literal value of the field can have.
func decodeRaw(dst []byte, src string) (bool, error) {
	h, ok := strings.CutPrefix(src, rawPrefix)
	if !ok || len(h) != 2*len(dst) {
		return false, nil
	}
	if _, err := hex.Decode(dst, []byte(h)); err != nil {
		return false, err
	}
	return true, nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// ValueDTO renders one effective value. Kind names the variant; Value is
// absent for variants that carry no data.
type ValueDTO struct {
	Kind   string `json:"kind"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (v ValueDTO) String() string {
	switch {
	case v.Reason != "":
		return v.Kind + " (" + v.Reason + ")"
	case v.Value != nil:
		return fmt.Sprintf("%v", v.Value)
	default:
		return v.Kind
	}
}

type EOMDTO struct {
	Start  float64 `json:"start_seconds"`
	Length float64 `json:"length_seconds"`
}

type LengthDTO struct {
	Seconds float64 `json:"seconds"`
	ToEOM   bool    `json:"to_eom"`
}

type HooksDTO struct {
	StartMS int64 `json:"start_ms"`
	EOMMS   int64 `json:"eom_ms"`
	EndMS   int64 `json:"end_ms"`
}

type DaypartingDTO struct {
	Hours int    `json:"hours"`
	Map   string `json:"map"`
}

// EffectiveDTO is the resolved value of every logical field, keyed by
// field name.
type EffectiveDTO map[string]ValueDTO

func Effective(r cart.Record) EffectiveDTO {
	out := make(EffectiveDTO, len(cart.Fields()))
	for _, f := range cart.Fields() {
		out[f.String()] = RenderValue(r.Effective(f))
	}
	return out
}

// RenderValue maps an effective value to its JSON form.
func RenderValue(v cart.Value) ValueDTO {
	switch v := v.(type) {
	case cart.Invalid:
		return ValueDTO{Kind: "invalid", Reason: v.Reason}
	case cart.Length:
		return ValueDTO{Kind: "length", Value: LengthDTO{Seconds: v.Duration.Seconds(), ToEOM: v.ToEOM}}
	case cart.Duration:
		return ValueDTO{Kind: "duration", Value: v.Seconds()}
	case cart.EOM:
		return ValueDTO{Kind: "eom", Value: EOMDTO{Start: v.Start.Seconds(), Length: v.Length.Seconds()}}
	case cart.PitchRatio:
		return ValueDTO{Kind: "pitch_percent", Value: v.Percent()}
	case cart.LevelRatio:
		return ValueDTO{Kind: "level_ratio", Value: v.Fraction()}
	case cart.LevelPercent:
		return ValueDTO{Kind: "level_percent", Value: v.Percent()}
	case cart.FileLength:
		return ValueDTO{Kind: "file_length", Value: uint32(v)}
	case cart.Dayparting:
		return ValueDTO{Kind: "dayparting", Value: DaypartingDTO{Hours: v.Count(), Map: hex.EncodeToString(v[:])}}
	case cart.Triggers:
		ts := make([]TriggerDTO, 0, len(v))
		for _, t := range v {
			ts = append(ts, TriggerDTO(t))
		}
		return ValueDTO{Kind: "triggers", Value: ts}
	case cart.Hooks:
		return ValueDTO{Kind: "hooks", Value: HooksDTO{
			StartMS: v.Start.Milliseconds(),
			EOMMS:   v.EOM.Milliseconds(),
			EndMS:   v.End.Milliseconds(),
		}}
	case cart.HourOfDay:
		return ValueDTO{Kind: "hour", Value: int(v)}
	case cart.AllHours:
		return ValueDTO{Kind: "all_hours"}
	case cart.CalendarDate:
		return ValueDTO{Kind: "date", Value: v.Format(time.DateOnly)}
	case cart.Unset:
		return ValueDTO{Kind: "unset"}
	default:
		return ValueDTO{Kind: "unknown"}
	}
}

type ViolationDTO struct {
	Field    string `json:"field"`
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

type ReportDTO struct {
	Errors     int            `json:"errors"`
	Warnings   int            `json:"warnings"`
	Violations []ViolationDTO `json:"violations"`
}

func FromReport(rep cart.Report) ReportDTO {
	out := ReportDTO{
		Errors:     len(rep.Errors()),
		Warnings:   len(rep.Warnings()),
		Violations: make([]ViolationDTO, 0, len(rep.Violations)),
	}
	for _, v := range rep.Violations {
		out.Violations = append(out.Violations, ViolationDTO{
			Field:    v.Field,
			Severity: v.Severity.String(),
			Kind:     v.Kind.String(),
			Message:  v.Message,
		})
	}
	return out
}

package cart

import "fmt"

// Validate checks r and returns every finding in a fixed precedence:
// tag/size, reserved-zero regions, padding-space regions, the extended
// attribute gate, per-field gated validity, hour sentinels, date sentinels.
// It never mutates r.
func Validate(r Record) Report {
	var rep Report
	checkHeader(&r, &rep)
	checkReserved(&r, &rep)
	checkPadding(&r, &rep)
	checkGate(&r, &rep)
	checkGatedFields(&r, &rep)
	checkHours(&r, &rep)
	checkDates(&r, &rep)
	return rep
}

func checkHeader(r *Record, rep *Report) {
	if string(r.Tag[:]) != Tag {
		rep.add("tag", SeverityError, KindBadTag, "tag is %q, want %q", r.Tag[:], Tag)
	}
	if !ValidSize(int(r.Size)) {
		rep.add("size", SeverityError, KindSizeMismatch, "declared size %d, want %d or %d", r.Size, SizeEmbedded, SizeStandalone)
	}
}

type region struct {
	field string
	data  []byte
}

func checkReserved(r *Record, rep *Report) {
	if r.Alter != 0 {
		rep.warn("alter", KindStructuralViolation, "scratch byte is %#02x, want zero", r.Alter)
	}
	if r.ArtNum != 0 {
		rep.warn("artnum", KindStructuralViolation, "scratch word is %d, want zero", r.ArtNum)
	}
	for _, reg := range []region{
		{"future2", r.Future2[:]},
		{"obsolete2", []byte{r.Obsolete2}},
		{"fillout", r.Fillout[:]},
	} {
		if n := countNot(reg.data, 0); n > 0 {
			rep.warn(reg.field, KindStructuralViolation, "reserved region has %d nonzero byte(s)", n)
		}
	}
}

func checkPadding(r *Record, rep *Report) {
	for _, reg := range []region{
		{"padd", r.Padd[:]},
		{"prior_padd", r.PriorPadd[:]},
		{"post_padd", r.PostPadd[:]},
	} {
		if countNot(reg.data, ' ') > 0 {
			rep.warn(reg.field, KindStructuralViolation, "padding is %q, want spaces", reg.data)
		}
	}
	for _, reg := range []region{
		{"name", r.Name[:]},
		{"copy", r.Copy[:]},
		{"prior_cat", r.PriorCat[:]},
		{"prior_copy", r.PriorCopy[:]},
		{"post_cat", r.PostCat[:]},
		{"post_copy", r.PostCopy[:]},
		{"artist", r.Artist[:]},
		{"trivia", r.Trivia[:]},
		{"intro", r.Intro[:]},
		{"end", r.EndType[:]},
		{"year", r.Year[:]},
		{"category", r.Category[:]},
	} {
		// An unused category is the zeroed fourth trigger slot.
		if reg.field == "category" && countNot(reg.data, 0) == 0 {
			continue
		}
		if i := firstControl(reg.data); i >= 0 {
			rep.warn(reg.field, KindStructuralViolation, "byte %d is %#02x, text must be space padded", i, reg.data[i])
		}
	}
}

func checkGate(r *Record, rep *Report) {
	if r.Attrib.Has(AttribExtended) {
		if stray := r.Attrib2 &^ Attrib2Known; stray != 0 {
			rep.warn("attrib2", KindSemanticWarning, "stray bits %#08x set with extension-valid gate", uint32(stray))
		}
	} else if r.Attrib2 != 0 {
		rep.warn("attrib2", KindSemanticWarning, "attrib2 is %#08x but extension-valid gate is clear; ignored", uint32(r.Attrib2))
	}
	if r.LenValid&lenValidFlag != 0 && r.LenValid&^lenValidFlag != 0 {
		rep.warn("lenvalid", KindSemanticWarning, "reserved flag bits %#02x set", r.LenValid&^lenValidFlag)
	}
}

func checkGatedFields(r *Record, rep *Report) {
	switch {
	case r.Pitch.Valid:
	case r.levelOverride():
		if !r.NewPlayLevel.Valid {
			rep.warn("newplaylev", KindSemanticWarning, "pitch redirects level to newplaylev but it is not valid")
		}
	default:
		rep.warn("pitch", KindSemanticWarning, "no valid pitch data")
	}

	if !r.ChopSize.Valid && r.ChopSize.Value != 0 {
		rep.warn("chop_size", KindSemanticWarning, "payload %d without validity bit", r.ChopSize.Value)
	}

	triggers := r.Triggers[0].Raw() | r.Triggers[1].Raw() | r.Triggers[2].Raw()
	if !r.Extended(Attrib2Triggers) {
		if triggers != 0 {
			rep.warn("triggers", KindSemanticWarning, "trigger data present but not enabled")
		}
	} else {
		var last uint32
		for i, t := range r.Triggers {
			if t.IsZero() {
				continue
			}
			if t.Tenths < last {
				rep.warn(fmt.Sprintf("trigger%d", i+1), KindSemanticWarning, "trigger at %d tenths precedes an earlier one", t.Tenths)
			}
			last = t.Tenths
		}
	}

	if !r.Extended(Attrib2Dayparting) && !r.HrCanPlay.IsZero() {
		rep.warn("hrcanplay", KindSemanticWarning, "dayparting bitmap present but not enabled")
	}

	if !r.VTStart.IsZero() && !r.Attrib.Has(AttribVoiceTrack) {
		rep.warn("vt_start", KindSemanticWarning, "voice-track EOM override %s on a cart that is not a voice track", r.VTStart)
	}
	if r.VTEOMOvr != 0 && !r.Extended(Attrib2VTEOMOverride) {
		rep.warn("vteomovr", KindSemanticWarning, "override of %dms present but not enabled", r.VTEOMOvr)
	}

	if r.DesiredLen != 0 && !r.Extended(Attrib2DesiredLength) {
		rep.warn("desired_length", KindSemanticWarning, "desired length present but not enabled")
	}

	if (r.HookStartMS|r.HookEOMMS|r.HookEndMS) != 0 && !r.Extended(Attrib2Hooks) {
		rep.warn("hooks", KindSemanticWarning, "hook values present but not enabled")
	}

	for _, t := range []struct {
		field string
		v     Timing
	}{
		{"start", r.Start},
		{"end", r.End},
		{"vt_start", r.VTStart},
	} {
		if t.v.Hundredths < 0 || t.v.Hundredths > 99 {
			rep.warn(t.field+"_hundredths", KindSemanticWarning, "hundredths %d outside 0..99", t.v.Hundredths)
		}
	}

	if _, err := parseAscLen(r.AscLen, r.Attrib.Has(AttribLengthHMMSS)); err != nil {
		rep.warn("asclen", KindSemanticWarning, "length %q is not a valid %s value", r.AscLen[:], ascLenFormat(r.Attrib))
	}
}

func ascLenFormat(a Attrib) string {
	if a.Has(AttribLengthHMMSS) {
		return "HMMSS"
	}
	return "MM:SS"
}

func checkHours(r *Record, rep *Report) {
	for _, h := range []struct {
		field string
		v     Hour
	}{
		{"start_hour", r.StartHour},
		{"kill_hour", r.KillHour},
		{"record_hour", r.RecordHour},
	} {
		switch {
		case h.v > 0 && h.v < hourFlag:
			rep.warn(h.field, KindSemanticWarning, "hour byte %d lacks the flag bit; treated as all hours", h.v)
		case h.v > hourLastEver:
			rep.warn(h.field, KindSemanticWarning, "hour byte %d out of range", h.v)
		}
	}
}

func checkDates(r *Record, rep *Report) {
	for _, d := range []struct {
		field Field
		v     Date
	}{
		{FieldStartDate, r.StartDate},
		{FieldKillDate, r.KillDate},
		{FieldRecordDate, r.RecordDate},
	} {
		if IsInvalid(r.Effective(d.field)) {
			rep.warn(d.field.String(), KindSemanticWarning, "date %q is neither MMDDYY nor the unset sentinel", d.v[:])
		}
	}
}

func countNot(b []byte, c byte) int {
	n := 0
	for _, x := range b {
		if x != c {
			n++
		}
	}
	return n
}

// firstControl returns the index of the first NUL or control byte, or -1.
func firstControl(b []byte) int {
	for i, c := range b {
		if c < 0x20 || c == 0x7f {
			return i
		}
	}
	return -1
}

package cart

import (
	"encoding/binary"
	"fmt"
)

var le = binary.LittleEndian

func sizeMismatch(n int) error {
	return fmt.Errorf("%w: %d bytes, want %d or %d", ErrSizeMismatch, n, SizeEmbedded, SizeStandalone)
}

// Decode reads a record from buf, which must be exactly 424 or 512 bytes.
// It extracts fields mechanically and applies no cross-field semantics.
func Decode(buf []byte) (Record, error) {
	if !ValidSize(len(buf)) {
		return Record{}, sizeMismatch(len(buf))
	}
	if string(buf[offTag:offTag+4]) != Tag {
		return Record{}, fmt.Errorf("%w: %q", ErrBadTag, buf[offTag:offTag+4])
	}

	var r Record
	copy(r.Tag[:], buf[offTag:])
	r.Size = int32(le.Uint32(buf[offSize:]))
	r.Alter = buf[offAlter]
	r.Attrib = Attrib(buf[offAttrib])
	r.ArtNum = int16(le.Uint16(buf[offArtNum:]))

	copy(r.Name[:], buf[offName:])
	copy(r.Copy[:], buf[offCopy:])
	copy(r.Padd[:], buf[offPadd:])
	copy(r.AscLen[:], buf[offAscLen:])

	r.Start = getTiming(buf, offStartSecs, offStartHunds)
	r.End = getTiming(buf, offEndSecs, offEndHunds)

	copy(r.StartDate[:], buf[offStartDate:])
	copy(r.KillDate[:], buf[offKillDate:])
	r.StartHour = Hour(buf[offStartHour])
	r.KillHour = Hour(buf[offKillHour])

	r.Digital = buf[offDigital]
	r.SampleRate = int16(le.Uint16(buf[offSampleRate:]))
	r.Stereo = buf[offStereo]
	r.Compress = buf[offCompress]

	r.EOMStart = int32(le.Uint32(buf[offEOMStart:]))
	r.EOMLength = int16(le.Uint16(buf[offEOMLength:]))
	r.Attrib2 = Attrib2(le.Uint32(buf[offAttrib2:]))

	r.HookStartMS = le.Uint32(buf[offHookStart:])
	r.HookEOMMS = le.Uint32(buf[offHookEOM:])
	r.HookEndMS = le.Uint32(buf[offHookEnd:])
	r.CatFontColor = le.Uint32(buf[offCatFontColor:])
	r.CatColor = le.Uint32(buf[offCatColor:])
	r.SegEOMPos = int32(le.Uint32(buf[offSegEOMPos:]))

	r.VTStart = getTiming(buf, offVTStartSecs, offVTStartHunds)

	copy(r.PriorCat[:], buf[offPriorCat:])
	copy(r.PriorCopy[:], buf[offPriorCopy:])
	copy(r.PriorPadd[:], buf[offPriorPadd:])
	copy(r.PostCat[:], buf[offPostCat:])
	copy(r.PostCopy[:], buf[offPostCopy:])
	copy(r.PostPadd[:], buf[offPostPadd:])

	copy(r.HrCanPlay[:], buf[offHrCanPlay:])
	copy(r.Future2[:], buf[offFuture2:])

	copy(r.Artist[:], buf[offArtist:])
	copy(r.Trivia[:], buf[offTrivia:])
	copy(r.Intro[:], buf[offIntro:])
	copy(r.EndType[:], buf[offEnd:])
	copy(r.Year[:], buf[offYear:])

	r.Obsolete2 = buf[offObsolete2]
	r.RecordHour = Hour(buf[offRecordHour])
	copy(r.RecordDate[:], buf[offRecordDate:])
	r.MPEGBitrate = int16(le.Uint16(buf[offMPEGBitrate:]))

	r.Pitch = Flagged16From(le.Uint16(buf[offPitch:]))
	r.PlayLevel = Flagged16From(le.Uint16(buf[offPlayLevel:]))
	r.LenValid = buf[offLenValid]
	r.FileLength = le.Uint32(buf[offFileLength:])
	r.NewPlayLevel = Flagged16From(le.Uint16(buf[offNewPlayLevel:]))
	r.ChopSize = Flagged32From(le.Uint32(buf[offChopSize:]))
	r.VTEOMOvr = le.Uint32(buf[offVTEOMOvr:])
	r.DesiredLen = le.Uint32(buf[offDesiredLen:])

	r.Triggers[0] = TriggerFrom(le.Uint32(buf[offTrigger1:]))
	r.Triggers[1] = TriggerFrom(le.Uint32(buf[offTrigger2:]))
	r.Triggers[2] = TriggerFrom(le.Uint32(buf[offTrigger3:]))
	copy(r.Category[:], buf[offCategory:])

	copy(r.Fillout[:], buf[offFillout:])
	return r, nil
}

// Encode writes r into a fresh buffer of the given size (424 or 512). Bytes
// after the last declared field are zero unless carried in r.Fillout.
func Encode(r Record, size int) ([]byte, error) {
	if !ValidSize(size) {
		return nil, sizeMismatch(size)
	}
	if err := checkWidths(&r, size); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	copy(buf[offTag:], r.Tag[:])
	le.PutUint32(buf[offSize:], uint32(r.Size))
	buf[offAlter] = r.Alter
	buf[offAttrib] = byte(r.Attrib)
	le.PutUint16(buf[offArtNum:], uint16(r.ArtNum))

	copy(buf[offName:], r.Name[:])
	copy(buf[offCopy:], r.Copy[:])
	copy(buf[offPadd:], r.Padd[:])
	copy(buf[offAscLen:], r.AscLen[:])

	putTiming(buf, offStartSecs, offStartHunds, r.Start)
	putTiming(buf, offEndSecs, offEndHunds, r.End)

	copy(buf[offStartDate:], r.StartDate[:])
	copy(buf[offKillDate:], r.KillDate[:])
	buf[offStartHour] = byte(r.StartHour)
	buf[offKillHour] = byte(r.KillHour)

	buf[offDigital] = r.Digital
	le.PutUint16(buf[offSampleRate:], uint16(r.SampleRate))
	buf[offStereo] = r.Stereo
	buf[offCompress] = r.Compress

	le.PutUint32(buf[offEOMStart:], uint32(r.EOMStart))
	le.PutUint16(buf[offEOMLength:], uint16(r.EOMLength))
	le.PutUint32(buf[offAttrib2:], uint32(r.Attrib2))

	le.PutUint32(buf[offHookStart:], r.HookStartMS)
	le.PutUint32(buf[offHookEOM:], r.HookEOMMS)
	le.PutUint32(buf[offHookEnd:], r.HookEndMS)
	le.PutUint32(buf[offCatFontColor:], r.CatFontColor)
	le.PutUint32(buf[offCatColor:], r.CatColor)
	le.PutUint32(buf[offSegEOMPos:], uint32(r.SegEOMPos))

	putTiming(buf, offVTStartSecs, offVTStartHunds, r.VTStart)

	copy(buf[offPriorCat:], r.PriorCat[:])
	copy(buf[offPriorCopy:], r.PriorCopy[:])
	copy(buf[offPriorPadd:], r.PriorPadd[:])
	copy(buf[offPostCat:], r.PostCat[:])
	copy(buf[offPostCopy:], r.PostCopy[:])
	copy(buf[offPostPadd:], r.PostPadd[:])

	copy(buf[offHrCanPlay:], r.HrCanPlay[:])
	copy(buf[offFuture2:], r.Future2[:])

	copy(buf[offArtist:], r.Artist[:])
	copy(buf[offTrivia:], r.Trivia[:])
	copy(buf[offIntro:], r.Intro[:])
	copy(buf[offEnd:], r.EndType[:])
	copy(buf[offYear:], r.Year[:])

	buf[offObsolete2] = r.Obsolete2
	buf[offRecordHour] = byte(r.RecordHour)
	copy(buf[offRecordDate:], r.RecordDate[:])
	le.PutUint16(buf[offMPEGBitrate:], uint16(r.MPEGBitrate))

	le.PutUint16(buf[offPitch:], r.Pitch.Raw())
	le.PutUint16(buf[offPlayLevel:], r.PlayLevel.Raw())
	buf[offLenValid] = r.LenValid
	le.PutUint32(buf[offFileLength:], r.FileLength)
	le.PutUint16(buf[offNewPlayLevel:], r.NewPlayLevel.Raw())
	le.PutUint32(buf[offChopSize:], r.ChopSize.Raw())
	le.PutUint32(buf[offVTEOMOvr:], r.VTEOMOvr)
	le.PutUint32(buf[offDesiredLen:], r.DesiredLen)

	le.PutUint32(buf[offTrigger1:], r.Triggers[0].Raw())
	le.PutUint32(buf[offTrigger2:], r.Triggers[1].Raw())
	le.PutUint32(buf[offTrigger3:], r.Triggers[2].Raw())
	copy(buf[offCategory:], r.Category[:])

	// copy stops at the buffer end; checkWidths guarantees the rest is zero.
	copy(buf[offFillout:], r.Fillout[:])
	return buf, nil
}

// EncodeChecked is the write path: it validates r and refuses to encode a
// record with Error-severity findings. Warnings are returned alongside the
// bytes.
func EncodeChecked(r Record, size int) ([]byte, Report, error) {
	rep := Validate(r)
	if err := rep.Err(); err != nil {
		return nil, rep, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	buf, err := Encode(r, size)
	if err != nil {
		return nil, rep, err
	}
	return buf, rep, nil
}

// checkWidths rejects sub-width values that would be truncated on write.
func checkWidths(r *Record, size int) error {
	if err := r.Pitch.check("pitch"); err != nil {
		return err
	}
	if err := r.PlayLevel.check("playlevel"); err != nil {
		return err
	}
	if err := r.NewPlayLevel.check("newplaylev"); err != nil {
		return err
	}
	if err := r.ChopSize.check("chop_size"); err != nil {
		return err
	}
	for i, t := range r.Triggers {
		if err := t.check(fmt.Sprintf("trigger%d", i+1)); err != nil {
			return err
		}
	}
	for i := size - offFillout; i < len(r.Fillout); i++ {
		if r.Fillout[i] != 0 {
			return overflow("fillout", fmt.Sprintf("nonzero byte at offset %d", offFillout+i), fmt.Sprintf("%d byte record", size))
		}
	}
	return nil
}

func getTiming(buf []byte, secs, hunds int) Timing {
	return Timing{
		Seconds:    int16(le.Uint16(buf[secs:])),
		Hundredths: int16(le.Uint16(buf[hunds:])),
	}
}

func putTiming(buf []byte, secs, hunds int, t Timing) {
	le.PutUint16(buf[secs:], uint16(t.Seconds))
	le.PutUint16(buf[hunds:], uint16(t.Hundredths))
}

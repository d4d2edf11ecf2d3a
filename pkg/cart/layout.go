package cart

// Byte offsets of every stored field. Legacy longs are 32 bits.
const (
	offTag          = 0
	offSize         = 4
	offAlter        = 8
	offAttrib       = 9
	offArtNum       = 10
	offName         = 12
	offCopy         = 55
	offPadd         = 59
	offAscLen       = 60
	offStartSecs    = 65
	offStartHunds   = 67
	offEndSecs      = 69
	offEndHunds     = 71
	offStartDate    = 73
	offKillDate     = 79
	offStartHour    = 85
	offKillHour     = 86
	offDigital      = 87
	offSampleRate   = 88
	offStereo       = 90
	offCompress     = 91
	offEOMStart     = 92
	offEOMLength    = 96
	offAttrib2      = 98
	offHookStart    = 102
	offHookEOM      = 106
	offHookEnd      = 110
	offCatFontColor = 114
	offCatColor     = 118
	offSegEOMPos    = 122
	offVTStartSecs  = 126
	offVTStartHunds = 128
	offPriorCat     = 130
	offPriorCopy    = 133
	offPriorPadd    = 137
	offPostCat      = 138
	offPostCopy     = 141
	offPostPadd     = 145
	offHrCanPlay    = 146
	offFuture2      = 167
	offArtist       = 275
	offTrivia       = 309
	offIntro        = 343
	offEnd          = 345
	offYear         = 346
	offObsolete2    = 350
	offRecordHour   = 351
	offRecordDate   = 352
	offMPEGBitrate  = 358
	offPitch        = 360
	offPlayLevel    = 362
	offLenValid     = 364
	offFileLength   = 365
	offNewPlayLevel = 369
	offChopSize     = 371
	offVTEOMOvr     = 375
	offDesiredLen   = 379
	offTrigger1     = 383
	offTrigger2     = 387
	offTrigger3     = 391
	offCategory     = 395
	offFillout      = 399
)

// FieldKind classifies how a stored field is encoded and checked.
type FieldKind uint8

const (
	KindInt       FieldKind = iota // little-endian integer
	KindBits                       // bit set or bitmap
	KindFlagged                    // high bit marks the payload valid
	KindText                       // space padded text
	KindSpaceFill                  // must be all space
	KindZeroFill                   // reserved, must be zero
	KindDigits                     // ASCII digits (dates, lengths)
	KindHour                       // hour + 128
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBits:
		return "bits"
	case KindFlagged:
		return "flagged"
	case KindText:
		return "text"
	case KindSpaceFill:
		return "space-fill"
	case KindZeroFill:
		return "zero-fill"
	case KindDigits:
		return "digits"
	case KindHour:
		return "hour"
	default:
		return "unknown"
	}
}

// FieldSpec describes one stored field.
type FieldSpec struct {
	Name   string
	Offset int
	Width  int
	Kind   FieldKind
}

// Layout lists the stored fields in declaration order. The fillout width is
// given for an embedded record; a stand-alone record extends it to 113.
var Layout = []FieldSpec{
	{"tag", offTag, 4, KindText},
	{"size", offSize, 4, KindInt},
	{"alter", offAlter, 1, KindZeroFill},
	{"attrib", offAttrib, 1, KindBits},
	{"artnum", offArtNum, 2, KindZeroFill},
	{"name", offName, 43, KindText},
	{"copy", offCopy, 4, KindText},
	{"padd", offPadd, 1, KindSpaceFill},
	{"asclen", offAscLen, 5, KindDigits},
	{"start_seconds", offStartSecs, 2, KindInt},
	{"start_hundredths", offStartHunds, 2, KindInt},
	{"end_seconds", offEndSecs, 2, KindInt},
	{"end_hundredths", offEndHunds, 2, KindInt},
	{"start_date", offStartDate, 6, KindDigits},
	{"kill_date", offKillDate, 6, KindDigits},
	{"start_hour", offStartHour, 1, KindHour},
	{"kill_hour", offKillHour, 1, KindHour},
	{"digital", offDigital, 1, KindText},
	{"sample_rate", offSampleRate, 2, KindInt},
	{"stereo", offStereo, 1, KindText},
	{"compress", offCompress, 1, KindInt},
	{"eom_start", offEOMStart, 4, KindInt},
	{"eom_length", offEOMLength, 2, KindInt},
	{"attrib2", offAttrib2, 4, KindBits},
	{"hook_start_ms", offHookStart, 4, KindInt},
	{"hook_eom_ms", offHookEOM, 4, KindInt},
	{"hook_end_ms", offHookEnd, 4, KindInt},
	{"cat_font_color", offCatFontColor, 4, KindInt},
	{"cat_color", offCatColor, 4, KindInt},
	{"seg_eom_pos", offSegEOMPos, 4, KindInt},
	{"vt_start_seconds", offVTStartSecs, 2, KindInt},
	{"vt_start_hundredths", offVTStartHunds, 2, KindInt},
	{"prior_cat", offPriorCat, 3, KindText},
	{"prior_copy", offPriorCopy, 4, KindText},
	{"prior_padd", offPriorPadd, 1, KindSpaceFill},
	{"post_cat", offPostCat, 3, KindText},
	{"post_copy", offPostCopy, 4, KindText},
	{"post_padd", offPostPadd, 1, KindSpaceFill},
	{"hrcanplay", offHrCanPlay, 21, KindBits},
	{"future2", offFuture2, 108, KindZeroFill},
	{"artist", offArtist, 34, KindText},
	{"trivia", offTrivia, 34, KindText},
	{"intro", offIntro, 2, KindText},
	{"end", offEnd, 1, KindText},
	{"year", offYear, 4, KindText},
	{"obsolete2", offObsolete2, 1, KindZeroFill},
	{"record_hour", offRecordHour, 1, KindHour},
	{"record_date", offRecordDate, 6, KindDigits},
	{"mpeg_bitrate", offMPEGBitrate, 2, KindInt},
	{"pitch", offPitch, 2, KindFlagged},
	{"playlevel", offPlayLevel, 2, KindFlagged},
	{"lenvalid", offLenValid, 1, KindBits},
	{"file_length", offFileLength, 4, KindInt},
	{"newplaylev", offNewPlayLevel, 2, KindFlagged},
	{"chop_size", offChopSize, 4, KindFlagged},
	{"vteomovr", offVTEOMOvr, 4, KindInt},
	{"desired_length", offDesiredLen, 4, KindInt},
	{"trigger1", offTrigger1, 4, KindInt},
	{"trigger2", offTrigger2, 4, KindInt},
	{"trigger3", offTrigger3, 4, KindInt},
	{"category", offCategory, 4, KindText},
	{"fillout", offFillout, SizeEmbedded - offFillout, KindZeroFill},
}

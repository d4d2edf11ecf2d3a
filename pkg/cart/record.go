package cart

// Record is the structured form of a cart chunk. Text fields are kept as
// fixed arrays exactly as stored; use Text/SetText for logical strings.
//
// Record is a plain value: copying it copies every field.
type Record struct {
	Tag    [4]byte
	Size   int32 // declared total size, 424 or 512
	Alter  uint8 // scratch, zero
	Attrib Attrib
	ArtNum int16 // scratch, zero

	Name   [43]byte // title, space padded
	Copy   [4]byte  // cart number, e.g. "1234" or "AZ22"
	Padd   [1]byte  // space
	AscLen [5]byte  // " 2:30" (MM:SS) or "10230" (HMMSS)

	Start Timing // cue-in / INTRO
	End   Timing // EOD, measured from Start

	StartDate Date
	KillDate  Date
	StartHour Hour
	KillHour  Hour

	Digital    byte  // 'D' or 'A'
	SampleRate int16 // Hz / 100
	Stereo     byte  // 'S' or 'M'
	Compress   uint8

	EOMStart  int32 // tenths from audio start
	EOMLength int16 // hundredths

	Attrib2 Attrib2

	HookStartMS uint32
	HookEOMMS   uint32
	HookEndMS   uint32

	CatFontColor uint32
	CatColor     uint32
	SegEOMPos    int32

	VTStart Timing // EOM override for a following voice track

	PriorCat  [3]byte
	PriorCopy [4]byte
	PriorPadd [1]byte
	PostCat   [3]byte
	PostCopy  [4]byte
	PostPadd  [1]byte

	HrCanPlay Dayparting
	Future2   [108]byte // reserved, zero

	Artist  [34]byte
	Trivia  [34]byte
	Intro   [2]byte // talk-up seconds, e.g. "12"
	EndType [1]byte // nature of the song ending
	Year    [4]byte

	Obsolete2  uint8 // zero
	RecordHour Hour
	RecordDate Date

	MPEGBitrate int16 // kbit/s

	Pitch        Flagged16 // tenths of a percent of sample rate
	PlayLevel    Flagged16
	LenValid     uint8
	FileLength   uint32
	NewPlayLevel Flagged16 // tenths of a percent
	ChopSize     Flagged32 // hundredths removed from the middle
	VTEOMOvr     uint32    // ms subtracted from precut EOM
	DesiredLen   uint32    // hundredths, stretch+squeeze target

	Triggers [3]Trigger
	Category [4]byte

	// Fillout holds whatever follows the last declared field: 25 bytes for
	// an embedded record, 113 for a stand-alone one. It must be zero.
	Fillout [SizeStandalone - offFillout]byte
}

// New returns a fresh record for the write path with every text and padding
// region filled with spaces, sentinels in place and pitch at 100.0%.
func New(size int) (Record, error) {
	if !ValidSize(size) {
		return Record{}, sizeMismatch(size)
	}
	var r Record
	copy(r.Tag[:], Tag)
	r.Size = int32(size)
	for _, f := range spaceFields(&r) {
		fill(f, ' ')
	}
	copy(r.AscLen[:], " 0:00")
	r.StartDate = dateLiteral(StartDateUnset)
	r.KillDate = dateLiteral(KillDateUnset)
	r.StartHour = HourAll
	r.KillHour = HourAll
	r.RecordHour = HourAll
	r.Pitch = Flagged16{Valid: true, Value: 1000}
	fill(r.RecordDate[:], ' ')
	return r, nil
}

// spaceFields lists every region stored space padded.
func spaceFields(r *Record) [][]byte {
	return [][]byte{
		r.Name[:], r.Copy[:], r.Padd[:], r.AscLen[:],
		r.PriorCat[:], r.PriorCopy[:], r.PriorPadd[:],
		r.PostCat[:], r.PostCopy[:], r.PostPadd[:],
		r.Artist[:], r.Trivia[:], r.Intro[:], r.EndType[:], r.Year[:],
		r.Category[:],
	}
}

func fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}

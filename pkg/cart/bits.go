package cart

// Attrib is the primary eight bit attribute set.
type Attrib uint8

const (
	AttribRotationParent Attrib = 1 << 0 // parent of an (obsolete) rotation set
	AttribLengthToEOM    Attrib = 1 << 1 // asclen measures to EOM, not end of audio
	AttribLengthHMMSS    Attrib = 1 << 2 // asclen is HMMSS instead of MM:SS
	AttribVoiceTrack     Attrib = 1 << 3
	AttribRotationTable  Attrib = 1 << 4
	AttribReserved5      Attrib = 1 << 5
	AttribSegmented      Attrib = 1 << 6
	AttribExtended       Attrib = 1 << 7 // attrib2 is valid
)

func (a Attrib) Has(bit Attrib) bool { return a&bit != 0 }

func (a Attrib) With(bit Attrib, on bool) Attrib {
	if on {
		return a | bit
	}
	return a &^ bit
}

// Attrib2 is the extended attribute set. It is only trustworthy when
// AttribExtended is set on the primary set.
type Attrib2 uint32

const (
	Attrib2NoInternet      Attrib2 = 1 << 0
	Attrib2VTEOMOverride   Attrib2 = 1 << 1
	Attrib2DesiredLength   Attrib2 = 1 << 2
	Attrib2Triggers        Attrib2 = 1 << 3
	Attrib2Hooks           Attrib2 = 1 << 4
	Attrib2DeleteAfterPlay Attrib2 = 1 << 5
	Attrib2ArchiveAfter    Attrib2 = 1 << 6
	Attrib2NetCatch        Attrib2 = 1 << 7
	Attrib2Dayparting      Attrib2 = 1 << 8

	// Attrib2Known covers every documented bit. Anything else must be zero
	// when the extension-valid gate is set.
	Attrib2Known Attrib2 = 1<<9 - 1
)

func (a Attrib2) Has(bit Attrib2) bool { return a&bit != 0 }

func (a Attrib2) With(bit Attrib2, on bool) Attrib2 {
	if on {
		return a | bit
	}
	return a &^ bit
}

const (
	flag16 uint16 = 1 << 15
	flag32 uint32 = 1 << 31

	mask16 = flag16 - 1
	mask32 = flag32 - 1
)

// Flagged16 is a 16-bit word whose high bit marks the payload valid.
type Flagged16 struct {
	Valid bool
	Value uint16 // 15 bits
}

// Flagged16From splits a raw word.
func Flagged16From(raw uint16) Flagged16 {
	return Flagged16{Valid: raw&flag16 != 0, Value: raw & mask16}
}

// Raw rebuilds the stored word. Value is assumed to fit 15 bits.
func (f Flagged16) Raw() uint16 {
	v := f.Value & mask16
	if f.Valid {
		v |= flag16
	}
	return v
}

func (f Flagged16) check(field string) error {
	if f.Value > mask16 {
		return overflow(field, f.Value, "15 bits")
	}
	return nil
}

// Flagged32 is a 32-bit word whose high bit marks the payload valid.
type Flagged32 struct {
	Valid bool
	Value uint32 // 31 bits
}

func Flagged32From(raw uint32) Flagged32 {
	return Flagged32{Valid: raw&flag32 != 0, Value: raw & mask32}
}

func (f Flagged32) Raw() uint32 {
	v := f.Value & mask32
	if f.Valid {
		v |= flag32
	}
	return v
}

func (f Flagged32) check(field string) error {
	if f.Value > mask32 {
		return overflow(field, f.Value, "31 bits")
	}
	return nil
}

// Trigger is one trigger slot: a source ID in the high byte and a position
// in tenths of a second from the start of audio in the low three bytes.
type Trigger struct {
	Source uint8
	Tenths uint32 // 24 bits
}

const triggerMask = 1<<24 - 1

func TriggerFrom(raw uint32) Trigger {
	return Trigger{Source: uint8(raw >> 24), Tenths: raw & triggerMask}
}

func (t Trigger) Raw() uint32 {
	return uint32(t.Source)<<24 | t.Tenths&triggerMask
}

func (t Trigger) IsZero() bool { return t.Source == 0 && t.Tenths == 0 }

func (t Trigger) check(field string) error {
	if t.Tenths > triggerMask {
		return overflow(field, t.Tenths, "24 bits")
	}
	return nil
}

// lenValidFlag is the high bit of lenvalid; the low seven bits are reserved
// flags that must be zero while it is set.
const lenValidFlag uint8 = 1 << 7

package cart

import (
	"math/bits"
	"time"
)

// HoursPerWeek is the number of bits in the dayparting map.
const HoursPerWeek = 7 * 24

// Dayparting is the 168-bit hour-of-week map. Bits are MSB first; bit 0 is
// Sunday 00:00-01:00.
type Dayparting [21]byte

func hourIndex(day time.Weekday, hour int) (int, bool) {
	if day < time.Sunday || day > time.Saturday || hour < 0 || hour > 23 {
		return 0, false
	}
	return int(day)*24 + hour, true
}

// Bit reports the bit at index i (0..167).
func (d Dayparting) Bit(i int) bool {
	if i < 0 || i >= HoursPerWeek {
		return false
	}
	return d[i/8]&(0x80>>(i%8)) != 0
}

func (d *Dayparting) SetBit(i int, on bool) {
	if i < 0 || i >= HoursPerWeek {
		return
	}
	m := byte(0x80 >> (i % 8))
	if on {
		d[i/8] |= m
	} else {
		d[i/8] &^= m
	}
}

// Allowed reports whether playback is permitted in the given hour.
func (d Dayparting) Allowed(day time.Weekday, hour int) bool {
	i, ok := hourIndex(day, hour)
	return ok && d.Bit(i)
}

func (d *Dayparting) Set(day time.Weekday, hour int, on bool) {
	if i, ok := hourIndex(day, hour); ok {
		d.SetBit(i, on)
	}
}

func (d Dayparting) AllowedAt(t time.Time) bool {
	return d.Allowed(t.Weekday(), t.Hour())
}

// Count returns the number of permitted hours.
func (d Dayparting) Count() int {
	n := 0
	for _, b := range d {
		n += bits.OnesCount8(b)
	}
	return n
}

func (d Dayparting) IsZero() bool { return d == Dayparting{} }

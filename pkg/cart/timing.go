package cart

import (
	"fmt"
	"time"
)

// Timing is one fractional-seconds quantity stored as two signed 16-bit
// words, e.g. 12.90s is {Seconds: 12, Hundredths: 90}.
type Timing struct {
	Seconds    int16
	Hundredths int16
}

func (t Timing) IsZero() bool { return t.Seconds == 0 && t.Hundredths == 0 }

func (t Timing) Duration() time.Duration {
	return time.Duration(t.Seconds)*time.Second + time.Duration(t.Hundredths)*10*time.Millisecond
}

func (t Timing) String() string {
	return fmt.Sprintf("%d.%02d", t.Seconds, t.Hundredths)
}

// TimingFrom splits d into seconds and hundredths, truncating below 10ms.
// Durations beyond the range of the seconds word overflow.
func TimingFrom(d time.Duration) (Timing, error) {
	cs := d / (10 * time.Millisecond)
	sec := cs / 100
	if sec > 1<<15-1 || sec < -(1<<15) {
		return Timing{}, overflow("timing", d, "16-bit seconds")
	}
	return Timing{Seconds: int16(sec), Hundredths: int16(cs % 100)}, nil
}

// Hour is a stored hour byte: hour-of-day plus 128. Anything up to and
// including 128 means "all hours".
type Hour uint8

const (
	hourFlag     Hour = 128
	HourAll           = hourFlag
	hourLastEver      = hourFlag + 23
)

// HourOf encodes an hour of day (0..23).
func HourOf(h int) (Hour, error) {
	if h < 0 || h > 23 {
		return 0, overflow("hour", h, "0..23")
	}
	return hourFlag + Hour(h), nil
}

// Resolve returns the hour of day, with all reporting the "all hours"
// sentinel. ok is false for bytes above 151.
func (h Hour) Resolve() (hour int, all bool, ok bool) {
	switch {
	case h <= hourFlag:
		return 0, true, true
	case h <= hourLastEver:
		return int(h - hourFlag), false, true
	default:
		return 0, false, false
	}
}

// Date is an ASCII MMDDYY date.
type Date [6]byte

// DateOf formats t as MMDDYY.
func DateOf(t time.Time) Date {
	var d Date
	copy(d[:], t.Format("010206"))
	return d
}

func dateLiteral(s string) Date {
	var d Date
	copy(d[:], s)
	return d
}

func (d Date) String() string { return string(d[:]) }

// Time parses the date. Two digit years pivot the way time.Parse does.
func (d Date) Time() (time.Time, error) {
	return time.Parse("010206", string(d[:]))
}

func (d Date) blank() bool {
	for _, c := range d {
		if c != ' ' && c != 0 {
			return false
		}
	}
	return true
}

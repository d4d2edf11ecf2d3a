package cart

import (
	"bytes"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// Text fields use the legacy host code page.
var codePage = charmap.Windows1252

// Text decodes a space padded field and strips the padding. Trailing NULs
// written by non-conforming tools are stripped as well.
func Text(field []byte) string {
	b := bytes.TrimRight(field, " \x00")
	s, err := codePage.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// SetText stores s in dst, right padded with spaces.
func SetText(dst []byte, s string) error {
	return setText("text", dst, s)
}

func setText(field string, dst []byte, s string) error {
	b, err := codePage.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return overflow(field, s, "Windows-1252")
	}
	if len(b) > len(dst) {
		return overflow(field, s, widthLimit(len(dst)))
	}
	n := copy(dst, b)
	fill(dst[n:], ' ')
	return nil
}

func widthLimit(n int) string {
	return strconv.Itoa(n) + " bytes"
}

func (r Record) Title() string        { return Text(r.Name[:]) }
func (r Record) CartNumber() string   { return Text(r.Copy[:]) }
func (r Record) ArtistName() string   { return Text(r.Artist[:]) }
func (r Record) TriviaText() string   { return Text(r.Trivia[:]) }
func (r Record) CategoryCode() string { return Text(r.Category[:]) }

func (r *Record) SetTitle(s string) error      { return setText("name", r.Name[:], s) }
func (r *Record) SetCartNumber(s string) error { return setText("copy", r.Copy[:], s) }
func (r *Record) SetArtist(s string) error     { return setText("artist", r.Artist[:], s) }
func (r *Record) SetTrivia(s string) error     { return setText("trivia", r.Trivia[:], s) }
func (r *Record) SetCategory(s string) error   { return setText("category", r.Category[:], s) }

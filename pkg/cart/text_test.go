package cart

import (
	"errors"
	"testing"
)

func TestSetText(t *testing.T) {
	t.Parallel()

	var r Record
	if err := r.SetTitle("Café del Mar"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if r.Name[3] != 0xE9 {
		t.Fatalf("expected Windows-1252 é, got %#x", r.Name[3])
	}
	if r.Name[42] != ' ' {
		t.Fatalf("title not space padded: %q", r.Name[:])
	}
	if got := r.Title(); got != "Café del Mar" {
		t.Fatalf("title mismatch: got %q", got)
	}

	if err := r.SetCartNumber("12345"); !errors.Is(err, ErrFieldOverflow) {
		t.Fatalf("got %v want ErrFieldOverflow", err)
	}
	if err := r.SetArtist("日本"); !errors.Is(err, ErrFieldOverflow) {
		t.Fatalf("got %v want ErrFieldOverflow for unrepresentable text", err)
	}
	var fe *FieldError
	if err := r.SetCategory("SPORTS"); !errors.As(err, &fe) || fe.Field != "category" {
		t.Fatalf("field error mismatch: %v", err)
	}
}

func TestTextTrimsPadding(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   []byte
		want string
	}{
		{[]byte("AZ22"), "AZ22"},
		{[]byte("AZ  "), "AZ"},
		{[]byte("    "), ""},
		{[]byte{'A', 0, 0, 0}, "A"},
		{[]byte(" A B  "), " A B"},
	} {
		if got := Text(tt.in); got != tt.want {
			t.Fatalf("Text(%q): got %q want %q", tt.in, got, tt.want)
		}
	}
}

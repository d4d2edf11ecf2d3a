package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samcharles93/cartchunk/internal/cartstore"
	"github.com/samcharles93/cartchunk/pkg/cart"
	"github.com/samcharles93/cartchunk/pkg/riff"
)

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	// Keep the user's real config out of the test.
	t.Setenv(envConfig, filepath.Join(t.TempDir(), "none.yaml"))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	argv := append([]string{"scot", "--log-level", "error"}, args...)
	if err := app.Run(context.Background(), argv); err != nil {
		t.Fatalf("scot %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestNewSetInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AZ22.cart")

	runApp(t, "new", "--title", "Morning Promo", "--cart", "AZ22", "--kill-date", "2025-12-31", path)
	runApp(t, "set", "--artist", "Station Voice", "--start-hour", "6", path)

	f, err := cartstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r := f.Record
	if r.Title() != "Morning Promo" || r.CartNumber() != "AZ22" || r.ArtistName() != "Station Voice" {
		t.Fatalf("text mismatch: %q %q %q", r.Title(), r.CartNumber(), r.ArtistName())
	}
	if r.KillDate.String() != "123125" {
		t.Fatalf("kill date mismatch: %q", r.KillDate)
	}
	if r.StartHour != 134 {
		t.Fatalf("start hour mismatch: got %d want 134", r.StartHour)
	}
	if f.Size != cart.SizeStandalone {
		t.Fatalf("size mismatch: got %d", f.Size)
	}

	out := runApp(t, "inspect", path)
	for _, want := range []string{"Morning Promo", "start_hour", "kill_date", "2025-12-31", "findings: 0 error(s), 0 warning(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}

	out = runApp(t, "validate", path)
	if !strings.Contains(out, path+": ok") {
		t.Fatalf("validate output mismatch:\n%s", out)
	}
}

func TestExportImportIntoWAVE(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.cart")
	jsonPath := filepath.Join(dir, "src.json")
	wav := filepath.Join(dir, "spot.wav")

	runApp(t, "new", "--title", "Traffic Bed", "--cart", "TB01", src)
	runApp(t, "export", "--out", jsonPath, src)

	image := riff.NewWAVE(
		riff.ChunkPayload{ID: riff.ID("fmt "), Data: make([]byte, 16)},
		riff.ChunkPayload{ID: riff.ID("data"), Data: make([]byte, 8)},
	)
	if err := os.WriteFile(wav, image, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	runApp(t, "import", "--size", "424", jsonPath, wav)

	f, err := cartstore.Open(wav)
	if err != nil {
		t.Fatalf("open wav: %v", err)
	}
	if !f.Embedded || f.Size != cart.SizeEmbedded {
		t.Fatalf("placement mismatch: embedded=%v size=%d", f.Embedded, f.Size)
	}
	if f.Record.Title() != "Traffic Bed" || f.Record.CartNumber() != "TB01" {
		t.Fatalf("text mismatch: %q %q", f.Record.Title(), f.Record.CartNumber())
	}
	if len(f.Report.Violations) != 0 {
		t.Fatalf("unexpected findings: %s", f.Report)
	}
}

func TestParseDateAndHour(t *testing.T) {
	d, err := parseDate("none", cart.KillDateUnset)
	if err != nil || d.String() != cart.KillDateUnset {
		t.Fatalf("none mismatch: %q %v", d, err)
	}
	d, err = parseDate("2024-02-29", cart.StartDateUnset)
	if err != nil || d.String() != "022924" {
		t.Fatalf("date mismatch: %q %v", d, err)
	}
	if _, err := parseDate("02/29/2024", cart.StartDateUnset); err == nil {
		t.Fatalf("expected error for non ISO date")
	}

	h, err := parseHour("all")
	if err != nil || h != cart.HourAll {
		t.Fatalf("all mismatch: %d %v", h, err)
	}
	h, err = parseHour("23")
	if err != nil || h != 151 {
		t.Fatalf("hour mismatch: %d %v", h, err)
	}
	if _, err := parseHour("24"); err == nil {
		t.Fatalf("expected error for hour 24")
	}
}

func TestServeReadTimeout(t *testing.T) {
	t.Parallel()

	srv := &http.Server{}
	if err := withReadTimeout(7 * time.Second)(srv); err != nil {
		t.Fatalf("before serve: %v", err)
	}
	if srv.ReadTimeout != 7*time.Second {
		t.Fatalf("read timeout mismatch: got %v want %v", srv.ReadTimeout, 7*time.Second)
	}
	if srv.ReadHeaderTimeout != 7*time.Second {
		t.Fatalf("read header timeout mismatch: got %v want %v", srv.ReadHeaderTimeout, 7*time.Second)
	}
}

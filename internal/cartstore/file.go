// Package cartstore loads and saves cart records on disk, either embedded
// in a WAV file's scot chunk or as a stand-alone record file.
package cartstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samcharles93/cartchunk/pkg/cart"
	"github.com/samcharles93/cartchunk/pkg/riff"
)

var ErrNoCart = errors.New("cartstore: no scot chunk")

type File struct {
	Path     string
	Record   cart.Record
	Report   cart.Report
	Size     int  // buffer length the record was read from
	Embedded bool // true when the record lives inside a WAV file
}

// IsWAVE reports whether path is treated as a RIFF/WAVE container.
func IsWAVE(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave", ".bwf":
		return true
	}
	return false
}

// Open reads and validates the cart record stored at path.
func Open(path string) (*File, error) {
	if IsWAVE(path) {
		return openWAVE(path)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(path, buf, false)
}

func openWAVE(path string) (*File, error) {
	rf, err := riff.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = rf.Close() }()

	c, ok := rf.Chunk(riff.Cart)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoCart)
	}
	buf, trailer, err := recordBytes(rf.ChunkData(c))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := decode(path, buf, true)
	if err != nil {
		return nil, err
	}
	if n := nonzero(trailer); n > 0 {
		f.Report.Violations = append(f.Report.Violations, cart.Violation{
			Field:    "fillout",
			Severity: cart.SeverityWarning,
			Kind:     cart.KindStructuralViolation,
			Message:  fmt.Sprintf("chunk trailer has %d nonzero byte(s)", n),
		})
	}
	return f, nil
}

// The chunk header doubles as the record's tag and size fields, so a
// record of n bytes travels as an n byte payload holding bytes 8..n of the
// record followed by 8 bytes of zero fill.
const chunkHeaderSize = 8

// recordBytes rebuilds the record buffer from a scot chunk payload. The
// returned trailer is the fill beyond the record's last byte.
func recordBytes(payload []byte) (buf, trailer []byte, err error) {
	n := len(payload)
	if !cart.ValidSize(n) {
		return nil, nil, fmt.Errorf("%w: scot chunk is %d bytes, want %d or %d", cart.ErrSizeMismatch, n, cart.SizeEmbedded, cart.SizeStandalone)
	}
	// Copy out of the mapping before it is released.
	buf = make([]byte, n)
	copy(buf[0:4], riff.Cart[:])
	binary.LittleEndian.PutUint32(buf[4:8], uint32(n))
	copy(buf[chunkHeaderSize:], payload[:n-chunkHeaderSize])
	return buf, payload[n-chunkHeaderSize:], nil
}

// chunkPayload is the inverse of recordBytes.
func chunkPayload(buf []byte) []byte {
	out := make([]byte, len(buf))
	copy(out, buf[chunkHeaderSize:])
	return out
}

func nonzero(b []byte) int {
	n := 0
	for _, c := range b {
		if c != 0 {
			n++
		}
	}
	return n
}

func decode(path string, buf []byte, embedded bool) (*File, error) {
	rec, err := cart.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{
		Path:     path,
		Record:   rec,
		Report:   cart.Validate(rec),
		Size:     len(buf),
		Embedded: embedded,
	}, nil
}

// DefaultSize is the buffer length used for path when the record does not
// declare a usable one.
func DefaultSize(path string) int {
	if IsWAVE(path) {
		return cart.SizeEmbedded
	}
	return cart.SizeStandalone
}

// Save encodes rec through the checked write path and stores it at path.
// WAV files must already exist; their scot chunk is replaced or appended,
// with the chunk header standing in for the record's tag and size.
// The write is atomic: data goes to a temporary file that is renamed over
// path.
func Save(path string, rec cart.Record) (cart.Report, error) {
	size := int(rec.Size)
	if !cart.ValidSize(size) {
		size = DefaultSize(path)
	}
	buf, rep, err := cart.EncodeChecked(rec, size)
	if err != nil {
		return rep, err
	}

	if IsWAVE(path) {
		wav, err := os.ReadFile(path)
		if err != nil {
			return rep, err
		}
		if buf, err = riff.ReplaceChunk(wav, riff.Cart, chunkPayload(buf)); err != nil {
			return rep, fmt.Errorf("%s: %w", path, err)
		}
	}
	return rep, writeAtomic(path, buf)
}

func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}

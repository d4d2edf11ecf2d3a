package riff

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type File struct {
	Data   []byte
	Form   ChunkID
	Chunks []Chunk

	mmapped bool
}

// Open maps a RIFF file read-only and walks its chunk list.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	size := int(size64)
	if size < headerSize {
		return nil, ErrNotRIFF
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		rf, parseErr := parse(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return rf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parse(data, false)
}

// OpenReaderAt loads a RIFF file from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrCorruptFile
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parse(data, false)
}

// Parse walks the chunk list of an in-memory RIFF image.
func Parse(data []byte) (*File, error) {
	return parse(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parse(data []byte, mmapped bool) (*File, error) {
	if len(data) < headerSize || ChunkID(data[0:4]) != idRIFF {
		return nil, ErrNotRIFF
	}
	form := ChunkID(data[8:12])
	if form != idWAVE {
		return nil, fmt.Errorf("%w: form type %q", ErrNotRIFF, form.String())
	}

	// Trust the RIFF size only as far as the data goes; writers that crash
	// mid-file leave it stale.
	end := len(data)
	if declared := int64(binary.LittleEndian.Uint32(data[4:8])) + 8; declared < int64(end) {
		end = int(declared)
	}

	var chunks []Chunk
	for off := headerSize; off+chunkHeaderSize <= end; {
		c := Chunk{
			ID:     ChunkID(data[off : off+4]),
			Offset: off + chunkHeaderSize,
			Size:   int(binary.LittleEndian.Uint32(data[off+4 : off+8])),
		}
		if c.Size < 0 || c.Offset+c.Size > len(data) {
			return nil, fmt.Errorf("%w: chunk %q at %d runs past end of file", ErrCorruptFile, c.ID.String(), off)
		}
		chunks = append(chunks, c)
		off = c.End()
	}

	return &File{Data: data, Form: form, Chunks: chunks, mmapped: mmapped}, nil
}

// Chunk returns the first chunk with the given id.
func (f *File) Chunk(id ChunkID) (Chunk, bool) {
	if f == nil {
		return Chunk{}, false
	}
	for _, c := range f.Chunks {
		if c.ID == id {
			return c, true
		}
	}
	return Chunk{}, false
}

// ChunkData returns the payload bytes of c.
func (f *File) ChunkData(c Chunk) []byte {
	if f == nil || c.Offset < 0 || c.Offset+c.Size > len(f.Data) {
		return nil
	}
	return f.Data[c.Offset : c.Offset+c.Size]
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil {
		return nil
	}
	var err error
	if f.mmapped && f.Data != nil {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Chunks = nil
	f.mmapped = false
	return err
}

// Package riff locates chunks inside RIFF/WAVE files.
//
// Only the top level chunk list is walked. Chunk payloads are returned as
// slices of the file data, so they stay valid until the File is closed.
package riff

import "errors"

var (
	ErrNotRIFF     = errors.New("riff: not a RIFF/WAVE file")
	ErrCorruptFile = errors.New("riff: corrupt file")
)

const (
	headerSize      = 12 // "RIFF", size, form type
	chunkHeaderSize = 8  // id, size
)

// ChunkID is a four character chunk identifier.
type ChunkID [4]byte

func ID(s string) ChunkID {
	var id ChunkID
	copy(id[:], s)
	return id
}

func (id ChunkID) String() string { return string(id[:]) }

var (
	idRIFF = ID("RIFF")
	idWAVE = ID("WAVE")

	// Cart is the identifier of the cart chunk.
	Cart = ID("scot")
)

// Chunk describes one chunk in the top level list. Offset points at the
// payload, past the chunk header. Size is the declared payload length.
type Chunk struct {
	ID     ChunkID
	Offset int
	Size   int
}

// End is the offset of the next chunk header, including the pad byte.
func (c Chunk) End() int {
	return c.Offset + c.Size + c.Size&1
}

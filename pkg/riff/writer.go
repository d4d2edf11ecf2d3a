package riff

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ReplaceChunk returns a copy of the RIFF image data with the payload of
// the first chunk named id replaced. The chunk is appended when missing.
// The RIFF size field is patched to match the result.
func ReplaceChunk(data []byte, id ChunkID, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: chunk %q too large", ErrCorruptFile, id.String())
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	var out []byte
	if c, ok := f.Chunk(id); ok {
		start := c.Offset - chunkHeaderSize
		rest := c.End()
		if rest > len(data) {
			rest = len(data)
		}
		out = make([]byte, 0, len(data)-(rest-start)+chunkHeaderSize+len(payload)+1)
		out = append(out, data[:start]...)
		out = appendChunk(out, id, payload)
		out = append(out, data[rest:]...)
	} else {
		end := headerSize
		if n := len(f.Chunks); n > 0 {
			end = f.Chunks[n-1].End()
		}
		if end > len(data) {
			// Last chunk's pad byte is missing.
			end = len(data)
		}
		out = make([]byte, 0, end+chunkHeaderSize+len(payload)+1)
		out = append(out, data[:end]...)
		if len(out)&1 == 1 {
			out = append(out, 0)
		}
		out = appendChunk(out, id, payload)
	}

	if uint64(len(out)-8) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: result too large", ErrCorruptFile)
	}
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out, nil
}

func appendChunk(out []byte, id ChunkID, payload []byte) []byte {
	out = append(out, id[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	if len(payload)&1 == 1 {
		out = append(out, 0)
	}
	return out
}

// NewWAVE builds a minimal RIFF/WAVE image from the given chunks, in order.
func NewWAVE(chunks ...ChunkPayload) []byte {
	out := make([]byte, headerSize, headerSize+64)
	copy(out[0:4], idRIFF[:])
	copy(out[8:12], idWAVE[:])
	for _, c := range chunks {
		out = appendChunk(out, c.ID, c.Data)
	}
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

// ChunkPayload pairs an id with payload bytes for NewWAVE.
type ChunkPayload struct {
	ID   ChunkID
	Data []byte
}

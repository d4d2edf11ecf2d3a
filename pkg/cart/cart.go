// Package cart implements the Cart Chunk (Scott Chunk) record.
//
// A cart record is a fixed-size little-endian structure used by broadcast
// automation systems to describe a playable audio cart. It is 424 bytes when
// embedded in a RIFF chunk and 512 bytes when stored on its own.
//
// Decode and Encode are purely mechanical. Validate reports structural and
// semantic findings and Record.Effective resolves flag-gated fields; neither
// ever mutates the record.
package cart

// Cart chunk global constants must never change.
const (
	// Tag is the four byte identifier at offset 0.
	Tag = "scot"

	// SizeEmbedded is the record size inside a RIFF-style container.
	SizeEmbedded = 424

	// SizeStandalone is the record size when persisted on its own.
	SizeStandalone = 512

	// PitchLevelSentinel in the pitch word (high bit clear) redirects the
	// playback level to the percent based newplaylev field.
	PitchLevelSentinel uint16 = 21845

	// Date sentinels.
	StartDateUnset = "000000"
	KillDateUnset  = "999999"
)

// ValidSize reports whether n is one of the two permitted record sizes.
func ValidSize(n int) bool {
	return n == SizeEmbedded || n == SizeStandalone
}

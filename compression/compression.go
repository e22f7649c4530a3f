/*
Package compression implements the block compression used by LittleSoundDj
to store songs on the cartridge save RAM.

A song is the $8000 bytes of working memory (SRAM) squeezed into one or more
$200 byte blocks. The stream is mostly literal bytes with three escapes:

	$c0 $c0        literal $c0
	$c0 vv nn      vv repeated nn times
	$e0 $e0        literal $e0
	$e0 $f1        default instrument (16 bytes)
	$e0 $f0        default wave (16 bytes)
	$e0 $ff        end of song
	$e0 nn         continue in block nn

Blocks belonging to one song need not be contiguous; the "continue" token is
what links them together.
*/
package compression

import "errors"

const (
	// BlockSize is the size in bytes of each compressed block
	BlockSize = 0x200
	// BlockCount is the number of blocks in a save file
	BlockCount = 0xbe

	bankSize  = 0x2000
	bankCount = 4

	// SRAMSize is the size in bytes of the uncompressed working memory
	SRAMSize = bankSize * bankCount
)

const (
	rleByte     = 0xc0
	specialByte = 0xe0
	defInstByte = 0xf1
	defWaveByte = 0xf0
	eofByte     = 0xff

	// Unpatched chain pointers in exported song files
	placeholder = 'x'

	// Space that must always be left for a chain or EOF token
	markerSize = 2
	// A new token is only started with at least this many bytes left
	headroom = 4
	// A run token costs three bytes so shorter runs are left as literals
	minRun = 4
	maxRun = 0xff
)

var (
	// ErrFormat is returned when a compressed block is malformed
	ErrFormat = errors.New("compression: blocks are incorrectly formatted")
	// ErrNoSkip is returned when a block has no chain pointer to patch
	ErrNoSkip = errors.New("compression: block contains no skip instruction")
	// ErrOutOfBlocks is returned when compressed data would need a block
	// number beyond BlockCount
	ErrOutOfBlocks = errors.New("compression: compressed data exceeds the block table")
)

// Block is one $200 byte block of compressed song data.
type Block [BlockSize]byte

// Blocks is an ordered list of blocks. Chain pointers inside each block are
// read as 1-based indices into the list.
type Blocks []Block

// Bytes returns the concatenated contents of every block.
func (b Blocks) Bytes() []byte {
	out := make([]byte, 0, len(b)*BlockSize)
	for i := range b {
		out = append(out, b[i][:]...)
	}
	return out
}

// SRAM is the uncompressed working memory together with the cursor used by
// the codec as it reads or writes incrementally.
type SRAM struct {
	Position int
	Data     [SRAMSize]byte
}

// Reset zeroes the memory and rewinds the cursor.
func (s *SRAM) Reset() {
	s.Position = 0
	s.Data = [SRAMSize]byte{}
}

// Equal compares the memory contents, ignoring the cursor.
func (s *SRAM) Equal(o *SRAM) bool {
	return s.Data == o.Data
}

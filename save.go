package lsdj

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bodgit/lsdj/compression"
	"github.com/bodgit/lsdj/metadata"
)

const (
	blockAddress = compression.SRAMSize + metadata.Size
	trailerSize  = compression.BlockSize

	// SaveSize is the size in bytes of a save file
	SaveSize = blockAddress + compression.BlockCount*compression.BlockSize + trailerSize
)

// Save is a complete save file. It implements the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces.
type Save struct {
	SRAM     compression.SRAM
	Metadata metadata.Metadata
	Blocks   [compression.BlockCount]compression.Block

	// Space after the last block, kept as found
	trailer [trailerSize]byte
}

// NewSave returns an empty save with every block free.
func NewSave() *Save {
	return &Save{
		Metadata: *metadata.New(),
	}
}

// Read reads a complete save file from r.
func Read(r io.Reader) (*Save, error) {
	b := make([]byte, SaveSize)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("lsdj: reading save: %w", err)
	}

	s := new(Save)
	if err := s.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalBinary encodes the save into binary form and returns the result
func (s *Save) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(SaveSize)

	b.Write(s.SRAM.Data[:])

	m, err := s.Metadata.MarshalBinary()
	if err != nil {
		return nil, err
	}
	b.Write(m)

	for i := range s.Blocks {
		b.Write(s.Blocks[i][:])
	}
	b.Write(s.trailer[:])

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the save from binary form
func (s *Save) UnmarshalBinary(b []byte) error {
	if len(b) != SaveSize {
		return fmt.Errorf("lsdj: expected %d bytes, got %d", SaveSize, len(b))
	}

	s.SRAM.Position = 0
	copy(s.SRAM.Data[:], b)

	if err := s.Metadata.UnmarshalBinary(b[compression.SRAMSize:blockAddress]); err != nil {
		return err
	}

	for i := range s.Blocks {
		copy(s.Blocks[i][:], b[blockAddress+i*compression.BlockSize:])
	}
	copy(s.trailer[:], b[SaveSize-trailerSize:])

	return nil
}

// WriteTo writes the complete save file to w.
func (s *Save) WriteTo(w io.Writer) (int64, error) {
	b, err := s.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

package lsdj

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bodgit/lsdj/compression"
	"github.com/bodgit/lsdj/metadata"
)

// ReadBlocks reads compressed song data, such as that returned by
// ExportSong, from r.
func ReadBlocks(r io.Reader) ([]byte, error) {
	return ioutil.ReadAll(r)
}

// Songs returns the songs listed in the title table.
func (s *Save) Songs() []metadata.Song {
	return s.Metadata.Songs()
}

// ExportSong returns the raw compressed blocks of song, in allocation table
// order. A song that owns no blocks returns an empty slice.
//
// The chain pointers are left as they are in the save, so they refer to
// block numbers in this save rather than positions in the result.
func (s *Save) ExportSong(song int) []byte {
	var b []byte
	for i := 0; ; i++ {
		block, ok := s.Metadata.NextBlockFor(song, i)
		if !ok {
			break
		}
		b = append(b, s.Blocks[block-1][:]...)
	}
	return b
}

// ImportSong adds the compressed blocks in b as a new song with the given
// title, returning the song index used. The song is given the lowest free
// song index and the lowest free blocks; the chain pointers in every block
// but the last are rewritten to match.
//
// The save is only modified if the import succeeds.
func (s *Save) ImportSong(b []byte, title metadata.Title) (int, error) {
	if len(b) == 0 || len(b)%compression.BlockSize != 0 {
		return 0, fmt.Errorf("lsdj: %d bytes is not a whole number of blocks: %w", len(b), ErrFormat)
	}
	n := len(b) / compression.BlockSize

	// Stage everything against a copy
	m := s.Metadata

	song, ok := m.NextAvailableSong()
	if !ok {
		return 0, ErrSongsFull
	}

	if n > m.BlocksFree() {
		return 0, ErrNotEnoughBlocks
	}

	blocks := make([]compression.Block, n)
	for i := range blocks {
		copy(blocks[i][:], b[i*compression.BlockSize:])
	}

	positions := make([]int, n)
	for i := range positions {
		block, ok := m.NextEmptyBlock()
		if !ok {
			return 0, ErrNotEnoughBlocks
		}
		if err := m.Reserve(block, song); err != nil {
			return 0, err
		}
		positions[i] = block
	}

	// The last block keeps its terminator
	for i := 0; i < n-1; i++ {
		if err := blocks[i].SkipTo(positions[i+1]); err != nil {
			return 0, fmt.Errorf("lsdj: block %d: %w", i+1, err)
		}
	}

	if err := m.SetTitle(song, title); err != nil {
		return 0, err
	}

	s.Metadata = m
	for i, p := range positions {
		s.Blocks[p-1] = blocks[i]
	}

	return song, nil
}

// CompressSRAM compresses the working song into blocks numbered from 1, so
// the result can be imported with ImportSong or expanded again with
// compression.Blocks.DecompressTo.
func (s *Save) CompressSRAM() (compression.Blocks, error) {
	sram := s.SRAM
	sram.Position = 0
	return sram.CompressAll(1)
}

// LoadSong decompresses song into the working memory and marks it as the
// working song.
func (s *Save) LoadSong(song int) error {
	first, ok := s.Metadata.NextBlockFor(song, 0)
	if !ok {
		return ErrNoSong
	}

	// Chain pointers are block numbers so the whole table is walked
	var sram compression.SRAM
	if _, err := compression.Blocks(s.Blocks[:]).DecompressTo(&sram, first-1); err != nil {
		return fmt.Errorf("lsdj: song %02X: %w", song, err)
	}
	sram.Position = 0

	s.SRAM = sram
	s.Metadata.WorkingSong = byte(song)

	return nil
}

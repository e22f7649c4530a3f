/*
Package lsdj is a library for maintaining songs on LittleSoundDj save files.

A save file holds the working song uncompressed plus up to thirty-two more
songs compressed into $200 byte blocks. Songs can be listed, exported as raw
compressed blocks, imported from such blocks, and collected into a song
library.
*/
package lsdj

import (
	"errors"
	"log"

	"github.com/bodgit/lsdj/compression"
	"github.com/bodgit/lsdj/metadata"
)

var (
	// ErrSongsFull is returned when every song slot already owns blocks
	ErrSongsFull = errors.New("lsdj: song slots full")
	// ErrNotEnoughBlocks is returned when an import needs more blocks than
	// are free
	ErrNotEnoughBlocks = errors.New("lsdj: not enough free blocks left")
	// ErrNoSong is returned when a song owns no blocks
	ErrNoSong = errors.New("lsdj: no such song")

	// ErrFormat is returned when song blocks are malformed
	ErrFormat = compression.ErrFormat
	// ErrNoSkip is returned when a non-final block ends the song
	ErrNoSkip = compression.ErrNoSkip
	// ErrBlockTaken is returned when reserving an allocated block
	ErrBlockTaken = metadata.ErrBlockTaken
	// ErrBadTitle is returned when a song title has invalid characters
	ErrBadTitle = metadata.ErrBadTitle
)

type LSDj struct {
	lib    *Library
	logger *log.Logger
}

func New(file string, logger *log.Logger) (*LSDj, error) {
	lib, err := NewLibrary(file)
	if err != nil {
		return nil, err
	}

	return &LSDj{
		lib:    lib,
		logger: logger,
	}, nil
}

func (l *LSDj) Close() error {
	return l.lib.Close()
}

// Songs lists the songs in the library.
func (l *LSDj) Songs() ([]LibrarySong, error) {
	return l.lib.Songs()
}

// Fetch imports song id from the library into s. If title is empty the
// title stored in the library is used.
func (l *LSDj) Fetch(s *Save, id int64, title string) (int, error) {
	song, data, err := l.lib.Song(id)
	if err != nil {
		return 0, err
	}

	t := song.Title
	if title != "" {
		if t, err = metadata.ParseTitle(title); err != nil {
			return 0, err
		}
	}

	index, err := s.ImportSong(data, t)
	if err != nil {
		return 0, err
	}
	l.logger.Printf("Imported \"%s\" as song %02X\n", t, index)

	return index, nil
}

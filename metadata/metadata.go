/*
Package metadata implements the $200 byte metadata region of an LSDj save
file, sitting between the working memory and the compressed blocks.

The region is laid out as thirty-two 8 byte song titles, thirty-two version
bytes, thirty reserved bytes, the two byte "jk" initialisation check, the
index of the song currently in working memory and finally the block
allocation table. Each allocation table entry holds the index of the song
owning that block, or $ff if the block is free.
*/
package metadata

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	// Size is the size in bytes of the metadata region
	Size = 0x200
	// SongSlots is the number of songs a save file can hold
	SongSlots = 0x20
	// Blocks is the number of usable allocation table entries
	Blocks = 0xbe

	// Free marks an unallocated block in the allocation table
	Free = 0xff

	reservedLength   = 0x1e
	allocTableLength = 0xbf
)

var initCheck = [2]byte{'j', 'k'}

var (
	// ErrBlockTaken is returned when reserving a block that is already
	// allocated
	ErrBlockTaken = errors.New("metadata: block is already taken")
	// ErrBadBlock is returned for a block number outside the table
	ErrBadBlock = errors.New("metadata: block number out of range")
	// ErrBadSong is returned for a song index outside the title table
	ErrBadSong = errors.New("metadata: song index out of range")
)

// Metadata is the metadata region. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Metadata struct {
	Titles      [SongSlots]Title
	Versions    [SongSlots]byte
	Reserved    [reservedLength]byte
	InitCheck   [2]byte
	WorkingSong byte
	// The on-disk table is one byte longer than the number of blocks; the
	// final entry is carried but never allocated.
	AllocTable [allocTableLength]byte
}

// New returns an empty metadata region with every block free and the
// initialisation check set.
func New() *Metadata {
	m := &Metadata{
		InitCheck: initCheck,
	}
	for i := range m.AllocTable {
		m.AllocTable[i] = Free
	}
	return m
}

// CheckInit reports whether the initialisation check bytes hold "jk", as
// set by LSDj when it first formats the save.
func (m *Metadata) CheckInit() bool {
	return m.InitCheck == initCheck
}

// SetTitle sets the title of song.
func (m *Metadata) SetTitle(song int, title Title) error {
	if song < 0 || song >= SongSlots {
		return ErrBadSong
	}
	m.Titles[song] = title
	return nil
}

// MarshalBinary encodes the metadata region into its $200 byte form
func (m *Metadata) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	b.Grow(Size)

	for _, t := range m.Titles {
		b.Write(t[:])
	}
	b.Write(m.Versions[:])
	b.Write(m.Reserved[:])
	b.Write(m.InitCheck[:])
	b.WriteByte(m.WorkingSong)
	b.Write(m.AllocTable[:])

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the metadata region from its $200 byte form
func (m *Metadata) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return fmt.Errorf("metadata: expected %d bytes, got %d", Size, len(b))
	}

	r := bytes.NewReader(b)
	for i := range m.Titles {
		r.Read(m.Titles[i][:])
	}
	r.Read(m.Versions[:])
	r.Read(m.Reserved[:])
	r.Read(m.InitCheck[:])
	m.WorkingSong, _ = r.ReadByte()
	r.Read(m.AllocTable[:])

	return nil
}

// Song describes an entry in the title table
type Song struct {
	Index   int
	Title   Title
	Version byte
}

// Songs returns the entries of the title table up to the first empty title.
func (m *Metadata) Songs() []Song {
	var songs []Song
	for i, t := range m.Titles {
		if t.IsEmpty() {
			break
		}
		songs = append(songs, Song{
			Index:   i,
			Title:   t.Strip(),
			Version: m.Versions[i],
		})
	}
	return songs
}

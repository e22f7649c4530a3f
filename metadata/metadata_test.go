package metadata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitle(t *testing.T) {
	tests := []struct {
		in   string
		want Title
		err  error
	}{
		{"TITLEx", Title{'T', 'I', 'T', 'L', 'E', 'x', 0, 0}, nil},
		{"A B 09", Title{'A', ' ', 'B', ' ', '0', '9', 0, 0}, nil},
		{"SONGNAME", Title{'S', 'O', 'N', 'G', 'N', 'A', 'M', 'E'}, nil},
		{"", Title{}, nil},
		{"SONGTITLE", Title{}, ErrBadTitle},
		{"title", Title{}, ErrBadTitle},
		{"SONG-1", Title{}, ErrBadTitle},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTitle(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitleStrip(t *testing.T) {
	title := Title{'T', 'I', 'T', 'L', 'E', 0, 'C', 'R'}
	assert.Equal(t, Title{'T', 'I', 'T', 'L', 'E', 0, 0, 0}, title.Strip())
	assert.Equal(t, "TITLE", title.String())

	full := Title{'S', 'O', 'N', 'G', 'N', 'A', 'M', 'E'}
	assert.Equal(t, full, full.Strip())
	assert.Equal(t, "SONGNAME", full.String())
}

func TestCheckInit(t *testing.T) {
	m := New()
	assert.True(t, m.CheckInit())
	m.InitCheck = [2]byte{'j', 'l'}
	assert.False(t, m.CheckInit())
}

func TestIsAllocated(t *testing.T) {
	m := New()
	m.AllocTable[1] = 0
	assert.True(t, m.IsAllocated(2))
	assert.False(t, m.IsAllocated(1))
	assert.False(t, m.IsAllocated(Blocks))
	assert.False(t, m.IsAllocated(0))
	assert.False(t, m.IsAllocated(Blocks+1))
}

func TestNextEmptyBlock(t *testing.T) {
	m := New()
	for i := 0; i < 4; i++ {
		m.AllocTable[i] = 0
	}

	block, ok := m.NextEmptyBlock()
	assert.True(t, ok)
	assert.Equal(t, 5, block)

	m.AllocTable[2] = Free
	block, ok = m.NextEmptyBlock()
	assert.True(t, ok)
	assert.Equal(t, 3, block)

	for i := range m.AllocTable {
		m.AllocTable[i] = 0
	}
	_, ok = m.NextEmptyBlock()
	assert.False(t, ok)
}

func TestReserve(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.BlocksUsed())

	song, ok := m.NextAvailableSong()
	require.True(t, ok)

	for {
		block, ok := m.NextEmptyBlock()
		if !ok {
			break
		}
		require.NoError(t, m.Reserve(block, song))
	}

	assert.Equal(t, Blocks, m.BlocksUsed())
	assert.Equal(t, 0, m.BlocksFree())
	assert.Equal(t, byte(Free), m.AllocTable[allocTableLength-1])

	assert.ErrorIs(t, m.Reserve(1, 1), ErrBlockTaken)
	assert.Equal(t, byte(song), m.AllocTable[0])

	assert.ErrorIs(t, New().Reserve(0, 0), ErrBadBlock)
	assert.ErrorIs(t, New().Reserve(Blocks+1, 0), ErrBadBlock)
	assert.ErrorIs(t, New().Reserve(1, SongSlots), ErrBadSong)
}

func TestNextBlockFor(t *testing.T) {
	m := New()
	m.AllocTable[0] = 0
	m.AllocTable[1] = 1
	m.AllocTable[2] = 0
	m.AllocTable[3] = 0
	m.AllocTable[9] = 1
	m.AllocTable[56] = 3
	m.AllocTable[66] = 3

	tests := []struct {
		song, skip int
		want       int
		ok         bool
	}{
		{0, 0, 1, true},
		{1, 0, 2, true},
		{2, 0, 0, false},
		{0, 1, 3, true},
		{0, 2, 4, true},
		{0, 3, 0, false},
		{1, 1, 10, true},
		{3, 0, 57, true},
		{3, 1, 67, true},
	}

	for _, tt := range tests {
		got, ok := m.NextBlockFor(tt.song, tt.skip)
		assert.Equal(t, tt.ok, ok, "song %d skip %d", tt.song, tt.skip)
		assert.Equal(t, tt.want, got, "song %d skip %d", tt.song, tt.skip)
	}
}

func TestSizeOf(t *testing.T) {
	m := New()
	for i := 0; i < 0x10; i++ {
		m.AllocTable[i] = 0
	}
	m.AllocTable[0x10] = 1
	m.AllocTable[0x11] = 1
	m.AllocTable[0x12] = 0

	assert.Equal(t, 17, m.SizeOf(0))
	assert.Equal(t, 2, m.SizeOf(1))
	assert.Equal(t, 0, m.SizeOf(2))
	assert.Equal(t, 19, m.BlocksUsed())
}

func TestNextAvailableSong(t *testing.T) {
	m := New()
	for i := 0; i < 8; i++ {
		m.AllocTable[i] = 0
	}
	m.AllocTable[8] = 1
	m.AllocTable[9] = 2
	m.AllocTable[10] = 3
	m.AllocTable[11] = 4
	m.AllocTable[12] = 6
	m.AllocTable[13] = 5

	song, ok := m.NextAvailableSong()
	assert.True(t, ok)
	assert.Equal(t, 7, song)

	// A gap below a used index is reused
	m.AllocTable[10] = Free
	song, ok = m.NextAvailableSong()
	assert.True(t, ok)
	assert.Equal(t, 3, song)

	full := New()
	for i := range full.AllocTable {
		full.AllocTable[i] = 0
	}
	_, ok = full.NextAvailableSong()
	assert.False(t, ok)

	slots := New()
	for i := 0; i < SongSlots; i++ {
		slots.AllocTable[i] = byte(i)
	}
	_, ok = slots.NextAvailableSong()
	assert.False(t, ok)
}

func TestMarshalBinary(t *testing.T) {
	m := New()
	m.Titles[0] = Title{'T', 'E', 'S', 'T'}
	m.Versions[0] = 3
	m.WorkingSong = 0
	m.AllocTable[0] = 0
	m.AllocTable[1] = 0

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, Size)

	assert.Equal(t, []byte("TEST\x00\x00\x00\x00"), b[:8])
	assert.Equal(t, byte(3), b[0x100])
	assert.Equal(t, []byte("jk"), b[0x13e:0x140])
	assert.Equal(t, []byte{0x00, 0x00, Free}, b[0x141:0x144])
	assert.Equal(t, bytes.Repeat([]byte{Free}, Size-0x143), b[0x143:])

	var got Metadata
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, *m, got)
}

func TestUnmarshalBinaryLength(t *testing.T) {
	var m Metadata
	assert.Error(t, m.UnmarshalBinary(make([]byte, Size-1)))
}

func TestSongs(t *testing.T) {
	m := New()
	m.Titles[0] = Title{'O', 'N', 'E', 0, 'Z', 'Z'}
	m.Versions[0] = 0x0a
	m.Titles[1] = Title{'T', 'W', 'O'}
	m.Titles[3] = Title{'F', 'O', 'U', 'R'}

	songs := m.Songs()
	require.Len(t, songs, 2)
	assert.Equal(t, Song{Index: 0, Title: Title{'O', 'N', 'E'}, Version: 0x0a}, songs[0])
	assert.Equal(t, "TWO", songs[1].Title.String())
}

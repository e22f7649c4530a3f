package metadata

// Blocks are numbered from 1, so block n is allocation table entry n-1.

func validBlock(block int) bool {
	return block >= 1 && block <= Blocks
}

// IsAllocated reports whether block is allocated to a song. Block numbers
// outside the table are never allocated.
func (m *Metadata) IsAllocated(block int) bool {
	if !validBlock(block) {
		return false
	}
	return m.AllocTable[block-1] != Free
}

// NextEmptyBlock returns the lowest numbered free block.
func (m *Metadata) NextEmptyBlock() (int, bool) {
	for block := 1; block <= Blocks; block++ {
		if !m.IsAllocated(block) {
			return block, true
		}
	}
	return 0, false
}

// Reserve allocates block to song.
func (m *Metadata) Reserve(block, song int) error {
	if !validBlock(block) {
		return ErrBadBlock
	}
	if song < 0 || song >= SongSlots {
		return ErrBadSong
	}
	if m.IsAllocated(block) {
		return ErrBlockTaken
	}
	m.AllocTable[block-1] = byte(song)
	return nil
}

// NextBlockFor returns the block number of the skip+1'th block, in table
// order, allocated to song.
func (m *Metadata) NextBlockFor(song, skip int) (int, bool) {
	for i, owner := range m.AllocTable[:Blocks] {
		if int(owner) != song {
			continue
		}
		if skip == 0 {
			return i + 1, true
		}
		skip--
	}
	return 0, false
}

// SizeOf returns the number of blocks allocated to song.
func (m *Metadata) SizeOf(song int) int {
	size := 0
	for _, owner := range m.AllocTable[:Blocks] {
		if int(owner) == song {
			size++
		}
	}
	return size
}

// BlocksUsed returns the number of allocated blocks.
func (m *Metadata) BlocksUsed() int {
	used := 0
	for _, owner := range m.AllocTable[:Blocks] {
		if owner != Free {
			used++
		}
	}
	return used
}

// BlocksFree returns the number of unallocated blocks.
func (m *Metadata) BlocksFree() int {
	return Blocks - m.BlocksUsed()
}

// NextAvailableSong returns the lowest song index that owns no blocks. Lower
// indices may be unused while higher ones are in use; the first gap is
// returned.
func (m *Metadata) NextAvailableSong() (int, bool) {
	if m.BlocksUsed() == Blocks {
		return 0, false
	}

	var used [SongSlots]bool
	for _, owner := range m.AllocTable[:Blocks] {
		if int(owner) < SongSlots {
			used[owner] = true
		}
	}

	for song, u := range used {
		if !u {
			return song, true
		}
	}
	return 0, false
}

package compression

// token encodes the bytes at the cursor as a single token in buf and returns
// it along with the number of source bytes it covers.
func (s *SRAM) token(buf *[3]byte) ([]byte, int) {
	src := s.Data[s.Position:]
	c := src[0]

	switch {
	case c == rleByte:
		buf[0], buf[1] = rleByte, rleByte
		return buf[:2], 1
	case c == specialByte:
		buf[0], buf[1] = specialByte, specialByte
		return buf[:2], 1
	case len(src) >= dictionarySize && IsDefaultInstrument(src[:dictionarySize]):
		buf[0], buf[1] = specialByte, defInstByte
		return buf[:2], dictionarySize
	case len(src) >= dictionarySize && IsDefaultWave(src[:dictionarySize]):
		buf[0], buf[1] = specialByte, defWaveByte
		return buf[:2], dictionarySize
	}

	run := 1
	for run < len(src) && run < maxRun && src[run] == c {
		run++
	}

	if run < minRun {
		for i := 0; i < run; i++ {
			buf[i] = c
		}
		return buf[:run], run
	}

	buf[0], buf[1], buf[2] = rleByte, c, byte(run)
	return buf[:3], run
}

// Compress encodes SRAM from the current cursor position into dst, which is
// numbered block in the output. It stops either when the SRAM is exhausted,
// writing an end of song token and returning 0, or when dst is full, writing
// a pointer to block+1 and returning that block number so the caller can
// continue into it.
func (s *SRAM) Compress(dst *Block, block int) (int, error) {
	*dst = Block{}

	var buf [3]byte
	i := 0
	for s.Position < SRAMSize {
		t, n := s.token(&buf)

		// Chain once fewer than headroom bytes remain, or earlier if the
		// marker would not fit after a run token
		if BlockSize-i < headroom || i+len(t)+markerSize > BlockSize {
			next := block + 1
			if next > BlockCount {
				return 0, ErrOutOfBlocks
			}
			dst[i], dst[i+1] = specialByte, byte(next)
			return next, nil
		}

		i += copy(dst[i:], t)
		s.Position += n
	}

	dst[i], dst[i+1] = specialByte, eofByte
	return 0, nil
}

// CompressAll compresses SRAM from the current cursor position until the
// end, numbering the output blocks from first. With first set to 1 the
// chain pointers in the result are indices into the returned list.
func (s *SRAM) CompressAll(first int) (Blocks, error) {
	if first < 1 || first > BlockCount {
		return nil, ErrOutOfBlocks
	}

	var blocks Blocks
	for current := first; current != 0; {
		blocks = append(blocks, Block{})
		next, err := s.Compress(&blocks[len(blocks)-1], current)
		if err != nil {
			return nil, err
		}
		current = next
	}

	return blocks, nil
}

package compression

// SkipTo rewrites the chain pointer in the block so that it continues in
// block. Exported songs carry either a block number or an 'x' placeholder in
// the pointer; both are replaced. ErrNoSkip is returned for a block that ends
// the song or has no pointer at all.
func (b *Block) SkipTo(block int) error {
	if block < 1 || block > BlockCount {
		return ErrOutOfBlocks
	}

	for i := 0; i < BlockSize; {
		switch b[i] {
		case rleByte:
			if i+1 < BlockSize && b[i+1] == rleByte {
				i += 2
			} else {
				i += 3
			}
		case specialByte:
			if i+1 >= BlockSize {
				return ErrFormat
			}
			switch n := b[i+1]; {
			case n == specialByte, n == defInstByte, n == defWaveByte:
				i += 2
			case n == eofByte:
				return ErrNoSkip
			case n == placeholder, n >= 1 && int(n) <= BlockCount:
				b[i+1] = byte(block)
				return nil
			default:
				return ErrFormat
			}
		default:
			i++
		}
	}

	return ErrNoSkip
}

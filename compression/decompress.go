package compression

import "fmt"

// Decompress expands the block into dst starting at its cursor, advancing
// the cursor by the number of bytes written. It returns the number of the
// block the song continues in, or 0 if the block ends the song.
func (b *Block) Decompress(dst *SRAM) (next int, err error) {
	out := dst.Data[dst.Position:]
	o := 0
	defer func() {
		dst.Position += o
	}()

	for i := 0; i < BlockSize; {
		switch b[i] {
		case rleByte:
			if i+1 >= BlockSize {
				return 0, ErrFormat
			}
			if b[i+1] == rleByte {
				if o >= len(out) {
					return 0, ErrFormat
				}
				out[o] = rleByte
				o++
				i += 2
				continue
			}
			if i+2 >= BlockSize {
				return 0, ErrFormat
			}
			v, n := b[i+1], int(b[i+2])
			if o+n > len(out) {
				return 0, ErrFormat
			}
			for j := 0; j < n; j++ {
				out[o+j] = v
			}
			o += n
			i += 3
		case specialByte:
			if i+1 >= BlockSize {
				return 0, ErrFormat
			}
			switch id := b[i+1]; id {
			case specialByte:
				if o >= len(out) {
					return 0, ErrFormat
				}
				out[o] = specialByte
				o++
			case defInstByte, defWaveByte:
				d, _ := dictionaryEntry(id)
				if o+len(d) > len(out) {
					return 0, ErrFormat
				}
				o += copy(out[o:], d)
			case eofByte:
				return 0, nil
			case 0:
				// Blocks are numbered from 1
				return 0, ErrFormat
			default:
				return int(id), nil
			}
			i += 2
		default:
			if o >= len(out) {
				return 0, ErrFormat
			}
			out[o] = b[i]
			o++
			i++
		}
	}

	return 0, ErrFormat
}

// DecompressTo follows the chain of blocks starting at the list index start,
// expanding each into dst. Chain pointers are treated as 1-based indices into
// the list. Decompression stops at the end of song token or when a pointer
// leads past the end of the list. It returns the number of blocks expanded.
func (b Blocks) DecompressTo(dst *SRAM, start int) (int, error) {
	visited := make([]bool, len(b))
	n := 0
	for i := start; i >= 0 && i < len(b); {
		if visited[i] {
			return n, fmt.Errorf("block %d: chain loops: %w", i+1, ErrFormat)
		}
		visited[i] = true

		next, err := b[i].Decompress(dst)
		if err != nil {
			return n, fmt.Errorf("block %d: %w", i+1, err)
		}
		n++

		if next == 0 {
			break
		}
		i = next - 1
	}
	return n, nil
}

package compression

import "bytes"

const dictionarySize = 0x10

var (
	defaultInstrument = [dictionarySize]byte{
		0xa8, 0x00, 0x00, 0xff, 0x00, 0x00, 0x03, 0x00,
		0x00, 0xd0, 0x00, 0x00, 0x00, 0xf3, 0x00, 0x00,
	}
	defaultWave = [dictionarySize]byte{
		0x8e, 0xcd, 0xcc, 0xbb, 0xaa, 0xa9, 0x99, 0x88,
		0x87, 0x76, 0x66, 0x55, 0x54, 0x43, 0x32, 0x31,
	}
)

// IsDefaultInstrument reports whether b is exactly the bytes of the LSDj
// default instrument.
func IsDefaultInstrument(b []byte) bool {
	return bytes.Equal(b, defaultInstrument[:])
}

// IsDefaultWave reports whether b is exactly the bytes of the LSDj default
// wave.
func IsDefaultWave(b []byte) bool {
	return bytes.Equal(b, defaultWave[:])
}

// dictionaryEntry maps a token id to its expansion.
func dictionaryEntry(id byte) ([]byte, bool) {
	switch id {
	case defInstByte:
		return defaultInstrument[:], true
	case defWaveByte:
		return defaultWave[:], true
	}
	return nil, false
}

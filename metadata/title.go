package metadata

import (
	"bytes"
	"errors"
)

// TitleLength is the maximum length of a song title
const TitleLength = 8

// ErrBadTitle is returned for a title that is too long or uses characters
// LSDj cannot display
var ErrBadTitle = errors.New("metadata: title must be at most 8 characters, A-Z0-9x")

// Title is a song title, zero padded to eight bytes. A lowercase 'x' is shown
// by LSDj as a lightning bolt.
type Title [TitleLength]byte

// ParseTitle converts s to a Title.
func ParseTitle(s string) (Title, error) {
	var t Title
	if len(s) > TitleLength {
		return t, ErrBadTitle
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == 'x', c == ' ':
			t[i] = c
		default:
			return Title{}, ErrBadTitle
		}
	}
	return t, nil
}

// Strip returns the title with everything after the first zero byte cleared.
// LSDj sometimes leaves garbage after the terminator of a short title.
func (t Title) Strip() Title {
	var out Title
	if i := bytes.IndexByte(t[:], 0); i >= 0 {
		copy(out[:], t[:i])
	} else {
		out = t
	}
	return out
}

// IsEmpty reports whether the title slot is unused.
func (t Title) IsEmpty() bool {
	return t[0] == 0
}

func (t Title) String() string {
	s := t.Strip()
	if i := bytes.IndexByte(s[:], 0); i >= 0 {
		return string(s[:i])
	}
	return string(s[:])
}

package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// UTF8Len classifies a lead byte by its length-prefix bits
// Returns 0 for a continuation byte (10xxxxxx) and for bytes no scalar can start with
func UTF8Len(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xc0 == 0x80:
		return 0
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// ReadCodepoint reads exactly one UTF-8 scalar value from r.
// ok is false at end of input (no lead byte) and for a lead byte that cannot
// start a scalar; neither case blocks for more data. Once a valid lead byte
// has been classified, a short or invalid continuation is ErrMalformedUTF8.
func ReadCodepoint(r io.Reader) (ch rune, ok bool, err error) {
	var lead [1]byte
	n, err := r.Read(lead[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}

	size := UTF8Len(lead[0])
	switch size {
	case 0:
		return 0, false, nil
	case 1:
		return rune(lead[0]), true, nil
	}

	buf := make([]byte, size)
	buf[0] = lead[0]
	if _, err := io.ReadFull(r, buf[1:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, false, fmt.Errorf("%w: truncated %d-byte sequence", ErrMalformedUTF8, size)
		}
		return 0, false, err
	}

	ch, w := utf8.DecodeRune(buf)
	if ch == utf8.RuneError && w <= 1 {
		return 0, false, fmt.Errorf("%w: % x", ErrMalformedUTF8, buf)
	}
	return ch, true, nil
}

// ReadKey is ReadCodepoint with end of input made distinct: a lead-byte read
// that returns no data and io.EOF yields io.EOF. ok false with a nil error is
// left for bytes that cannot start a scalar, so callers can skip them.
func ReadKey(r io.Reader) (ch rune, ok bool, err error) {
	var lead [1]byte
	n, err := r.Read(lead[:])
	if n == 0 {
		if err == nil {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ReadCodepoint(io.MultiReader(bytes.NewReader(lead[:]), r))
}

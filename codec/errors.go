package codec

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding        = errors.New("label is not valid utf-8")
	ErrCorrupt         = errors.New("unknown item discriminant")
	ErrLabelTooLong    = errors.New("label exceeds 65535 bytes")
	ErrTooManyChildren = errors.New("group exceeds 255 children")
	ErrTrailingData    = errors.New("trailing data")
)

// EncodingError is a recoverable decode failure: the structure was intact
// but a label's bytes are not UTF-8
type EncodingError struct {
	Path  []int
	Bytes []byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("codec: item %v: %v (% x)", e.Path, ErrEncoding, e.Bytes)
}

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// CorruptError means the stream cannot be interpreted from this point on.
// Callers must not attempt partial recovery.
type CorruptError struct {
	Path []int
	Tag  byte
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("codec: item %v: %v %#x", e.Path, ErrCorrupt, e.Tag)
}

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// LimitError reports a tree that the format cannot represent
type LimitError struct {
	Path []int
	Size int
	Err  error
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("codec: item %v: %v (%d)", e.Path, e.Err, e.Size)
}

func (e *LimitError) Unwrap() error { return e.Err }

// IsFatal reports whether err means the input is corrupt beyond recovery
func IsFatal(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

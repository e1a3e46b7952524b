package recording

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every FormatError.
	ErrFormat = errors.New("malformed recording")

	ErrBadMagic      = errors.New("not a recording")
	ErrVersion       = errors.New("unsupported version")
	ErrOverrun       = errors.New("section runs past the end of the file")
	ErrChecksum      = errors.New("checksum mismatch")
	ErrBlockLength   = errors.New("page block length mismatch")
	ErrDuplicatePage = errors.New("page recorded twice")
	ErrTrailingData  = errors.New("data after the audio section")
)

// FormatError describes where decoding a recording failed.
type FormatError struct {
	Op     string
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("recording: %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func formatErr(op string, offset int, err error) error {
	return &FormatError{Op: op, Offset: offset, Err: err}
}

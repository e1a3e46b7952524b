package dataview

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read or skip would pass the end of the buffer.
var ErrOutOfBounds = errors.New("read past end of buffer")

// OutOfBoundsError describes a failed read.
type OutOfBoundsError struct {
	Offset int // cursor position at the time of the read
	Want   int // bytes requested
	Len    int // buffer length
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("offset %d: need %d bytes, buffer has %d: %v", e.Offset, e.Want, e.Len, ErrOutOfBounds)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

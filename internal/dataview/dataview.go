// Package dataview provides a bounds-checked cursor over a fixed byte buffer
// and the matching builder used to produce recordings.
package dataview

import (
	"bytes"
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// View reads typed values from buf starting at a mutable offset. Values are
// big-endian unless the LE variant of a getter is used. A failed read never
// moves the offset.
type View struct {
	buf []byte
	off int
}

// New wraps buf. The buffer is not copied.
func New(buf []byte) *View {
	return &View{buf: buf}
}

func (v *View) Offset() int    { return v.off }
func (v *View) Len() int       { return len(v.buf) }
func (v *View) Remaining() int { return len(v.buf) - v.off }

// Seek moves the cursor to an absolute offset.
func (v *View) Seek(offset int) error {
	if offset < 0 || offset > len(v.buf) {
		return &OutOfBoundsError{Offset: v.off, Want: offset - v.off, Len: len(v.buf)}
	}
	v.off = offset
	return nil
}

// Skip advances the cursor by n bytes.
func (v *View) Skip(n int) error {
	if _, err := v.take(n); err != nil {
		return err
	}
	return nil
}

// take returns the next n bytes and advances, or fails without moving.
func (v *View) take(n int) ([]byte, error) {
	if n < 0 || n > len(v.buf)-v.off {
		return nil, &OutOfBoundsError{Offset: v.off, Want: n, Len: len(v.buf)}
	}
	b := v.buf[v.off : v.off+n]
	v.off += n
	return b, nil
}

// Bytes returns a copy of the next n bytes.
func (v *View) Bytes(n int) ([]byte, error) {
	b, err := v.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (v *View) Int8() (int8, error) {
	b, err := v.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (v *View) Uint8() (uint8, error) {
	b, err := v.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (v *View) uint16(order binary.ByteOrder) (uint16, error) {
	b, err := v.take(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

func (v *View) uint32(order binary.ByteOrder) (uint32, error) {
	b, err := v.take(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

func (v *View) uint64(order binary.ByteOrder) (uint64, error) {
	b, err := v.take(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

func (v *View) Uint16() (uint16, error)   { return v.uint16(binary.BigEndian) }
func (v *View) Uint16LE() (uint16, error) { return v.uint16(binary.LittleEndian) }
func (v *View) Uint32() (uint32, error)   { return v.uint32(binary.BigEndian) }
func (v *View) Uint32LE() (uint32, error) { return v.uint32(binary.LittleEndian) }
func (v *View) Uint64() (uint64, error)   { return v.uint64(binary.BigEndian) }
func (v *View) Uint64LE() (uint64, error) { return v.uint64(binary.LittleEndian) }

func (v *View) Int16() (int16, error) {
	u, err := v.uint16(binary.BigEndian)
	return int16(u), err
}

func (v *View) Int16LE() (int16, error) {
	u, err := v.uint16(binary.LittleEndian)
	return int16(u), err
}

func (v *View) Int32() (int32, error) {
	u, err := v.uint32(binary.BigEndian)
	return int32(u), err
}

func (v *View) Int32LE() (int32, error) {
	u, err := v.uint32(binary.LittleEndian)
	return int32(u), err
}

// Int64 reads a signed 64-bit integer (the "bigint64" getter).
func (v *View) Int64() (int64, error) {
	u, err := v.uint64(binary.BigEndian)
	return int64(u), err
}

func (v *View) Int64LE() (int64, error) {
	u, err := v.uint64(binary.LittleEndian)
	return int64(u), err
}

func (v *View) Float32() (float32, error) {
	u, err := v.uint32(binary.BigEndian)
	return math.Float32frombits(u), err
}

func (v *View) Float32LE() (float32, error) {
	u, err := v.uint32(binary.LittleEndian)
	return math.Float32frombits(u), err
}

func (v *View) Float64() (float64, error) {
	u, err := v.uint64(binary.BigEndian)
	return math.Float64frombits(u), err
}

func (v *View) Float64LE() (float64, error) {
	u, err := v.uint64(binary.LittleEndian)
	return math.Float64frombits(u), err
}

// String reads a window of maxLength bytes and decodes it as UTF-8 up to the
// first zero byte. The offset always advances by exactly maxLength.
func (v *View) String(maxLength int) (string, error) {
	b, err := v.take(maxLength)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return "", nil
	}
	s, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		// The decoder replaces invalid input instead of failing; keep the
		// offset contract regardless.
		return string(b), nil
	}
	return string(s), nil
}

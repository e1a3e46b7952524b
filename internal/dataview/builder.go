package dataview

import (
	"encoding/binary"
	"math"
)

// Builder appends big-endian values to a growing buffer. It is the write-side
// counterpart of View.
type Builder struct {
	buf []byte
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Bytes() []byte { return b.buf }
func (b *Builder) Len() int      { return len(b.buf) }

func (b *Builder) PutInt8(v int8)   { b.buf = append(b.buf, byte(v)) }
func (b *Builder) PutUint8(v uint8) { b.buf = append(b.buf, v) }

func (b *Builder) PutUint16(v uint16) { b.buf = binary.BigEndian.AppendUint16(b.buf, v) }
func (b *Builder) PutInt16(v int16)   { b.PutUint16(uint16(v)) }
func (b *Builder) PutUint32(v uint32) { b.buf = binary.BigEndian.AppendUint32(b.buf, v) }
func (b *Builder) PutInt32(v int32)   { b.PutUint32(uint32(v)) }
func (b *Builder) PutUint64(v uint64) { b.buf = binary.BigEndian.AppendUint64(b.buf, v) }
func (b *Builder) PutInt64(v int64)   { b.PutUint64(uint64(v)) }

func (b *Builder) PutFloat32(v float32) { b.PutUint32(math.Float32bits(v)) }
func (b *Builder) PutFloat64(v float64) { b.PutUint64(math.Float64bits(v)) }

func (b *Builder) PutBytes(p []byte) { b.buf = append(b.buf, p...) }

// PutString writes an int32 byte length followed by the UTF-8 bytes of s.
func (b *Builder) PutString(s string) {
	b.PutInt32(int32(len(s)))
	b.buf = append(b.buf, s...)
}

// PatchUint32 overwrites four bytes at offset, used to back-fill length
// prefixes once the payload size is known.
func (b *Builder) PatchUint32(offset int, v uint32) {
	binary.BigEndian.PutUint32(b.buf[offset:offset+4], v)
}

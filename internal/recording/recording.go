// Package recording reads and writes the recording container: a fixed
// header followed by the action, document and audio sections.
package recording

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"sort"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/dataview"
)

const (
	Magic   uint32 = 0x534C4443 // "SLDC"
	Version uint32 = 1

	// HeaderSize is the encoded size of Header.
	HeaderSize = 48
)

// Header is the fixed-size prefix of a recording.
type Header struct {
	Magic    uint32
	Version  uint32
	Duration int64 // ms
	// Checksum is the SHA-1 of the three sections. All zero means it was
	// not computed.
	Checksum       [sha1.Size]byte
	ActionsLength  uint32
	DocumentLength uint32
	AudioLength    uint32
}

// HasChecksum reports whether the checksum field was filled in.
func (h Header) HasChecksum() bool { return h.Checksum != [sha1.Size]byte{} }

// RecordedPage holds the actions of one page. Static actions rebuild the
// state the page had when recording started; playback actions are replayed
// against the clock.
type RecordedPage struct {
	Number    int
	Timestamp int64
	Static    []action.Action
	Playback  []action.Action
}

// File is a decoded recording.
type File struct {
	Header   Header
	Pages    []*RecordedPage
	Document []byte
	Audio    []byte
	// Skipped counts records with tags this version does not know.
	Skipped int
}

// Options control decoding.
type Options struct {
	// SkipChecksum disables checksum verification.
	SkipChecksum bool
}

// Open reads and decodes the recording at path.
func Open(path string, opts Options) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return Decode(buf, opts)
}

// Decode parses a complete recording. Pages are returned ordered by their
// start time.
func Decode(buf []byte, opts Options) (*File, error) {
	v := dataview.New(buf)
	h, err := decodeHeader(v)
	if err != nil {
		return nil, err
	}

	f := &File{Header: h}
	sections := make([][]byte, 3)
	for i, n := range []uint32{h.ActionsLength, h.DocumentLength, h.AudioLength} {
		start := v.Offset()
		if sections[i], err = v.Bytes(int(n)); err != nil {
			return nil, formatErr("read section", start, fmt.Errorf("%d bytes: %w", n, ErrOverrun))
		}
	}
	f.Document, f.Audio = sections[1], sections[2]
	if n := v.Remaining(); n > 0 {
		return nil, formatErr("read sections", v.Offset(), fmt.Errorf("%d bytes: %w", n, ErrTrailingData))
	}

	if h.HasChecksum() && !opts.SkipChecksum {
		if sum := checksum(sections...); sum != h.Checksum {
			return nil, formatErr("verify checksum", 0, fmt.Errorf("%w: have %x want %x", ErrChecksum, sum, h.Checksum))
		}
	}

	if err := f.decodeActions(sections[0], HeaderSize); err != nil {
		return nil, err
	}
	sort.SliceStable(f.Pages, func(i, j int) bool { return f.Pages[i].Timestamp < f.Pages[j].Timestamp })
	return f, nil
}

func decodeHeader(v *dataview.View) (Header, error) {
	var h Header
	if v.Len() < HeaderSize {
		return h, formatErr("read header", 0, fmt.Errorf("%d bytes: %w", v.Len(), ErrOverrun))
	}
	h.Magic, _ = v.Uint32()
	if h.Magic != Magic {
		return h, formatErr("read header", 0, fmt.Errorf("%w: magic %#08x", ErrBadMagic, h.Magic))
	}
	h.Version, _ = v.Uint32()
	if h.Version != Version {
		return h, formatErr("read header", 4, fmt.Errorf("%w: %d", ErrVersion, h.Version))
	}
	h.Duration, _ = v.Int64()
	sum, _ := v.Bytes(sha1.Size)
	copy(h.Checksum[:], sum)
	h.ActionsLength, _ = v.Uint32()
	h.DocumentLength, _ = v.Uint32()
	h.AudioLength, _ = v.Uint32()
	return h, nil
}

// decodeActions parses the page blocks of the action section. base is the
// file offset of the section, used in error reports.
func (f *File) decodeActions(section []byte, base int) error {
	v := dataview.New(section)
	seen := make(map[int]bool)
	for v.Remaining() > 0 {
		start := v.Offset()
		n, err := v.Uint32()
		if err != nil {
			return formatErr("read page block", base+start, err)
		}
		block, err := v.Bytes(int(n))
		if err != nil {
			return formatErr("read page block", base+start, fmt.Errorf("%d bytes: %w", n, ErrOverrun))
		}
		page, err := f.decodePage(dataview.New(block), base+start+4)
		if err != nil {
			return err
		}
		if seen[page.Number] {
			return formatErr("read page block", base+start, fmt.Errorf("%w: %d", ErrDuplicatePage, page.Number))
		}
		seen[page.Number] = true
		f.Pages = append(f.Pages, page)
	}
	return nil
}

func (f *File) decodePage(v *dataview.View, base int) (*RecordedPage, error) {
	number, err := v.Int32()
	if err != nil {
		return nil, formatErr("read page number", base, err)
	}
	ts, err := v.Int64()
	if err != nil {
		return nil, formatErr("read page timestamp", base+v.Offset(), err)
	}
	count, err := v.Int32()
	if err != nil {
		return nil, formatErr("read static count", base+v.Offset(), err)
	}
	if count < 0 {
		return nil, formatErr("read static count", base+v.Offset()-4, fmt.Errorf("%w: %d", ErrBlockLength, count))
	}

	page := &RecordedPage{Number: int(number), Timestamp: ts}
	for i := 0; i < int(count); i++ {
		a, err := f.decodeRecord(v, base)
		if err != nil {
			return nil, err
		}
		if a != nil {
			page.Static = append(page.Static, a)
		}
	}
	for v.Remaining() > 0 {
		a, err := f.decodeRecord(v, base)
		if err != nil {
			return nil, err
		}
		if a != nil {
			page.Playback = append(page.Playback, a)
		}
	}
	return page, nil
}

// decodeRecord reads one framed action. Unknown tags yield (nil, nil).
func (f *File) decodeRecord(v *dataview.View, base int) (action.Action, error) {
	start := v.Offset()
	tag, err := v.Int32()
	if err != nil {
		return nil, formatErr("read record", base+start, fmt.Errorf("%w: %w", ErrBlockLength, err))
	}
	length, err := v.Int32()
	if err != nil {
		return nil, formatErr("read record", base+start, fmt.Errorf("%w: %w", ErrBlockLength, err))
	}
	ts, err := v.Int64()
	if err != nil {
		return nil, formatErr("read record", base+start, fmt.Errorf("%w: %w", ErrBlockLength, err))
	}
	a, err := action.Decode(v, action.Type(tag), int(length))
	if err != nil {
		return nil, formatErr("decode "+action.Type(tag).String(), base+start, err)
	}
	if a == nil {
		f.Skipped++
		return nil, nil
	}
	a.SetTimestamp(ts)
	return a, nil
}

func checksum(sections ...[]byte) [sha1.Size]byte {
	h := sha1.New()
	for _, s := range sections {
		h.Write(s)
	}
	var sum [sha1.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Encode writes f as a recording. The section lengths and the checksum in
// the header are computed; Duration is taken as is.
func Encode(f *File) ([]byte, error) {
	actions, err := EncodeActions(f.Pages)
	if err != nil {
		return nil, err
	}
	h := f.Header
	h.Magic, h.Version = Magic, Version
	h.ActionsLength = uint32(len(actions))
	h.DocumentLength = uint32(len(f.Document))
	h.AudioLength = uint32(len(f.Audio))
	h.Checksum = checksum(actions, f.Document, f.Audio)

	b := dataview.NewBuilder()
	b.PutUint32(h.Magic)
	b.PutUint32(h.Version)
	b.PutInt64(h.Duration)
	b.PutBytes(h.Checksum[:])
	b.PutUint32(h.ActionsLength)
	b.PutUint32(h.DocumentLength)
	b.PutUint32(h.AudioLength)

	var out bytes.Buffer
	out.Grow(b.Len() + len(actions) + len(f.Document) + len(f.Audio))
	out.Write(b.Bytes())
	out.Write(actions)
	out.Write(f.Document)
	out.Write(f.Audio)
	return out.Bytes(), nil
}

// EncodeActions writes the action section for pages.
func EncodeActions(pages []*RecordedPage) ([]byte, error) {
	b := dataview.NewBuilder()
	seen := make(map[int]bool)
	for _, p := range pages {
		if seen[p.Number] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePage, p.Number)
		}
		seen[p.Number] = true
		blockStart := b.Len()
		b.PutUint32(0)
		b.PutInt32(int32(p.Number))
		b.PutInt64(p.Timestamp)
		b.PutInt32(int32(len(p.Static)))
		for _, a := range append(append([]action.Action(nil), p.Static...), p.Playback...) {
			if err := encodeRecord(b, a); err != nil {
				return nil, fmt.Errorf("page %d: %w", p.Number, err)
			}
		}
		b.PatchUint32(blockStart, uint32(b.Len()-blockStart-4))
	}
	return b.Bytes(), nil
}

func encodeRecord(b *dataview.Builder, a action.Action) error {
	b.PutInt32(int32(a.Type()))
	lengthAt := b.Len()
	b.PutInt32(0)
	b.PutInt64(a.Timestamp())
	payloadStart := b.Len()
	if err := action.Encode(b, a); err != nil {
		return err
	}
	b.PatchUint32(lengthAt, uint32(b.Len()-payloadStart))
	return nil
}

// Stats summarises a recording.
type Stats struct {
	Pages    int
	Static   int
	Playback int
	Skipped  int
	ByType   map[action.Type]int
}

func (f *File) Stats() Stats {
	s := Stats{Pages: len(f.Pages), Skipped: f.Skipped, ByType: make(map[action.Type]int)}
	for _, p := range f.Pages {
		s.Static += len(p.Static)
		s.Playback += len(p.Playback)
		for _, a := range p.Static {
			s.ByType[a.Type()]++
		}
		for _, a := range p.Playback {
			s.ByType[a.Type()]++
		}
	}
	return s
}

// Starts returns the start times of pages in order.
func Starts(pages []*RecordedPage) []int64 {
	starts := make([]int64, len(pages))
	for i, p := range pages {
		starts[i] = p.Timestamp
	}
	return starts
}

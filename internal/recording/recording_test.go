package recording

import (
	"crypto/sha1"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/dataview"
	"github.com/ivlev/slidecast/internal/document"
)

func at(ms int64, a action.Action) action.Action {
	a.SetTimestamp(ms)
	return a
}

func sample() *File {
	return &File{
		Header: Header{Duration: 3000},
		Pages: []*RecordedPage{
			{
				Number:    0,
				Timestamp: 0,
				Static: []action.Action{
					&action.PaintAction{Tag: action.Pen, Handle: 1, Brush: document.Brush{Color: 0xFF000000, Width: 0.01}},
				},
				Playback: []action.Action{
					at(100, &action.DragAction{Tag: action.ToolBegin, Point: &document.PenPoint{X: 0.5, Y: 0.5, Pressure: 1}}),
					at(200, &action.DragAction{Tag: action.ToolEnd, Point: &document.PenPoint{X: 0.25, Y: 0.5, Pressure: 1}}),
				},
			},
			{
				Number:    1,
				Timestamp: 1500,
				Playback: []action.Action{
					at(1600, &action.TextChangeAction{Handle: 2, Text: "note"}),
				},
			},
		},
		Document: []byte("%PDF-1.4 fake"),
		Audio:    []byte{1, 2, 3, 4},
	}
}

func TestEncodeDecode(t *testing.T) {
	f := sample()
	buf, err := Encode(f)
	require.NoError(t, err)

	got, err := Decode(buf, Options{})
	require.NoError(t, err)

	assert.Equal(t, Magic, got.Header.Magic)
	assert.Equal(t, int64(3000), got.Header.Duration)
	assert.True(t, got.Header.HasChecksum())
	assert.Equal(t, f.Document, got.Document)
	assert.Equal(t, f.Audio, got.Audio)
	assert.Equal(t, f.Pages, got.Pages)
	assert.Zero(t, got.Skipped)
	assert.Equal(t, HeaderSize+int(got.Header.ActionsLength)+len(f.Document)+len(f.Audio), len(buf))
}

func TestDecode_Checksum(t *testing.T) {
	buf, err := Encode(sample())
	require.NoError(t, err)
	buf[len(buf)-1] ^= 0xFF

	_, err = Decode(buf, Options{})
	assert.ErrorIs(t, err, ErrChecksum)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Decode(buf, Options{SkipChecksum: true})
	assert.NoError(t, err)

	// An all-zero checksum means none was computed.
	copy(buf[16:16+sha1.Size], make([]byte, sha1.Size))
	_, err = Decode(buf, Options{})
	assert.NoError(t, err)
}

func TestDecode_HeaderErrors(t *testing.T) {
	good, err := Encode(sample())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"short", func(b []byte) []byte { return b[:10] }, ErrOverrun},
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrBadMagic},
		{"version", func(b []byte) []byte { b[7] = 9; return b }, ErrVersion},
		{"truncated audio", func(b []byte) []byte { return b[:len(b)-2] }, ErrOverrun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.mutate(append([]byte(nil), good...))
			_, err := Decode(buf, Options{})
			assert.ErrorIs(t, err, tt.want)
			var fe *FormatError
			assert.ErrorAs(t, err, &fe)
		})
	}
}

// rawFile wraps a hand-built action section in a header without checksum.
func rawFile(actions []byte) []byte {
	b := dataview.NewBuilder()
	b.PutUint32(Magic)
	b.PutUint32(Version)
	b.PutInt64(1000)
	b.PutBytes(make([]byte, sha1.Size))
	b.PutUint32(uint32(len(actions)))
	b.PutUint32(0)
	b.PutUint32(0)
	b.PutBytes(actions)
	return b.Bytes()
}

func block(number int32, ts int64, static int32, records ...[]byte) []byte {
	body := dataview.NewBuilder()
	body.PutInt32(number)
	body.PutInt64(ts)
	body.PutInt32(static)
	for _, r := range records {
		body.PutBytes(r)
	}
	b := dataview.NewBuilder()
	b.PutUint32(uint32(body.Len()))
	b.PutBytes(body.Bytes())
	return b.Bytes()
}

func record(tag int32, ts int64, payload []byte) []byte {
	b := dataview.NewBuilder()
	b.PutInt32(tag)
	b.PutInt32(int32(len(payload)))
	b.PutInt64(ts)
	b.PutBytes(payload)
	return b.Bytes()
}

func TestDecode_UnknownTagsAreSkipped(t *testing.T) {
	undo := []byte{0, 0, 0, 0}
	actions := block(0, 0, 1,
		record(int32(action.Undo), 0, undo),
		record(77, 50, []byte{9, 9, 9}),
		record(int32(action.Redo), 60, undo),
	)

	f, err := Decode(rawFile(actions), Options{})
	require.NoError(t, err)
	require.Len(t, f.Pages, 1)
	assert.Equal(t, 1, f.Skipped)
	require.Len(t, f.Pages[0].Static, 1)
	require.Len(t, f.Pages[0].Playback, 1)
	assert.Equal(t, action.Redo, f.Pages[0].Playback[0].Type())
	assert.Equal(t, int64(60), f.Pages[0].Playback[0].Timestamp())
}

func TestDecode_RecordErrors(t *testing.T) {
	t.Run("record spills past block", func(t *testing.T) {
		actions := block(0, 0, 0, record(int32(action.Undo), 0, []byte{0, 0, 0, 0})[:12])
		_, err := Decode(rawFile(actions), Options{})
		assert.ErrorIs(t, err, ErrFormat)
		assert.ErrorIs(t, err, ErrBlockLength)
		assert.ErrorIs(t, err, dataview.ErrOutOfBounds)
	})

	t.Run("payload longer than its fields", func(t *testing.T) {
		actions := block(0, 0, 0, record(int32(action.Undo), 0, []byte{0, 0, 0, 0, 1}))
		_, err := Decode(rawFile(actions), Options{})
		assert.ErrorIs(t, err, ErrFormat)
		assert.ErrorIs(t, err, action.ErrPayloadLength)
	})

	t.Run("unknown key event kind", func(t *testing.T) {
		key := dataview.NewBuilder()
		key.PutInt32(1)
		key.PutInt32(65)
		key.PutInt32(0)
		key.PutUint8(5)
		actions := block(0, 0, 0, record(int32(action.Key), 0, key.Bytes()))
		_, err := Decode(rawFile(actions), Options{})
		assert.ErrorIs(t, err, ErrFormat)
		assert.ErrorIs(t, err, action.ErrUnknownKeyEventType)
	})

	t.Run("block past section", func(t *testing.T) {
		actions := block(0, 0, 0)
		actions[3] += 10
		_, err := Decode(rawFile(actions), Options{})
		assert.ErrorIs(t, err, ErrOverrun)
	})
}

func TestDecode_RejectsDuplicatePages(t *testing.T) {
	actions := append(append(block(0, 0, 0), block(1, 1000, 0)...), block(0, 2000, 0)...)
	_, err := Decode(rawFile(actions), Options{})
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrDuplicatePage)

	f := sample()
	f.Pages[1].Number = 0
	_, err = Encode(f)
	assert.ErrorIs(t, err, ErrDuplicatePage)
}

func TestDecode_RejectsTrailingData(t *testing.T) {
	buf, err := Encode(sample())
	require.NoError(t, err)

	_, err = Decode(append(buf, 0), Options{})
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestDecode_SortsPagesByStart(t *testing.T) {
	actions := append(block(1, 2000, 0), block(0, 0, 0)...)
	f, err := Decode(rawFile(actions), Options{})
	require.NoError(t, err)
	require.Len(t, f.Pages, 2)
	assert.Equal(t, 0, f.Pages[0].Number)
	assert.Equal(t, []int64{0, 2000}, Starts(f.Pages))
}

func TestOpen(t *testing.T) {
	buf, err := Encode(sample())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "talk.sldc")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	f, err := Open(path, Options{})
	require.NoError(t, err)
	assert.Len(t, f.Pages, 2)

	_, err = Open(filepath.Join(t.TempDir(), "missing.sldc"), Options{})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	s := sample().Stats()
	assert.Equal(t, 2, s.Pages)
	assert.Equal(t, 1, s.Static)
	assert.Equal(t, 3, s.Playback)
	assert.Equal(t, 1, s.ByType[action.ToolBegin])
	assert.Equal(t, 1, s.ByType[action.TextChange])
}

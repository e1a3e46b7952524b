package action

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ivlev/slidecast/internal/dataview"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/tool"
)

// rectSize is the wire size of one rectangle.
const rectSize = 32

// Decode reads one action payload of the given length. The payload starts
// with the key-event header followed by the tag specific fields.
//
// Unknown tags are skipped and reported as (nil, nil) so the caller stays
// aligned with the stream. The view always advances by exactly length bytes
// when no error is returned.
func Decode(v *dataview.View, t Type, length int) (Action, error) {
	if length < 0 {
		return nil, fmt.Errorf("%s: length %d: %w", t, length, ErrInvalidLength)
	}
	if !t.Known() {
		if err := v.Skip(length); err != nil {
			return nil, err
		}
		return nil, nil
	}
	payload, err := v.Bytes(length)
	if err != nil {
		return nil, err
	}

	r := &reader{v: dataview.New(payload)}
	key := r.keyEvent()
	a := New(t)
	decodePayload(r, a)
	if r.err != nil {
		return nil, fmt.Errorf("%s: %w", t, r.err)
	}
	if rest := r.v.Remaining(); rest != 0 {
		return nil, fmt.Errorf("%s: %d of %d bytes unread: %w", t, rest, length, ErrPayloadLength)
	}
	a.SetKeyEvent(key)
	return a, nil
}

func decodePayload(r *reader, a Action) {
	switch a := a.(type) {
	case *PaintAction:
		a.Handle = r.i32()
		a.Brush.Color = r.color()
		a.Brush.Cap = document.LineCap(r.i8())
		a.Brush.Width = r.f64()
	case *DragAction:
		x, y, p := r.f32(), r.f32(), r.f32()
		a.Point = &document.PenPoint{X: float64(x), Y: float64(y), Pressure: float64(p)}
	case *SimpleAction:
	case *HandleAction:
		a.Handle = r.i32()
	case *TextChangeAction:
		a.Handle = r.i32()
		a.Text = r.str()
	case *FontChangeAction:
		a.Handle = r.i32()
		a.Color = r.color()
		a.Font.Family = r.str()
		a.Font.Size = r.f64()
		a.Font.Posture = document.FontPosture(r.u8())
		a.Font.Weight = document.FontWeight(r.u8())
		n := r.count(5)
		if n > 0 {
			a.Attributes = make(map[string]bool, n)
		}
		for i := 0; i < n && r.err == nil; i++ {
			name := r.str()
			a.Attributes[name] = r.u8() != 0
		}
	case *TextMoveAction:
		a.Handle = r.i32()
		a.Location = document.Point{X: r.f64(), Y: r.f64()}
	case *TextSelectionAction:
		if a.Ext {
			a.Handle = r.i32()
		}
		a.Color = r.color()
		n := r.count(rectSize)
		for i := 0; i < n && r.err == nil; i++ {
			a.Rects = append(a.Rects, r.rect())
		}
	case *ExtendViewAction:
		a.View = r.rect()
	case *ScreenAction:
		a.VideoOffset = r.i32()
		a.VideoLength = r.i32()
		a.ContentWidth = r.i32()
		a.ContentHeight = r.i32()
		a.FileName = r.str()
	}
}

// Encode writes the payload of a: the key-event header and the tag fields.
// The record framing (tag, length, timestamp) is left to the caller.
func Encode(b *dataview.Builder, a Action) error {
	if !a.Type().Known() {
		return fmt.Errorf("%s: %w", a.Type(), ErrTypeMismatch)
	}
	if e := a.KeyEvent(); e != nil {
		if !e.Kind.Valid() {
			return fmt.Errorf("%s: kind %d: %w", a.Type(), e.Kind, ErrUnknownKeyEventType)
		}
		b.PutInt32(1)
		b.PutInt32(e.Code)
		b.PutInt32(int32(e.Modifiers))
		b.PutUint8(uint8(e.Kind))
	} else {
		b.PutInt32(0)
	}
	return a.encode(b)
}

func checkTag(t Type, allowed ...Type) error {
	for _, a := range allowed {
		if t == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", t, ErrTypeMismatch)
}

func (a *PaintAction) encode(b *dataview.Builder) error {
	if err := checkTag(a.Tag, Pen, Highlighter, Pointer, Arrow, Line, Rectangle, Ellipse, Zoom); err != nil {
		return err
	}
	b.PutInt32(a.Handle)
	b.PutUint32(a.Brush.Color.RGBA())
	b.PutInt8(int8(a.Brush.Cap))
	b.PutFloat64(a.Brush.Width)
	return nil
}

func (a *DragAction) encode(b *dataview.Builder) error {
	if err := checkTag(a.Tag, ToolBegin, ToolExecute, ToolEnd); err != nil {
		return err
	}
	if a.Point == nil {
		return fmt.Errorf("%s: %w", a.Tag, ErrMissingPayload)
	}
	b.PutFloat32(float32(a.Point.X))
	b.PutFloat32(float32(a.Point.Y))
	b.PutFloat32(float32(a.Point.Pressure))
	return nil
}

func (a *SimpleAction) encode(*dataview.Builder) error {
	return checkTag(a.Tag, Undo, Redo, Clone, Select, SelectGroup, Pan, ZoomOut, Rubber, ClearShapes, Key)
}

func (a *HandleAction) encode(b *dataview.Builder) error {
	if err := checkTag(a.Tag, Text, Latex, TextRemove, RubberExt); err != nil {
		return err
	}
	b.PutInt32(a.Handle)
	return nil
}

func (a *TextChangeAction) encode(b *dataview.Builder) error {
	b.PutInt32(a.Handle)
	return putString(b, a.Text)
}

func (a *FontChangeAction) encode(b *dataview.Builder) error {
	if err := checkTag(a.Tag, TextFontChange, LatexFontChange); err != nil {
		return err
	}
	b.PutInt32(a.Handle)
	b.PutUint32(a.Color.RGBA())
	if err := putString(b, a.Font.Family); err != nil {
		return err
	}
	b.PutFloat64(a.Font.Size)
	b.PutUint8(uint8(a.Font.Posture))
	b.PutUint8(uint8(a.Font.Weight))

	names := make([]string, 0, len(a.Attributes))
	for name := range a.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	b.PutInt32(int32(len(names)))
	for _, name := range names {
		if err := putString(b, name); err != nil {
			return err
		}
		if a.Attributes[name] {
			b.PutUint8(1)
		} else {
			b.PutUint8(0)
		}
	}
	return nil
}

func (a *TextMoveAction) encode(b *dataview.Builder) error {
	b.PutInt32(a.Handle)
	b.PutFloat64(a.Location.X)
	b.PutFloat64(a.Location.Y)
	return nil
}

func (a *TextSelectionAction) encode(b *dataview.Builder) error {
	if a.Ext {
		b.PutInt32(a.Handle)
	}
	b.PutUint32(a.Color.RGBA())
	b.PutInt32(int32(len(a.Rects)))
	for _, r := range a.Rects {
		putRect(b, r)
	}
	return nil
}

func (a *ExtendViewAction) encode(b *dataview.Builder) error {
	putRect(b, a.View)
	return nil
}

func (a *ScreenAction) encode(b *dataview.Builder) error {
	b.PutInt32(a.VideoOffset)
	b.PutInt32(a.VideoLength)
	b.PutInt32(a.ContentWidth)
	b.PutInt32(a.ContentHeight)
	return putString(b, a.FileName)
}

// putString writes a length-prefixed string. Decoding stops at the first
// zero byte and reads UTF-8, so strings must be valid UTF-8 without NUL.
func putString(b *dataview.Builder, s string) error {
	if strings.IndexByte(s, 0) >= 0 || !utf8.ValidString(s) {
		return fmt.Errorf("%q: %w", s, ErrInvalidString)
	}
	b.PutString(s)
	return nil
}

func putRect(b *dataview.Builder, r document.Rect) {
	b.PutFloat64(r.X)
	b.PutFloat64(r.Y)
	b.PutFloat64(r.Width)
	b.PutFloat64(r.Height)
}

// reader wraps a view with a sticky error so payload layouts read linearly.
type reader struct {
	v   *dataview.View
	err error
}

func (r *reader) keep(err error) bool {
	if r.err == nil && err != nil {
		r.err = err
	}
	return r.err == nil
}

func (r *reader) i8() int8 {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Int8()
	r.keep(err)
	return x
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Uint8()
	r.keep(err)
	return x
}

func (r *reader) i32() int32 {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Int32()
	r.keep(err)
	return x
}

func (r *reader) f32() float32 {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Float32()
	r.keep(err)
	return x
}

func (r *reader) f64() float64 {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Float64()
	r.keep(err)
	return x
}

func (r *reader) color() document.Color {
	if r.err != nil {
		return 0
	}
	x, err := r.v.Uint32()
	r.keep(err)
	return document.ColorFromRGBA(x)
}

// count reads an element count and rejects values that cannot fit in the
// remaining payload given the minimum element size.
func (r *reader) count(minSize int) int {
	n := int(r.i32())
	if r.err != nil {
		return 0
	}
	if n < 0 || n*minSize > r.v.Remaining() {
		r.keep(fmt.Errorf("count %d: %w", n, ErrInvalidLength))
		return 0
	}
	return n
}

func (r *reader) str() string {
	n := r.count(1)
	if r.err != nil {
		return ""
	}
	s, err := r.v.String(n)
	r.keep(err)
	return s
}

func (r *reader) rect() document.Rect {
	return document.Rect{X: r.f64(), Y: r.f64(), Width: r.f64(), Height: r.f64()}
}

func (r *reader) keyEvent() *tool.KeyEvent {
	if flag := r.i32(); flag == 0 || r.err != nil {
		return nil
	}
	e := &tool.KeyEvent{Code: r.i32(), Modifiers: tool.Modifier(r.i32())}
	kind := r.u8()
	if r.err != nil {
		return nil
	}
	if !tool.KeyEventKind(kind).Valid() {
		r.keep(fmt.Errorf("kind %d: %w", kind, ErrUnknownKeyEventType))
		return nil
	}
	e.Kind = tool.KeyEventKind(kind)
	return e
}

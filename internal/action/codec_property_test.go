package action

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ivlev/slidecast/internal/dataview"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/tool"
)

func reencode(a Action) (Action, bool) {
	b := dataview.NewBuilder()
	if err := Encode(b, a); err != nil {
		return nil, false
	}
	v := dataview.New(b.Bytes())
	got, err := Decode(v, a.Type(), b.Len())
	return got, err == nil && v.Remaining() == 0
}

func keyEvent(code int32, mods int32, kind uint8) *tool.KeyEvent {
	if code == 0 {
		return nil
	}
	return &tool.KeyEvent{Code: code, Modifiers: tool.Modifier(mods & 7), Kind: tool.KeyEventKind(kind % 3)}
}

// text generates any Unicode text without NUL.
func text() gopter.Gen {
	return gen.AnyString().SuchThat(func(s string) bool { return !strings.ContainsRune(s, 0) })
}

func TestCodec_RoundTripProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("paint actions survive encode/decode", prop.ForAll(
		func(tag int, handle int32, color uint32, width float64, code int32) bool {
			a := &PaintAction{
				Base:   Base{Key: keyEvent(code, code>>3, uint8(code))},
				Tag:    Type(tag),
				Handle: handle,
				Brush:  document.Brush{Color: document.Color(color), Width: width, Cap: document.LineCap(tag % 3)},
			}
			got, ok := reencode(a)
			return ok && reflect.DeepEqual(a, got)
		},
		gen.IntRange(int(Pen), int(Zoom)),
		gen.Int32(),
		gen.UInt32(),
		gen.Float64Range(0, 100),
		gen.Int32(),
	))

	properties.Property("drag points keep float32 precision", prop.ForAll(
		func(tag int, x, y, p float32) bool {
			a := &DragAction{Tag: Type(tag), Point: &document.PenPoint{X: float64(x), Y: float64(y), Pressure: float64(p)}}
			got, ok := reencode(a)
			return ok && reflect.DeepEqual(a, got)
		},
		gen.IntRange(int(ToolBegin), int(ToolEnd)),
		gen.Float32Range(-1e4, 1e4),
		gen.Float32Range(-1e4, 1e4),
		gen.Float32Range(0, 1),
	))

	properties.Property("text changes keep their content", prop.ForAll(
		func(handle int32, text string) bool {
			a := &TextChangeAction{Handle: handle, Text: text}
			got, ok := reencode(a)
			return ok && reflect.DeepEqual(a, got)
		},
		gen.Int32(),
		text(),
	))

	properties.Property("font changes keep family and attributes", prop.ForAll(
		func(latex bool, family string, size float64, names []string) bool {
			tag := TextFontChange
			if latex {
				tag = LatexFontChange
			}
			a := &FontChangeAction{Tag: tag, Handle: 1, Color: 0xFF000000,
				Font: document.Font{Family: family, Size: size, Weight: document.WeightNormal}}
			for i, n := range names {
				if a.Attributes == nil {
					a.Attributes = map[string]bool{}
				}
				a.Attributes[n] = i%2 == 0
			}
			got, ok := reencode(a)
			return ok && reflect.DeepEqual(a, got)
		},
		gen.Bool(),
		text(),
		gen.Float64Range(1, 96),
		gen.SliceOf(text()),
	))

	properties.Property("selection rectangles survive encode/decode", prop.ForAll(
		func(ext bool, handle int32, coords []float64) bool {
			a := &TextSelectionAction{Ext: ext, Color: 0x80FFFF00}
			if ext {
				a.Handle = handle
			}
			for i := 0; i+3 < len(coords); i += 4 {
				a.Rects = append(a.Rects, document.Rect{X: coords[i], Y: coords[i+1], Width: coords[i+2], Height: coords[i+3]})
			}
			got, ok := reencode(a)
			return ok && reflect.DeepEqual(a, got)
		},
		gen.Bool(),
		gen.Int32(),
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.TestingRun(t)
}

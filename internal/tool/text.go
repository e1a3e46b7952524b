package tool

import (
	"fmt"

	"github.com/ivlev/slidecast/internal/document"
)

// DefaultFont is used for text boxes until a font change arrives.
var DefaultFont = document.Font{Family: "SansSerif", Size: 0.03, Weight: document.WeightNormal}

// TextTool places an empty text or LaTeX box where the pen goes down.
type TextTool struct {
	Handle int32
	Latex  bool
}

func NewTextTool(handle int32, latex bool) *TextTool {
	return &TextTool{Handle: handle, Latex: latex}
}

func (t *TextTool) Type() Type {
	if t.Latex {
		return Latex
	}
	return Text
}

func (t *TextTool) sealed() {}

func (t *TextTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if _, ok := page.ShapeByHandle(t.Handle); ok {
		return nil
	}
	kind := document.KindText
	if t.Latex {
		kind = document.KindLatex
	}
	page.AddAction(document.NewAddShapes(&document.Shape{
		Kind:      kind,
		Handle:    t.Handle,
		Points:    []document.PenPoint{p},
		Font:      DefaultFont,
		TextColor: document.Color(0xFF000000),
	}))
	return nil
}

func (t *TextTool) Execute(ctx *Context, _ document.PenPoint) error {
	_, err := ctx.page()
	return err
}

func (t *TextTool) End(ctx *Context, _ document.PenPoint) error {
	_, err := ctx.page()
	return err
}

func textShape(ctx *Context, handle int32) (*document.Page, *document.Shape, error) {
	page, err := ctx.page()
	if err != nil {
		return nil, nil, err
	}
	shape, ok := page.ShapeByHandle(handle)
	if !ok {
		return nil, nil, fmt.Errorf("handle %d: %w", handle, ErrShapeNotFound)
	}
	return page, shape, nil
}

// TextChangeTool replaces the content of a text box.
type TextChangeTool struct {
	atomic
	Handle int32
	Text   string
}

func (t *TextChangeTool) Type() Type { return TextChange }

func (t *TextChangeTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, shape, err := textShape(ctx, t.Handle)
	if err != nil {
		return err
	}
	page.AddAction(document.NewModifyShape(shape, func(s *document.Shape) { s.Text = t.Text }))
	return nil
}

// TextMoveTool moves a text box to a new location.
type TextMoveTool struct {
	atomic
	Handle   int32
	Location document.Point
}

func (t *TextMoveTool) Type() Type { return TextMove }

func (t *TextMoveTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, shape, err := textShape(ctx, t.Handle)
	if err != nil {
		return err
	}
	page.AddAction(document.NewModifyShape(shape, func(s *document.Shape) {
		if len(s.Points) == 0 {
			s.Points = []document.PenPoint{{}}
		}
		s.Points[0].X, s.Points[0].Y = t.Location.X, t.Location.Y
	}))
	return nil
}

// TextRemoveTool deletes a text box.
type TextRemoveTool struct {
	atomic
	Handle int32
}

func (t *TextRemoveTool) Type() Type { return TextRemove }

func (t *TextRemoveTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, shape, err := textShape(ctx, t.Handle)
	if err != nil {
		return err
	}
	page.AddAction(document.NewRemoveShapes(shape))
	return nil
}

// TextFontChangeTool restyles a text or LaTeX box.
type TextFontChangeTool struct {
	atomic
	Handle     int32
	Latex      bool
	Color      document.Color
	Font       document.Font
	Attributes map[string]bool
}

func (t *TextFontChangeTool) Type() Type {
	if t.Latex {
		return LatexFontChange
	}
	return TextFontChange
}

func (t *TextFontChangeTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, shape, err := textShape(ctx, t.Handle)
	if err != nil {
		return err
	}
	page.AddAction(document.NewModifyShape(shape, func(s *document.Shape) {
		s.Font = t.Font
		s.TextColor = t.Color
		s.Attributes = make(map[string]bool, len(t.Attributes))
		for k, v := range t.Attributes {
			s.Attributes[k] = v
		}
	}))
	return nil
}

// TextSelectionTool highlights runs of slide text. A zero handle means the
// recording did not assign one.
type TextSelectionTool struct {
	atomic
	Handle int32
	Color  document.Color
	Rects  []document.Rect
}

func (t *TextSelectionTool) Type() Type { return TextSelection }

func (t *TextSelectionTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if len(t.Rects) == 0 {
		return nil
	}
	handle := t.Handle
	if handle == 0 {
		handle = page.NextHandle()
	}
	page.AddAction(document.NewAddShapes(&document.Shape{
		Kind:   document.KindTextSelection,
		Handle: handle,
		Brush:  document.Brush{Color: t.Color},
		Rects:  append([]document.Rect(nil), t.Rects...),
	}))
	return nil
}

package tool

import (
	"fmt"
	"math"

	"github.com/ivlev/slidecast/internal/document"
)

// PaintTool draws one shape per begin/end session. Freehand kinds collect
// every point; the others are defined by the start and the latest point.
type PaintTool struct {
	kind   Type
	Handle int32
	Brush  document.Brush

	start document.PenPoint
	shape *document.Shape
}

// NewPaintTool returns a drawing tool of kind t, one of Pen through Ellipse.
func NewPaintTool(t Type, handle int32, brush document.Brush) (*PaintTool, error) {
	if t < Pen || t > Ellipse {
		return nil, fmt.Errorf("%s is not a paint tool", t)
	}
	return &PaintTool{kind: t, Handle: handle, Brush: brush}, nil
}

func (t *PaintTool) Type() Type { return t.kind }
func (t *PaintTool) sealed()    {}

func (t *PaintTool) shapeKind() document.ShapeKind {
	switch t.kind {
	case Highlighter:
		return document.KindHighlight
	case Pointer:
		return document.KindPointer
	case Arrow:
		return document.KindArrow
	case Line:
		return document.KindLine
	case Rectangle:
		return document.KindRectangle
	case Ellipse:
		return document.KindEllipse
	}
	return document.KindStroke
}

func (t *PaintTool) freehand() bool {
	return t.kind == Pen || t.kind == Highlighter || t.kind == Pointer
}

func (t *PaintTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start = p
	t.shape = &document.Shape{
		Kind:   t.shapeKind(),
		Handle: t.Handle,
		Brush:  t.Brush,
		Points: []document.PenPoint{p},
	}
	page.AddShape(t.shape)
	return nil
}

func (t *PaintTool) Execute(ctx *Context, p document.PenPoint) error {
	if _, err := ctx.page(); err != nil {
		return err
	}
	if t.shape == nil {
		// Execute without Begin: start the shape here.
		return t.Begin(ctx, p)
	}
	t.update(ctx, p)
	return nil
}

func (t *PaintTool) End(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if t.shape == nil {
		return nil
	}
	t.update(ctx, p)
	shape := t.shape
	t.shape = nil

	if t.kind == Pointer {
		page.RemoveShape(shape)
		return nil
	}
	page.Record(document.NewAddShapes(shape))
	return nil
}

func (t *PaintTool) update(ctx *Context, p document.PenPoint) {
	if t.freehand() {
		t.shape.Points = append(t.shape.Points, p)
		return
	}
	end := p
	if ctx.KeyEvent.Shift() {
		end = constrain(t.kind, t.start, p)
	}
	t.shape.Points = []document.PenPoint{t.start, end}
}

// constrain locks rectangles and ellipses to equal sides and snaps lines
// and arrows to the nearest multiple of 45 degrees.
func constrain(kind Type, start, p document.PenPoint) document.PenPoint {
	dx, dy := p.X-start.X, p.Y-start.Y
	switch kind {
	case Rectangle, Ellipse, Zoom:
		side := math.Max(math.Abs(dx), math.Abs(dy))
		p.X = start.X + math.Copysign(side, dx)
		p.Y = start.Y + math.Copysign(side, dy)
	case Line, Arrow:
		length := math.Hypot(dx, dy)
		angle := math.Round(math.Atan2(dy, dx)/(math.Pi/4)) * (math.Pi / 4)
		p.X = start.X + length*math.Cos(angle)
		p.Y = start.Y + length*math.Sin(angle)
	}
	return p
}

// ZoomTool drags out a rectangle and makes it the visible area of the page.
type ZoomTool struct {
	Handle int32
	Brush  document.Brush

	start document.PenPoint
	frame *document.Shape
}

func NewZoomTool(handle int32, brush document.Brush) *ZoomTool {
	return &ZoomTool{Handle: handle, Brush: brush}
}

func (t *ZoomTool) Type() Type { return Zoom }
func (t *ZoomTool) sealed()    {}

func (t *ZoomTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start = p
	t.frame = &document.Shape{Kind: document.KindZoom, Handle: t.Handle, Brush: t.Brush, Points: []document.PenPoint{p, p}}
	page.AddShape(t.frame)
	return nil
}

func (t *ZoomTool) Execute(ctx *Context, p document.PenPoint) error {
	if _, err := ctx.page(); err != nil {
		return err
	}
	if t.frame == nil {
		return t.Begin(ctx, p)
	}
	t.frame.Points[1] = t.corner(ctx, p)
	return nil
}

func (t *ZoomTool) End(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if t.frame == nil {
		return nil
	}
	page.RemoveShape(t.frame)
	t.frame = nil

	view := document.RectFromPoints(t.start.Point(), t.corner(ctx, p).Point())
	if !view.IsEmpty() {
		page.SetView(view)
	}
	return nil
}

func (t *ZoomTool) corner(ctx *Context, p document.PenPoint) document.PenPoint {
	if ctx.KeyEvent.Shift() {
		return constrain(Zoom, t.start, p)
	}
	return p
}

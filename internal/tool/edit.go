package tool

import (
	"math"

	"github.com/ivlev/slidecast/internal/document"
)

func deselectAll(page *document.Page) {
	for _, s := range page.SelectedShapes() {
		s.Selected = false
	}
}

// SelectTool selects the topmost shape under the pen and drags the
// selection along. A completed drag is recorded as one undoable move.
type SelectTool struct {
	start, last document.PenPoint
	moving      []*document.Shape
}

func (t *SelectTool) Type() Type { return Select }
func (t *SelectTool) sealed()    {}

func (t *SelectTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start, t.last = p, p
	t.moving = nil

	hit := page.ShapesAt(p.Point())
	if len(hit) == 0 {
		deselectAll(page)
		return nil
	}
	if !hit[0].Selected {
		if !ctx.KeyEvent.Ctrl() {
			deselectAll(page)
		}
		hit[0].Selected = true
	}
	t.moving = page.SelectedShapes()
	return nil
}

func (t *SelectTool) Execute(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if len(t.moving) == 0 {
		return nil
	}
	document.NewMoveShapes(p.X-t.last.X, p.Y-t.last.Y, t.moving...).Execute(page)
	t.last = p
	return nil
}

func (t *SelectTool) End(ctx *Context, p document.PenPoint) error {
	if err := t.Execute(ctx, p); err != nil {
		return err
	}
	dx, dy := t.last.X-t.start.X, t.last.Y-t.start.Y
	if len(t.moving) > 0 && (dx != 0 || dy != 0) {
		ctx.Page.Record(document.NewMoveShapes(dx, dy, t.moving...))
	}
	t.moving = nil
	return nil
}

// SelectGroupTool selects every shape touched by a dragged rectangle.
type SelectGroupTool struct {
	start document.PenPoint
}

func (t *SelectGroupTool) Type() Type { return SelectGroup }
func (t *SelectGroupTool) sealed()    {}

func (t *SelectGroupTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start = p
	deselectAll(page)
	return nil
}

func (t *SelectGroupTool) Execute(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	area := document.RectFromPoints(t.start.Point(), p.Point())
	for _, s := range page.Shapes() {
		s.Selected = area.Intersects(s.Bounds())
	}
	return nil
}

func (t *SelectGroupTool) End(ctx *Context, p document.PenPoint) error {
	return t.Execute(ctx, p)
}

// CloneTool duplicates the selection and drops the copies where the pen
// is lifted.
type CloneTool struct {
	start, last document.PenPoint
	clones      []*document.Shape
}

func (t *CloneTool) Type() Type { return Clone }
func (t *CloneTool) sealed()    {}

func (t *CloneTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start, t.last = p, p
	t.clones = nil

	selected := page.SelectedShapes()
	if len(selected) == 0 {
		return nil
	}
	handle := page.NextHandle()
	for _, s := range selected {
		s.Selected = false
		c := s.Clone()
		c.Handle = handle
		c.Selected = true
		handle++
		t.clones = append(t.clones, c)
	}
	for _, c := range t.clones {
		page.AddShape(c)
	}
	return nil
}

func (t *CloneTool) Execute(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if len(t.clones) == 0 {
		return nil
	}
	document.NewMoveShapes(p.X-t.last.X, p.Y-t.last.Y, t.clones...).Execute(page)
	t.last = p
	return nil
}

func (t *CloneTool) End(ctx *Context, p document.PenPoint) error {
	if err := t.Execute(ctx, p); err != nil {
		return err
	}
	if len(t.clones) > 0 {
		ctx.Page.Record(document.NewAddShapes(t.clones...))
	}
	t.clones = nil
	return nil
}

// PanTool drags the visible area of a zoomed page, clamped to the page.
type PanTool struct {
	start document.PenPoint
	view  document.Rect
}

func (t *PanTool) Type() Type { return Pan }
func (t *PanTool) sealed()    {}

func (t *PanTool) Begin(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	t.start = p
	t.view = page.View()
	return nil
}

func (t *PanTool) Execute(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if t.view.IsEmpty() {
		t.view = page.View()
	}
	b := page.Bounds()
	v := t.view
	v.X = clamp(v.X-(p.X-t.start.X), b.X, b.MaxX()-v.Width)
	v.Y = clamp(v.Y-(p.Y-t.start.Y), b.Y, b.MaxY()-v.Height)
	if v != page.View() {
		page.SetView(v)
	}
	return nil
}

func (t *PanTool) End(ctx *Context, p document.PenPoint) error {
	err := t.Execute(ctx, p)
	t.view = document.Rect{}
	return err
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// RubberTool erases every shape the pen passes over. The whole gesture is
// one undoable removal.
type RubberTool struct {
	removed []*document.Shape
}

func (t *RubberTool) Type() Type { return Rubber }
func (t *RubberTool) sealed()    {}

func (t *RubberTool) Begin(ctx *Context, p document.PenPoint) error {
	t.removed = nil
	return t.Execute(ctx, p)
}

func (t *RubberTool) Execute(ctx *Context, p document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	for _, s := range page.ShapesAt(p.Point()) {
		if page.RemoveShape(s) {
			t.removed = append(t.removed, s)
		}
	}
	return nil
}

func (t *RubberTool) End(ctx *Context, p document.PenPoint) error {
	if err := t.Execute(ctx, p); err != nil {
		return err
	}
	if len(t.removed) > 0 {
		ctx.Page.Record(document.NewRemoveShapes(t.removed...))
	}
	t.removed = nil
	return nil
}

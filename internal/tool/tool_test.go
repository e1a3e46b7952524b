package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slidecast/internal/document"
)

func pt(x, y float64) document.PenPoint { return document.PenPoint{X: x, Y: y, Pressure: 1} }

func drag(t *testing.T, tl Tool, ctx *Context, pts ...document.PenPoint) {
	t.Helper()
	require.NoError(t, tl.Begin(ctx, pts[0]))
	for _, p := range pts[1 : len(pts)-1] {
		require.NoError(t, tl.Execute(ctx, p))
	}
	require.NoError(t, tl.End(ctx, pts[len(pts)-1]))
}

func newCtx() *Context {
	return &Context{Page: document.NewPage(0, document.UnitPage)}
}

func TestType_Atomic(t *testing.T) {
	atomicTools := []Tool{
		UndoTool{}, RedoTool{}, ClearShapesTool{}, KeyTool{}, ZoomOutTool{},
		&ExtendViewTool{}, &RubberExtTool{}, &TextChangeTool{}, &TextMoveTool{},
		&TextRemoveTool{}, &TextFontChangeTool{}, &TextFontChangeTool{Latex: true},
		&TextSelectionTool{},
	}
	for _, tl := range atomicTools {
		assert.True(t, IsAtomic(tl), tl.Type().String())
	}

	pen, err := NewPaintTool(Pen, 1, document.Brush{})
	require.NoError(t, err)
	interactive := []Tool{
		pen, NewZoomTool(1, document.Brush{}), NewTextTool(1, false), NewTextTool(1, true),
		&SelectTool{}, &SelectGroupTool{}, &CloneTool{}, &PanTool{}, &RubberTool{},
	}
	for _, tl := range interactive {
		assert.False(t, IsAtomic(tl), tl.Type().String())
	}
	assert.False(t, IsAtomic(nil))
}

func TestNewPaintTool_RejectsNonPaintType(t *testing.T) {
	_, err := NewPaintTool(Undo, 1, document.Brush{})
	assert.Error(t, err)
}

func TestPaintTool_PenStrokeIsOneUndoableStep(t *testing.T) {
	ctx := newCtx()
	pen, err := NewPaintTool(Pen, 7, document.Brush{Width: 0.01})
	require.NoError(t, err)

	drag(t, pen, ctx, pt(0.1, 0.1), pt(0.2, 0.2), pt(0.3, 0.3))

	shapes := ctx.Page.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, document.KindStroke, shapes[0].Kind)
	assert.Equal(t, int32(7), shapes[0].Handle)
	assert.Len(t, shapes[0].Points, 3)

	require.True(t, ctx.Page.Undo())
	assert.False(t, ctx.Page.HasShapes())
	require.True(t, ctx.Page.Redo())
	assert.Len(t, ctx.Page.Shapes(), 1)
}

func TestPaintTool_PointerIsTransient(t *testing.T) {
	ctx := newCtx()
	pointer, err := NewPaintTool(Pointer, 1, document.Brush{})
	require.NoError(t, err)

	require.NoError(t, pointer.Begin(ctx, pt(0.1, 0.1)))
	assert.True(t, ctx.Page.HasShapes())
	require.NoError(t, pointer.End(ctx, pt(0.2, 0.2)))

	assert.False(t, ctx.Page.HasShapes())
	assert.Zero(t, ctx.Page.History().UndoLen())
}

func TestPaintTool_ShiftLocksRectangleAspect(t *testing.T) {
	ctx := newCtx()
	ctx.KeyEvent = &KeyEvent{Modifiers: ModShift}
	rect, err := NewPaintTool(Rectangle, 1, document.Brush{})
	require.NoError(t, err)

	drag(t, rect, ctx, pt(0.1, 0.1), pt(0.3, 0.2))

	pts := ctx.Page.Shapes()[0].Points
	require.Len(t, pts, 2)
	assert.InDelta(t, 0.3, pts[1].X, 1e-9)
	assert.InDelta(t, 0.3, pts[1].Y, 1e-9)
}

func TestZoomTool_SetsView(t *testing.T) {
	ctx := newCtx()
	drag(t, NewZoomTool(1, document.Brush{}), ctx, pt(0.5, 0.4), pt(0.1, 0.1))

	assert.False(t, ctx.Page.HasShapes(), "zoom frame is removed")
	v := ctx.Page.View()
	assert.InDelta(t, 0.1, v.X, 1e-9)
	assert.InDelta(t, 0.4, v.Width, 1e-9)
	assert.InDelta(t, 0.3, v.Height, 1e-9)

	require.NoError(t, ZoomOutTool{}.Execute(ctx, document.PenPoint{}))
	assert.Equal(t, ctx.Page.Bounds(), ctx.Page.View())
}

func TestTextTools(t *testing.T) {
	ctx := newCtx()
	require.NoError(t, NewTextTool(4, false).Begin(ctx, pt(0.2, 0.2)))

	require.NoError(t, (&TextChangeTool{Handle: 4, Text: "hello"}).Execute(ctx, document.PenPoint{}))
	require.NoError(t, (&TextMoveTool{Handle: 4, Location: document.Point{X: 0.5, Y: 0.6}}).Execute(ctx, document.PenPoint{}))
	font := document.Font{Family: "Serif", Size: 0.05, Weight: document.WeightBold}
	require.NoError(t, (&TextFontChangeTool{Handle: 4, Font: font, Color: 0xFFFF0000,
		Attributes: map[string]bool{"underline": true}}).Execute(ctx, document.PenPoint{}))

	s, ok := ctx.Page.ShapeByHandle(4)
	require.True(t, ok)
	assert.Equal(t, "hello", s.Text)
	assert.Equal(t, 0.5, s.Points[0].X)
	assert.Equal(t, font, s.Font)
	assert.True(t, s.Attributes["underline"])

	require.True(t, ctx.Page.Undo())
	assert.Equal(t, DefaultFont, s.Font)

	require.NoError(t, (&TextRemoveTool{Handle: 4}).Execute(ctx, document.PenPoint{}))
	assert.False(t, ctx.Page.HasShapes())

	err := (&TextChangeTool{Handle: 99}).Execute(ctx, document.PenPoint{})
	assert.ErrorIs(t, err, ErrShapeNotFound)
}

func TestTextSelectionTool_AssignsHandle(t *testing.T) {
	ctx := newCtx()
	ctx.Page.AddShape(&document.Shape{Handle: 3})
	sel := &TextSelectionTool{Color: 0x80FFFF00, Rects: []document.Rect{{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.05}}}
	require.NoError(t, sel.Execute(ctx, document.PenPoint{}))

	s, ok := ctx.Page.ShapeByHandle(4)
	require.True(t, ok)
	assert.Equal(t, document.KindTextSelection, s.Kind)
}

func TestSelectTool_DragIsOneUndoableMove(t *testing.T) {
	ctx := newCtx()
	box := &document.Shape{Kind: document.KindRectangle, Handle: 1, Points: []document.PenPoint{pt(0.1, 0.1), pt(0.2, 0.2)}}
	ctx.Page.AddShape(box)

	drag(t, &SelectTool{}, ctx, pt(0.15, 0.15), pt(0.2, 0.15), pt(0.25, 0.2))

	assert.True(t, box.Selected)
	assert.InDelta(t, 0.2, box.Points[0].X, 1e-9)
	assert.InDelta(t, 0.15, box.Points[0].Y, 1e-9)

	require.True(t, ctx.Page.Undo())
	assert.InDelta(t, 0.1, box.Points[0].X, 1e-9)
	assert.InDelta(t, 0.1, box.Points[0].Y, 1e-9)
}

func TestSelectGroupAndClone(t *testing.T) {
	ctx := newCtx()
	a := &document.Shape{Kind: document.KindLine, Handle: 1, Points: []document.PenPoint{pt(0.1, 0.1), pt(0.2, 0.1)}}
	b := &document.Shape{Kind: document.KindLine, Handle: 2, Points: []document.PenPoint{pt(0.6, 0.6), pt(0.7, 0.6)}}
	ctx.Page.AddShape(a)
	ctx.Page.AddShape(b)

	drag(t, &SelectGroupTool{}, ctx, pt(0.05, 0.05), pt(0.3, 0.3))
	assert.True(t, a.Selected)
	assert.False(t, b.Selected)

	drag(t, &CloneTool{}, ctx, pt(0.15, 0.1), pt(0.15, 0.3))
	require.Len(t, ctx.Page.Shapes(), 3)
	c, ok := ctx.Page.ShapeByHandle(3)
	require.True(t, ok)
	assert.InDelta(t, 0.3, c.Points[0].Y, 1e-9)
	assert.InDelta(t, 0.1, a.Points[0].Y, 1e-9, "original stays in place")

	require.True(t, ctx.Page.Undo())
	assert.Len(t, ctx.Page.Shapes(), 2)
}

func TestPanTool_ClampsToBounds(t *testing.T) {
	ctx := newCtx()
	ctx.Page.SetView(document.Rect{X: 0.25, Y: 0.2, Width: 0.5, Height: 0.3})

	drag(t, &PanTool{}, ctx, pt(0.5, 0.5), pt(0.9, 0.9))

	v := ctx.Page.View()
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
	assert.InDelta(t, 0.5, v.Width, 1e-9)
}

func TestRubberTool(t *testing.T) {
	ctx := newCtx()
	a := &document.Shape{Kind: document.KindLine, Handle: 1, Points: []document.PenPoint{pt(0.1, 0.1), pt(0.2, 0.1)}}
	b := &document.Shape{Kind: document.KindLine, Handle: 2, Points: []document.PenPoint{pt(0.5, 0.5), pt(0.6, 0.5)}}
	ctx.Page.AddAction(document.NewAddShapes(a, b))

	drag(t, &RubberTool{}, ctx, pt(0.15, 0.1), pt(0.55, 0.5), pt(0.9, 0.9))
	assert.False(t, ctx.Page.HasShapes())

	require.True(t, ctx.Page.Undo(), "the whole erase gesture undoes at once")
	assert.Len(t, ctx.Page.Shapes(), 2)

	require.NoError(t, (&RubberExtTool{Handle: 2}).Execute(ctx, document.PenPoint{}))
	assert.Equal(t, []*document.Shape{a}, ctx.Page.Shapes())
}

func TestClearUndoRedoTools(t *testing.T) {
	ctx := newCtx()
	ctx.Page.AddAction(document.NewAddShapes(&document.Shape{Handle: 1}, &document.Shape{Handle: 2}))

	require.NoError(t, ClearShapesTool{}.Execute(ctx, document.PenPoint{}))
	assert.False(t, ctx.Page.HasShapes())

	require.NoError(t, UndoTool{}.Execute(ctx, document.PenPoint{}))
	assert.Len(t, ctx.Page.Shapes(), 2)

	require.NoError(t, RedoTool{}.Execute(ctx, document.PenPoint{}))
	assert.False(t, ctx.Page.HasShapes())
}

func TestTools_RequirePage(t *testing.T) {
	ctx := &Context{}
	assert.ErrorIs(t, UndoTool{}.Execute(ctx, document.PenPoint{}), ErrNoPage)
	assert.ErrorIs(t, (&RubberTool{}).Begin(ctx, document.PenPoint{}), ErrNoPage)
}

func TestKeyEvent_Modifiers(t *testing.T) {
	e := &KeyEvent{Code: 65, Modifiers: ModShift | ModAlt, Kind: KeyPress}
	assert.True(t, e.Shift())
	assert.False(t, e.Ctrl())
	assert.True(t, e.Alt())

	var none *KeyEvent
	assert.False(t, none.Shift())
	assert.False(t, KeyEventKind(3).Valid())
	assert.Equal(t, "keypress", KeyPress.String())
}

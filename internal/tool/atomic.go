package tool

import (
	"fmt"

	"github.com/ivlev/slidecast/internal/document"
)

type UndoTool struct{ atomic }

func (UndoTool) Type() Type { return Undo }

func (UndoTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	page.Undo()
	return nil
}

type RedoTool struct{ atomic }

func (RedoTool) Type() Type { return Redo }

func (RedoTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	page.Redo()
	return nil
}

// ClearShapesTool removes every shape as a single undoable step.
type ClearShapesTool struct{ atomic }

func (ClearShapesTool) Type() Type { return ClearShapes }

func (ClearShapesTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	if page.HasShapes() {
		page.AddAction(document.NewRemoveShapes(page.Shapes()...))
	}
	return nil
}

// KeyTool only carries a key event; the event itself is applied by the
// executor before the tool runs.
type KeyTool struct{ atomic }

func (KeyTool) Type() Type { return Key }

func (KeyTool) Execute(ctx *Context, _ document.PenPoint) error {
	_, err := ctx.page()
	return err
}

// ZoomOutTool shows the whole page again.
type ZoomOutTool struct{ atomic }

func (ZoomOutTool) Type() Type { return ZoomOut }

func (ZoomOutTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	page.SetView(page.Bounds())
	return nil
}

// ExtendViewTool sets the visible area of the page.
type ExtendViewTool struct {
	atomic
	View document.Rect
}

func (t *ExtendViewTool) Type() Type { return ExtendView }

func (t *ExtendViewTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	page.SetView(t.View)
	return nil
}

// RubberExtTool erases one shape addressed by handle.
type RubberExtTool struct {
	atomic
	Handle int32
}

func (t *RubberExtTool) Type() Type { return RubberExt }

func (t *RubberExtTool) Execute(ctx *Context, _ document.PenPoint) error {
	page, err := ctx.page()
	if err != nil {
		return err
	}
	shape, ok := page.ShapeByHandle(t.Handle)
	if !ok {
		return fmt.Errorf("handle %d: %w", t.Handle, ErrShapeNotFound)
	}
	page.AddAction(document.NewRemoveShapes(shape))
	return nil
}

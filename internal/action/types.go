package action

import (
	"fmt"

	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/executor"
	"github.com/ivlev/slidecast/internal/tool"
)

// PaintAction selects a drawing tool with its brush: Pen through Zoom.
type PaintAction struct {
	Base
	Tag    Type
	Handle int32
	Brush  document.Brush
}

func (a *PaintAction) Type() Type { return a.Tag }

func (a *PaintAction) Apply(ex Executor) error {
	var t tool.Tool
	switch a.Tag {
	case Zoom:
		t = tool.NewZoomTool(a.Handle, a.Brush)
	case Pen, Highlighter, Pointer, Arrow, Line, Rectangle, Ellipse:
		pt, err := tool.NewPaintTool(paintTools[a.Tag], a.Handle, a.Brush)
		if err != nil {
			return err
		}
		t = pt
	default:
		return fmt.Errorf("%s: %w", a.Tag, ErrTypeMismatch)
	}
	ex.SetKeyEvent(a.Key)
	return ex.SetTool(t)
}

var paintTools = map[Type]tool.Type{
	Pen: tool.Pen, Highlighter: tool.Highlighter, Pointer: tool.Pointer,
	Arrow: tool.Arrow, Line: tool.Line, Rectangle: tool.Rectangle, Ellipse: tool.Ellipse,
}

// DragAction moves the pen of the current tool: ToolBegin, ToolExecute, ToolEnd.
type DragAction struct {
	Base
	Tag   Type
	Point *document.PenPoint
}

func (a *DragAction) Type() Type { return a.Tag }

func (a *DragAction) Apply(ex Executor) error {
	if a.Point == nil {
		return fmt.Errorf("%s: %w", a.Tag, ErrMissingPayload)
	}
	switch a.Tag {
	case ToolBegin:
		return ex.BeginTool(*a.Point)
	case ToolExecute:
		return ex.ExecuteTool(*a.Point)
	case ToolEnd:
		return ex.EndTool(*a.Point)
	}
	return fmt.Errorf("%s: %w", a.Tag, ErrTypeMismatch)
}

// SimpleAction carries no payload: Undo through Key.
type SimpleAction struct {
	Base
	Tag Type
}

func (a *SimpleAction) Type() Type { return a.Tag }

func (a *SimpleAction) Apply(ex Executor) error {
	var t tool.Tool
	switch a.Tag {
	case Undo:
		t = tool.UndoTool{}
	case Redo:
		t = tool.RedoTool{}
	case Clone:
		t = &tool.CloneTool{}
	case Select:
		t = &tool.SelectTool{}
	case SelectGroup:
		t = &tool.SelectGroupTool{}
	case Pan:
		t = &tool.PanTool{}
	case ZoomOut:
		t = tool.ZoomOutTool{}
	case Rubber:
		t = &tool.RubberTool{}
	case ClearShapes:
		t = tool.ClearShapesTool{}
	case Key:
		t = tool.KeyTool{}
	default:
		return fmt.Errorf("%s: %w", a.Tag, ErrTypeMismatch)
	}
	ex.SetKeyEvent(a.Key)
	return ex.SelectAndExecuteTool(t)
}

// HandleAction addresses a shape by handle: Text, Latex, TextRemove, RubberExt.
type HandleAction struct {
	Base
	Tag    Type
	Handle int32
}

func (a *HandleAction) Type() Type { return a.Tag }

func (a *HandleAction) Apply(ex Executor) error {
	switch a.Tag {
	case Text:
		return ex.SetTool(tool.NewTextTool(a.Handle, false))
	case Latex:
		return ex.SetTool(tool.NewTextTool(a.Handle, true))
	case TextRemove:
		return ex.SelectAndExecuteTool(&tool.TextRemoveTool{Handle: a.Handle})
	case RubberExt:
		return ex.SelectAndExecuteTool(&tool.RubberExtTool{Handle: a.Handle})
	}
	return fmt.Errorf("%s: %w", a.Tag, ErrTypeMismatch)
}

// TextChangeAction replaces the content of a text box.
type TextChangeAction struct {
	Base
	Handle int32
	Text   string
}

func (a *TextChangeAction) Type() Type { return TextChange }

func (a *TextChangeAction) Apply(ex Executor) error {
	return ex.SelectAndExecuteTool(&tool.TextChangeTool{Handle: a.Handle, Text: a.Text})
}

// FontChangeAction restyles a text box: TextFontChange, LatexFontChange.
type FontChangeAction struct {
	Base
	Tag        Type
	Handle     int32
	Color      document.Color
	Font       document.Font
	Attributes map[string]bool
}

func (a *FontChangeAction) Type() Type { return a.Tag }

func (a *FontChangeAction) Apply(ex Executor) error {
	if a.Tag != TextFontChange && a.Tag != LatexFontChange {
		return fmt.Errorf("%s: %w", a.Tag, ErrTypeMismatch)
	}
	return ex.SelectAndExecuteTool(&tool.TextFontChangeTool{
		Handle:     a.Handle,
		Latex:      a.Tag == LatexFontChange,
		Color:      a.Color,
		Font:       a.Font,
		Attributes: a.Attributes,
	})
}

// TextMoveAction moves a text box.
type TextMoveAction struct {
	Base
	Handle   int32
	Location document.Point
}

func (a *TextMoveAction) Type() Type { return TextMove }

func (a *TextMoveAction) Apply(ex Executor) error {
	return ex.SelectAndExecuteTool(&tool.TextMoveTool{Handle: a.Handle, Location: a.Location})
}

// TextSelectionAction highlights slide text. Ext selects the variant that
// carries a handle.
type TextSelectionAction struct {
	Base
	Ext    bool
	Handle int32
	Color  document.Color
	Rects  []document.Rect
}

func (a *TextSelectionAction) Type() Type {
	if a.Ext {
		return TextSelectionExt
	}
	return TextSelection
}

func (a *TextSelectionAction) Apply(ex Executor) error {
	handle := a.Handle
	if !a.Ext {
		handle = 0
	}
	return ex.SelectAndExecuteTool(&tool.TextSelectionTool{Handle: handle, Color: a.Color, Rects: a.Rects})
}

// ExtendViewAction sets the visible page area.
type ExtendViewAction struct {
	Base
	View document.Rect
}

func (a *ExtendViewAction) Type() Type { return ExtendView }

func (a *ExtendViewAction) Apply(ex Executor) error {
	return ex.SelectAndExecuteTool(&tool.ExtendViewTool{View: a.View})
}

// ScreenAction starts a screen recording overlay.
type ScreenAction struct {
	Base
	VideoOffset   int32
	VideoLength   int32
	ContentWidth  int32
	ContentHeight int32
	FileName      string
}

func (a *ScreenAction) Type() Type { return Screen }

func (a *ScreenAction) Apply(ex Executor) error {
	return ex.PlayVideo(executor.VideoRequest{
		FileName:  a.FileName,
		Offset:    int64(a.VideoOffset),
		Length:    int64(a.VideoLength),
		Width:     int(a.ContentWidth),
		Height:    int(a.ContentHeight),
		StartTime: a.Time,
	})
}

// New returns an empty action of type t with its tag set, ready to be
// filled in. It returns nil for unknown tags.
func New(t Type) Action {
	switch t {
	case Pen, Highlighter, Pointer, Arrow, Line, Rectangle, Ellipse, Zoom:
		return &PaintAction{Tag: t}
	case ToolBegin, ToolExecute, ToolEnd:
		return &DragAction{Tag: t}
	case Undo, Redo, Clone, Select, SelectGroup, Pan, ZoomOut, Rubber, ClearShapes, Key:
		return &SimpleAction{Tag: t}
	case Text, Latex, TextRemove, RubberExt:
		return &HandleAction{Tag: t}
	case TextChange:
		return &TextChangeAction{}
	case TextFontChange, LatexFontChange:
		return &FontChangeAction{Tag: t}
	case TextMove:
		return &TextMoveAction{}
	case TextSelection:
		return &TextSelectionAction{}
	case TextSelectionExt:
		return &TextSelectionAction{Ext: true}
	case ExtendView:
		return &ExtendViewAction{}
	case Screen:
		return &ScreenAction{}
	}
	return nil
}

// Package tool implements the interactive sessions that recorded actions
// select and drive. A tool is begun, executed any number of times and ended
// against the current page; atomic tools do all their work in one step.
package tool

import (
	"errors"
	"fmt"

	"github.com/ivlev/slidecast/internal/document"
)

var (
	// ErrNoPage is returned when a tool runs without a current page.
	ErrNoPage = errors.New("no page selected")

	// ErrShapeNotFound is returned when a tool addresses a handle that is not on the page.
	ErrShapeNotFound = errors.New("shape not found")
)

// Type enumerates the closed set of tools.
type Type int

const (
	Pen Type = iota
	Highlighter
	Pointer
	Arrow
	Line
	Rectangle
	Ellipse
	Zoom
	Text
	Latex
	TextChange
	TextMove
	TextRemove
	TextFontChange
	LatexFontChange
	TextSelection
	Select
	SelectGroup
	Clone
	Pan
	ZoomOut
	Rubber
	RubberExt
	ClearShapes
	Undo
	Redo
	Key
	ExtendView
)

var typeNames = [...]string{
	Pen: "pen", Highlighter: "highlighter", Pointer: "pointer", Arrow: "arrow",
	Line: "line", Rectangle: "rectangle", Ellipse: "ellipse", Zoom: "zoom",
	Text: "text", Latex: "latex", TextChange: "text-change", TextMove: "text-move",
	TextRemove: "text-remove", TextFontChange: "text-font-change",
	LatexFontChange: "latex-font-change", TextSelection: "text-selection",
	Select: "select", SelectGroup: "select-group", Clone: "clone", Pan: "pan",
	ZoomOut: "zoom-out", Rubber: "rubber", RubberExt: "rubber-ext",
	ClearShapes: "clear-shapes", Undo: "undo", Redo: "redo", Key: "key",
	ExtendView: "extend-view",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Atomic reports whether tools of this type complete in a single
// begin/execute/end cycle and must not stay selected afterwards.
func (t Type) Atomic() bool {
	switch t {
	case TextChange, TextMove, TextRemove, TextFontChange, LatexFontChange,
		TextSelection, ZoomOut, RubberExt, ClearShapes, Undo, Redo, Key, ExtendView:
		return true
	}
	return false
}

// Context carries what a tool operates on.
type Context struct {
	Page     *document.Page
	KeyEvent *KeyEvent
}

func (c *Context) page() (*document.Page, error) {
	if c == nil || c.Page == nil {
		return nil, ErrNoPage
	}
	return c.Page, nil
}

// Tool is implemented only by the types in this package.
type Tool interface {
	Type() Type
	Begin(ctx *Context, p document.PenPoint) error
	Execute(ctx *Context, p document.PenPoint) error
	End(ctx *Context, p document.PenPoint) error

	sealed()
}

// IsAtomic reports whether t is an atomic tool. A nil tool is not atomic.
func IsAtomic(t Tool) bool {
	return t != nil && t.Type().Atomic()
}

// atomic provides the begin/end halves of single-step tools; the work is
// done in Execute.
type atomic struct{}

func (atomic) Begin(*Context, document.PenPoint) error { return nil }
func (atomic) End(*Context, document.PenPoint) error   { return nil }
func (atomic) sealed()                                 {}

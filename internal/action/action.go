// Package action defines the closed set of recorded annotation actions and
// their binary codec. Every action knows how to apply itself to an Executor.
package action

import (
	"fmt"

	"github.com/ivlev/slidecast/internal/dataview"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/executor"
	"github.com/ivlev/slidecast/internal/tool"
)

// Type is the wire tag of an action.
type Type int32

const (
	Pen Type = iota
	Highlighter
	Pointer
	Arrow
	Line
	Rectangle
	Ellipse
	Zoom
	ToolBegin
	ToolExecute
	ToolEnd
	Undo
	Redo
	Clone
	Select
	SelectGroup
	Pan
	ZoomOut
	Rubber
	ClearShapes
	Key
	Text
	TextChange
	Latex
	TextFontChange
	LatexFontChange
	TextRemove
	TextMove
	RubberExt
	TextSelection
	TextSelectionExt
	ExtendView
	Screen

	typeCount
)

var typeNames = [typeCount]string{
	Pen: "pen", Highlighter: "highlighter", Pointer: "pointer", Arrow: "arrow",
	Line: "line", Rectangle: "rectangle", Ellipse: "ellipse", Zoom: "zoom",
	ToolBegin: "tool-begin", ToolExecute: "tool-execute", ToolEnd: "tool-end",
	Undo: "undo", Redo: "redo", Clone: "clone", Select: "select",
	SelectGroup: "select-group", Pan: "pan", ZoomOut: "zoom-out", Rubber: "rubber",
	ClearShapes: "clear-shapes", Key: "key", Text: "text", TextChange: "text-change",
	Latex: "latex", TextFontChange: "text-font-change",
	LatexFontChange: "latex-font-change", TextRemove: "text-remove",
	TextMove: "text-move", RubberExt: "rubber-ext", TextSelection: "text-selection",
	TextSelectionExt: "text-selection-ext", ExtendView: "extend-view", Screen: "screen",
}

// Known reports whether t is a tag this codec understands.
func (t Type) Known() bool { return t >= 0 && t < typeCount }

func (t Type) String() string {
	if t.Known() {
		return typeNames[t]
	}
	return fmt.Sprintf("action(%d)", int32(t))
}

// ParseType is the inverse of Type.String for known tags.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action type %q", name)
}

// Types returns every known tag in wire order.
func Types() []Type {
	all := make([]Type, typeCount)
	for i := range all {
		all[i] = Type(i)
	}
	return all
}

// Executor is the capability surface actions are applied to.
type Executor interface {
	SetOnSelectPageIndex(fn func(int))
	SetSeek(seek bool)
	SetKeyEvent(e *tool.KeyEvent)
	SetPageNumber(n int) error
	SetTool(t tool.Tool) error
	SelectAndExecuteTool(t tool.Tool) error
	BeginTool(p document.PenPoint) error
	ExecuteTool(p document.PenPoint) error
	EndTool(p document.PenPoint) error
	PlayVideo(req executor.VideoRequest) error
	StopVideo() error
}

// Action is one recorded, timestamped user operation. The set of
// implementations is closed.
type Action interface {
	Type() Type
	// Timestamp is the position on the audio clock in milliseconds. It is
	// assigned by the page framing, not by the action payload.
	Timestamp() int64
	SetTimestamp(ms int64)
	KeyEvent() *tool.KeyEvent
	SetKeyEvent(e *tool.KeyEvent)
	Apply(ex Executor) error

	encode(b *dataview.Builder) error
}

// Base holds the fields shared by every action.
type Base struct {
	Time int64
	Key  *tool.KeyEvent
}

func (b *Base) Timestamp() int64             { return b.Time }
func (b *Base) SetTimestamp(ms int64)        { b.Time = ms }
func (b *Base) KeyEvent() *tool.KeyEvent     { return b.Key }
func (b *Base) SetKeyEvent(e *tool.KeyEvent) { b.Key = e }

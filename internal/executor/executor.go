// Package executor applies tool sessions to a document. Live drives the
// visible document during playback; Silent rebuilds state without notifying
// anyone.
package executor

import (
	"errors"

	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/tool"
)

// ErrNoTool is returned when a pen event arrives before any tool was selected.
var ErrNoTool = errors.New("no tool selected")

// VideoRequest describes a screen recording to overlay on the slides.
type VideoRequest struct {
	FileName string `yaml:"file"`
	// Offset and Length are in milliseconds within the video file.
	Offset int64 `yaml:"offset"`
	Length int64 `yaml:"length"`
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	// StartTime is the position on the audio clock the video starts at.
	StartTime int64 `yaml:"start"`
}

// EndsBy reports whether the video has finished at clock position t. A zero
// Length means the length is unknown and the video never counts as finished.
func (r VideoRequest) EndsBy(t int64) bool {
	return r.Length > 0 && r.StartTime+r.Length <= t
}

// VideoController plays screen recordings.
type VideoController interface {
	Play(req VideoRequest) error
	Stop() error
}

// ToolState is the tool bookkeeping of one executor.
type ToolState struct {
	PageNumber int
	Page       *document.Page
	Tool       tool.Tool
	// Previous is the last interactive tool; atomic tools never end up here.
	Previous tool.Tool
	KeyEvent *tool.KeyEvent
}

func (s *ToolState) context() *tool.Context {
	return &tool.Context{Page: s.Page, KeyEvent: s.KeyEvent}
}

// core holds what Live and Silent share. run wraps every document mutation.
type core struct {
	doc   *document.Document
	state ToolState
	run   func(page *document.Page, fn func() error) error
}

// State exposes the tool bookkeeping for inspection.
func (c *core) State() *ToolState { return &c.state }

func (c *core) SetKeyEvent(e *tool.KeyEvent) { c.state.KeyEvent = e }

// RestoreTools replaces the selected tools and key event with those of s.
// The current page is kept.
func (c *core) RestoreTools(s ToolState) {
	c.state.Tool = s.Tool
	c.state.Previous = s.Previous
	c.state.KeyEvent = s.KeyEvent
}

func (c *core) SetPageNumber(n int) error {
	page, err := c.doc.Page(n)
	if err != nil {
		return err
	}
	c.state.PageNumber = n
	c.state.Page = page
	return nil
}

func (c *core) SetTool(t tool.Tool) error {
	c.state.Tool = t
	if t != nil && !tool.IsAtomic(t) {
		c.state.Previous = t
	}
	return nil
}

// SelectAndExecuteTool runs an atomic tool once at the zero point and then
// returns to the previous interactive tool. Interactive tools are simply
// selected.
func (c *core) SelectAndExecuteTool(t tool.Tool) error {
	if !tool.IsAtomic(t) {
		return c.SetTool(t)
	}
	c.state.Tool = t
	defer func() { c.state.Tool = c.state.Previous }()

	var zero document.PenPoint
	return c.apply(func(ctx *tool.Context) error {
		if err := t.Begin(ctx, zero); err != nil {
			return err
		}
		if err := t.Execute(ctx, zero); err != nil {
			return err
		}
		return t.End(ctx, zero)
	})
}

func (c *core) BeginTool(p document.PenPoint) error {
	return c.withTool(func(t tool.Tool, ctx *tool.Context) error { return t.Begin(ctx, p) })
}

func (c *core) ExecuteTool(p document.PenPoint) error {
	return c.withTool(func(t tool.Tool, ctx *tool.Context) error { return t.Execute(ctx, p) })
}

func (c *core) EndTool(p document.PenPoint) error {
	return c.withTool(func(t tool.Tool, ctx *tool.Context) error { return t.End(ctx, p) })
}

func (c *core) withTool(fn func(tool.Tool, *tool.Context) error) error {
	t := c.state.Tool
	if t == nil {
		return ErrNoTool
	}
	return c.apply(func(ctx *tool.Context) error { return fn(t, ctx) })
}

func (c *core) apply(fn func(ctx *tool.Context) error) error {
	ctx := c.state.context()
	if ctx.Page == nil {
		return tool.ErrNoPage
	}
	return c.run(ctx.Page, func() error { return fn(ctx) })
}

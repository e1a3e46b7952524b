package executor

import (
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/tool"
)

// Tracker follows tool and key selection without touching any page. Running
// a page's actions through it yields the tool state playback leaves behind.
type Tracker struct {
	state ToolState
}

func NewTracker() *Tracker { return &Tracker{} }

// State returns the tracked tool state.
func (t *Tracker) State() ToolState { return t.state }

func (t *Tracker) SetOnSelectPageIndex(func(int))      {}
func (t *Tracker) SetSeek(bool)                        {}
func (t *Tracker) SetKeyEvent(e *tool.KeyEvent)        { t.state.KeyEvent = e }
func (t *Tracker) BeginTool(document.PenPoint) error   { return nil }
func (t *Tracker) ExecuteTool(document.PenPoint) error { return nil }
func (t *Tracker) EndTool(document.PenPoint) error     { return nil }
func (t *Tracker) PlayVideo(VideoRequest) error        { return nil }
func (t *Tracker) StopVideo() error                    { return nil }

func (t *Tracker) SetPageNumber(n int) error {
	t.state.PageNumber = n
	return nil
}

func (t *Tracker) SetTool(tl tool.Tool) error {
	t.state.Tool = tl
	if tl != nil && !tool.IsAtomic(tl) {
		t.state.Previous = tl
	}
	return nil
}

// SelectAndExecuteTool leaves the previous interactive tool selected, as
// an atomic tool does once it has run.
func (t *Tracker) SelectAndExecuteTool(tl tool.Tool) error {
	if !tool.IsAtomic(tl) {
		return t.SetTool(tl)
	}
	t.state.Tool = t.state.Previous
	return nil
}

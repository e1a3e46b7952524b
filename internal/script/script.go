// Package script is the editable YAML form of a recording. A recording can
// be dumped to a script, edited by hand and built back into the binary
// format.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/tool"
)

// Script represents a complete recording: its pages and the files holding
// the document and audio sections.
type Script struct {
	Version  uint32 `yaml:"version"`
	Duration int64  `yaml:"duration"` // ms
	// Document and Audio are paths relative to the script file.
	Document string `yaml:"document,omitempty"`
	Audio    string `yaml:"audio,omitempty"`
	Pages    []Page `yaml:"pages"`
}

// Page represents one recorded page block.
type Page struct {
	Number    int    `yaml:"number"`
	Timestamp int64  `yaml:"timestamp"` // ms
	Static    []Step `yaml:"static,omitempty"`
	Playback  []Step `yaml:"playback,omitempty"`
}

// Step is one action. Only the fields of its type are set.
type Step struct {
	Time int64          `yaml:"t"`
	Type string         `yaml:"type"`
	Key  *tool.KeyEvent `yaml:"key,omitempty"`

	Handle     int32              `yaml:"handle,omitempty"`
	Brush      *document.Brush    `yaml:"brush,omitempty"`
	Point      *document.PenPoint `yaml:"point,omitempty"`
	Text       string             `yaml:"text,omitempty"`
	Color      *document.Color    `yaml:"color,omitempty"`
	Font       *document.Font     `yaml:"font,omitempty"`
	Attributes map[string]bool    `yaml:"attributes,omitempty"`
	Location   *document.Point    `yaml:"location,omitempty"`
	Rects      []document.Rect    `yaml:"rects,omitempty"`
	View       *document.Rect     `yaml:"view,omitempty"`
	Video      *Video             `yaml:"video,omitempty"`
}

// Video is the payload of a screen step.
type Video struct {
	File   string `yaml:"file"`
	Offset int32  `yaml:"offset"`
	Length int32  `yaml:"length"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
}

// FromRecording converts a decoded recording. Document and Audio are left
// empty; the caller decides where the sections are stored.
func FromRecording(f *recording.File) *Script {
	s := &Script{Version: f.Header.Version, Duration: f.Header.Duration}
	for _, rp := range f.Pages {
		s.Pages = append(s.Pages, Page{
			Number:    rp.Number,
			Timestamp: rp.Timestamp,
			Static:    steps(rp.Static),
			Playback:  steps(rp.Playback),
		})
	}
	return s
}

func steps(actions []action.Action) []Step {
	var out []Step
	for _, a := range actions {
		out = append(out, StepOf(a))
	}
	return out
}

// StepOf describes a single action.
func StepOf(a action.Action) Step {
	st := Step{Time: a.Timestamp(), Type: a.Type().String(), Key: a.KeyEvent()}
	switch a := a.(type) {
	case *action.PaintAction:
		st.Handle = a.Handle
		brush := a.Brush
		st.Brush = &brush
	case *action.DragAction:
		st.Point = a.Point
	case *action.HandleAction:
		st.Handle = a.Handle
	case *action.TextChangeAction:
		st.Handle = a.Handle
		st.Text = a.Text
	case *action.FontChangeAction:
		st.Handle = a.Handle
		st.Color = colorPtr(a.Color)
		font := a.Font
		st.Font = &font
		st.Attributes = a.Attributes
	case *action.TextMoveAction:
		st.Handle = a.Handle
		loc := a.Location
		st.Location = &loc
	case *action.TextSelectionAction:
		st.Handle = a.Handle
		st.Color = colorPtr(a.Color)
		st.Rects = a.Rects
	case *action.ExtendViewAction:
		view := a.View
		st.View = &view
	case *action.ScreenAction:
		st.Video = &Video{
			File:   a.FileName,
			Offset: a.VideoOffset,
			Length: a.VideoLength,
			Width:  a.ContentWidth,
			Height: a.ContentHeight,
		}
	}
	return st
}

func colorPtr(c document.Color) *document.Color { return &c }

// Action builds the action the step describes.
func (st Step) Action() (action.Action, error) {
	t, err := action.ParseType(st.Type)
	if err != nil {
		return nil, err
	}
	a := action.New(t)
	a.SetTimestamp(st.Time)
	a.SetKeyEvent(st.Key)

	switch a := a.(type) {
	case *action.PaintAction:
		a.Handle = st.Handle
		if st.Brush == nil {
			return nil, fmt.Errorf("%s at %dms: brush: %w", t, st.Time, action.ErrMissingPayload)
		}
		a.Brush = *st.Brush
	case *action.DragAction:
		if st.Point == nil {
			return nil, fmt.Errorf("%s at %dms: point: %w", t, st.Time, action.ErrMissingPayload)
		}
		a.Point = st.Point
	case *action.HandleAction:
		a.Handle = st.Handle
	case *action.TextChangeAction:
		a.Handle = st.Handle
		a.Text = st.Text
	case *action.FontChangeAction:
		a.Handle = st.Handle
		a.Color = colorOf(st.Color)
		if st.Font != nil {
			a.Font = *st.Font
		}
		a.Attributes = st.Attributes
	case *action.TextMoveAction:
		a.Handle = st.Handle
		if st.Location != nil {
			a.Location = *st.Location
		}
	case *action.TextSelectionAction:
		if a.Ext {
			a.Handle = st.Handle
		}
		a.Color = colorOf(st.Color)
		a.Rects = st.Rects
	case *action.ExtendViewAction:
		if st.View == nil {
			return nil, fmt.Errorf("%s at %dms: view: %w", t, st.Time, action.ErrMissingPayload)
		}
		a.View = *st.View
	case *action.ScreenAction:
		if st.Video == nil {
			return nil, fmt.Errorf("%s at %dms: video: %w", t, st.Time, action.ErrMissingPayload)
		}
		a.FileName = st.Video.File
		a.VideoOffset = st.Video.Offset
		a.VideoLength = st.Video.Length
		a.ContentWidth = st.Video.Width
		a.ContentHeight = st.Video.Height
	}
	return a, nil
}

func colorOf(c *document.Color) document.Color {
	if c == nil {
		return 0
	}
	return *c
}

// Recording builds the recording the script describes. Section files are
// resolved against dir.
func (s *Script) Recording(dir string) (*recording.File, error) {
	f := &recording.File{Header: recording.Header{Duration: s.Duration}}
	var err error
	if f.Document, err = readSection(dir, s.Document); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if f.Audio, err = readSection(dir, s.Audio); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	for i, p := range s.Pages {
		if i > 0 && p.Timestamp < s.Pages[i-1].Timestamp {
			return nil, fmt.Errorf("page %d starts at %dms before the previous page", p.Number, p.Timestamp)
		}
		rp := &recording.RecordedPage{Number: p.Number, Timestamp: p.Timestamp}
		if rp.Static, err = buildActions(p.Static); err != nil {
			return nil, fmt.Errorf("page %d static: %w", p.Number, err)
		}
		if rp.Playback, err = buildActions(p.Playback); err != nil {
			return nil, fmt.Errorf("page %d playback: %w", p.Number, err)
		}
		f.Pages = append(f.Pages, rp)
	}
	return f, nil
}

func buildActions(steps []Step) ([]action.Action, error) {
	var out []action.Action
	for i, st := range steps {
		a, err := st.Action()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func readSection(dir, name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return os.ReadFile(name)
}

// WriteScript saves s as YAML at path.
func WriteScript(s *Script, path string) error {
	return writeYAML(path, s)
}

// ReadScript loads the script at path. Scripts of another format version
// are rejected; a missing version is taken as the current one.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", filepath.Base(path), err)
	}
	if s.Version != 0 && s.Version != recording.Version {
		return nil, fmt.Errorf("script %s: %w: %d", filepath.Base(path), recording.ErrVersion, s.Version)
	}
	return &s, nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

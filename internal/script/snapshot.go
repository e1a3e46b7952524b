package script

import "github.com/ivlev/slidecast/internal/document"

// Snapshot is the state of a document at one position of a recording.
type Snapshot struct {
	Time  int64          `yaml:"time"` // ms
	Page  int            `yaml:"page"` // page shown
	Pages []PageSnapshot `yaml:"pages"`
}

type PageSnapshot struct {
	Number int             `yaml:"number"`
	View   document.Rect   `yaml:"view"`
	Undo   int             `yaml:"undo,omitempty"`
	Redo   int             `yaml:"redo,omitempty"`
	Shapes []ShapeSnapshot `yaml:"shapes,omitempty"`
}

type ShapeSnapshot struct {
	Kind       string              `yaml:"kind"`
	Handle     int32               `yaml:"handle"`
	Brush      *document.Brush     `yaml:"brush,omitempty"`
	Points     []document.PenPoint `yaml:"points,omitempty"`
	Text       string              `yaml:"text,omitempty"`
	Font       *document.Font      `yaml:"font,omitempty"`
	Color      *document.Color     `yaml:"color,omitempty"`
	Attributes map[string]bool     `yaml:"attributes,omitempty"`
	Rects      []document.Rect     `yaml:"rects,omitempty"`
	Bounds     document.Rect       `yaml:"bounds"`
}

// TakeSnapshot captures every page of doc. Pages without shapes are kept so
// page numbers line up with the document.
func TakeSnapshot(doc *document.Document, t int64, shown int) *Snapshot {
	snap := &Snapshot{Time: t, Page: shown}
	for _, p := range doc.Pages() {
		ps := PageSnapshot{
			Number: p.Number(),
			View:   p.View(),
			Undo:   p.History().UndoLen(),
			Redo:   p.History().RedoLen(),
		}
		for _, s := range p.Shapes() {
			ps.Shapes = append(ps.Shapes, shapeSnapshot(s))
		}
		snap.Pages = append(snap.Pages, ps)
	}
	return snap
}

func shapeSnapshot(s *document.Shape) ShapeSnapshot {
	ss := ShapeSnapshot{
		Kind:   s.Kind.String(),
		Handle: s.Handle,
		Points: s.Points,
		Rects:  s.Rects,
		Bounds: s.Bounds(),
	}
	switch s.Kind {
	case document.KindText, document.KindLatex:
		font := s.Font
		ss.Text = s.Text
		ss.Font = &font
		ss.Color = colorPtr(s.TextColor)
		ss.Attributes = s.Attributes
	case document.KindTextSelection:
		ss.Color = colorPtr(s.Brush.Color)
	default:
		brush := s.Brush
		ss.Brush = &brush
	}
	return ss
}

// WriteSnapshot saves snap as YAML at path.
func WriteSnapshot(snap *Snapshot, path string) error {
	return writeYAML(path, snap)
}

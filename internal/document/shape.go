package document

import "math"

// ShapeKind identifies what a shape draws.
type ShapeKind int

const (
	KindStroke ShapeKind = iota
	KindHighlight
	KindPointer
	KindArrow
	KindLine
	KindRectangle
	KindEllipse
	KindZoom
	KindText
	KindLatex
	KindTextSelection
)

var kindNames = [...]string{
	KindStroke:        "stroke",
	KindHighlight:     "highlight",
	KindPointer:       "pointer",
	KindArrow:         "arrow",
	KindLine:          "line",
	KindRectangle:     "rectangle",
	KindEllipse:       "ellipse",
	KindZoom:          "zoom",
	KindText:          "text",
	KindLatex:         "latex",
	KindTextSelection: "text-selection",
}

func (k ShapeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Shape is one drawable element on a page. Handles are assigned by the
// recording and identify a shape across actions.
type Shape struct {
	Kind       ShapeKind
	Handle     int32
	Brush      Brush
	Points     []PenPoint
	Text       string
	Font       Font
	TextColor  Color
	Attributes map[string]bool
	Rects      []Rect
	Selected   bool
}

// Bounds returns the area the shape covers, including half the brush width.
func (s *Shape) Bounds() Rect {
	switch s.Kind {
	case KindTextSelection:
		return unionRects(s.Rects)
	case KindText, KindLatex:
		if len(s.Points) == 0 {
			return Rect{}
		}
		p := s.Points[0]
		size := s.Font.Size
		if size <= 0 {
			size = 1
		}
		// Glyph metrics are not known here; approximate with an average advance.
		return Rect{X: p.X, Y: p.Y, Width: float64(len([]rune(s.Text))) * size * 0.6, Height: size}
	}
	if len(s.Points) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range s.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r := Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	return r.Inset(-s.Brush.Width / 2)
}

// Contains reports whether p hits the shape.
func (s *Shape) Contains(p Point) bool {
	if s.Kind == KindTextSelection {
		for _, r := range s.Rects {
			if r.Contains(p) {
				return true
			}
		}
		return false
	}
	return s.Bounds().Contains(p)
}

// Translate moves every point of the shape.
func (s *Shape) Translate(dx, dy float64) {
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
	for i := range s.Rects {
		s.Rects[i].X += dx
		s.Rects[i].Y += dy
	}
}

// Clone returns a deep copy.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Points = append([]PenPoint(nil), s.Points...)
	c.Rects = append([]Rect(nil), s.Rects...)
	if s.Attributes != nil {
		c.Attributes = make(map[string]bool, len(s.Attributes))
		for k, v := range s.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}

// assign copies the content of o into s without changing its identity.
func (s *Shape) assign(o *Shape) {
	*s = *o.Clone()
}

func unionRects(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		x, y := math.Min(u.X, r.X), math.Min(u.Y, r.Y)
		u = Rect{X: x, Y: y, Width: math.Max(u.MaxX(), r.MaxX()) - x, Height: math.Max(u.MaxY(), r.MaxY()) - y}
	}
	return u
}

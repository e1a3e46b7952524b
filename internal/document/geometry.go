package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a location in page coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PenPoint is a pressure-sensitive input sample.
type PenPoint struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Pressure float64 `yaml:"pressure"`
}

func (p PenPoint) Point() Point { return Point{X: p.X, Y: p.Y} }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"w"`
	Height float64 `yaml:"h"`
}

func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.MaxX() && o.X <= r.MaxX() && r.Y <= o.MaxY() && o.Y <= r.MaxY()
}

// Inset grows (d < 0) or shrinks (d > 0) the rectangle on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// RectFromPoints returns the rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	x, y := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return Rect{X: x, Y: y, Width: math.Abs(a.X - b.X), Height: math.Abs(a.Y - b.Y)}
}

// Color is stored as 0xAARRGGBB.
type Color uint32

// ColorFromRGBA converts the wire layout 0xRRGGBBAA into ARGB.
func ColorFromRGBA(rgba uint32) Color {
	return Color(rgba>>8 | rgba<<24)
}

// RGBA returns the wire layout 0xRRGGBBAA.
func (c Color) RGBA() uint32 {
	v := uint32(c)
	return v<<8 | v>>24
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) String() string { return fmt.Sprintf("#%08X", uint32(c)) }

// ParseColor reads "#AARRGGBB" or "#RRGGBB" (opaque).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 6:
		h = "FF" + h
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

func (c Color) MarshalYAML() (interface{}, error) { return c.String(), nil }

func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

type LineCap int8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// Brush describes how a stroke shape is painted.
type Brush struct {
	Color Color   `yaml:"color"`
	Width float64 `yaml:"width"`
	Cap   LineCap `yaml:"cap"`
}

type FontPosture uint8

const (
	PostureRegular FontPosture = iota
	PostureItalic
)

// FontWeight is the CSS weight divided by 100 (1..9).
type FontWeight uint8

const (
	WeightNormal FontWeight = 4
	WeightBold   FontWeight = 7
)

type Font struct {
	Family  string      `yaml:"family"`
	Size    float64     `yaml:"size"`
	Posture FontPosture `yaml:"posture"`
	Weight  FontWeight  `yaml:"weight"`
}

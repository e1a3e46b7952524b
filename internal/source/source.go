// Package source turns the document section of a recording into the pages
// actions are replayed on. Page bounds are normalised to a width of 1, the
// coordinate space recordings use.
package source

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/slidecast/internal/document"
)

// ErrEmptyDocument is returned when a document section holds no pages.
var ErrEmptyDocument = errors.New("document has no pages")

type DocumentLoader interface {
	Load(data []byte) (*document.Document, error)
}

// FitzLoader reads PDF and other formats supported by MuPDF.
type FitzLoader struct{}

func (FitzLoader) Load(data []byte) (*document.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return nil, ErrEmptyDocument
	}
	bounds := make([]document.Rect, n)
	for i := range bounds {
		rect, err := doc.Bound(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		bounds[i] = pageRect(float64(rect.Dx()), float64(rect.Dy()))
	}
	return document.New(bounds), nil
}

// BlankLoader ignores the section and creates Pages pages of
// document.UnitPage size.
type BlankLoader struct {
	Pages int
}

func (l BlankLoader) Load([]byte) (*document.Document, error) {
	if l.Pages <= 0 {
		return nil, ErrEmptyDocument
	}
	return document.NewBlank(l.Pages), nil
}

// pageRect scales a page of w×h to unit width.
func pageRect(w, h float64) document.Rect {
	if w <= 0 || h <= 0 {
		return document.UnitPage
	}
	return document.Rect{Width: 1, Height: h / w}
}

// Detect picks a loader for data. Sections without a recognised format get
// a blank document of minPages pages.
func Detect(data []byte, minPages int) DocumentLoader {
	switch {
	case len(data) == 0:
		return BlankLoader{Pages: minPages}
	case bytes.HasPrefix(data, []byte("%PDF")):
		return FitzLoader{}
	case isImage(data):
		return ImageLoader{}
	}
	return BlankLoader{Pages: minPages}
}

// Load loads data with the detected loader and pads the result with blank
// pages up to minPages, so every recorded page has somewhere to go.
func Load(data []byte, minPages int) (*document.Document, error) {
	doc, err := Detect(data, minPages).Load(data)
	if err != nil {
		return nil, err
	}
	return Pad(doc, minPages), nil
}

// Pad returns doc, or a copy of its page bounds extended with blank pages
// when it has fewer than minPages.
func Pad(doc *document.Document, minPages int) *document.Document {
	if doc.PageCount() >= minPages {
		return doc
	}
	bounds := make([]document.Rect, minPages)
	for i := range bounds {
		bounds[i] = document.UnitPage
		if p, err := doc.Page(i); err == nil {
			bounds[i] = p.Bounds()
		}
	}
	return document.New(bounds)
}

// Package document models slide pages, the shapes drawn on them and the
// per-page undo/redo ledger.
package document

import (
	"errors"
	"fmt"
)

// ErrPageNotFound is returned for page numbers outside the document.
var ErrPageNotFound = errors.New("page not found")

// UnitPage is the page area used when the real page size is unknown.
var UnitPage = Rect{Width: 1, Height: 0.75}

type Document struct {
	pages []*Page
}

// New creates a document with one page per bounds entry.
func New(bounds []Rect) *Document {
	d := &Document{pages: make([]*Page, len(bounds))}
	for i, b := range bounds {
		d.pages[i] = NewPage(i, b)
	}
	return d
}

// NewBlank creates a document of n pages of UnitPage size.
func NewBlank(n int) *Document {
	bounds := make([]Rect, n)
	for i := range bounds {
		bounds[i] = UnitPage
	}
	return New(bounds)
}

func (d *Document) PageCount() int { return len(d.pages) }

func (d *Document) Page(n int) (*Page, error) {
	if n < 0 || n >= len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", n, len(d.pages), ErrPageNotFound)
	}
	return d.pages[n], nil
}

func (d *Document) Pages() []*Page {
	return append([]*Page(nil), d.pages...)
}

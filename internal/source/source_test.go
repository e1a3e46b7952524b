package source

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slidecast/internal/document"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestBlankLoader(t *testing.T) {
	doc, err := BlankLoader{Pages: 3}.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())

	_, err = BlankLoader{}.Load(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, BlankLoader{Pages: 2}, Detect(nil, 2))
	assert.Equal(t, FitzLoader{}, Detect([]byte("%PDF-1.7\n"), 2))
	assert.Equal(t, ImageLoader{}, Detect(pngBytes(t, 4, 3), 2))
	assert.Equal(t, BlankLoader{Pages: 5}, Detect([]byte("not a document"), 5))
}

func TestImageLoader(t *testing.T) {
	doc, err := ImageLoader{}.Load(pngBytes(t, 200, 100))
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())
	page, err := doc.Page(0)
	require.NoError(t, err)
	assert.Equal(t, document.Rect{Width: 1, Height: 0.5}, page.Bounds())
}

func TestLoad_PadsToRecordedPages(t *testing.T) {
	doc, err := Load(pngBytes(t, 100, 100), 3)
	require.NoError(t, err)
	require.Equal(t, 3, doc.PageCount())

	first, _ := doc.Page(0)
	assert.Equal(t, document.Rect{Width: 1, Height: 1}, first.Bounds())
	last, _ := doc.Page(2)
	assert.Equal(t, document.UnitPage, last.Bounds())

	_, err = Load(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestLoadImageDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02.png"), pngBytes(t, 100, 50), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01.PNG"), pngBytes(t, 100, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	doc, err := LoadImageDir(dir)
	require.NoError(t, err)
	require.Equal(t, 2, doc.PageCount())
	p0, _ := doc.Page(0)
	p1, _ := doc.Page(1)
	assert.Equal(t, 1.0, p0.Bounds().Height)
	assert.Equal(t, 0.5, p1.Bounds().Height)

	_, err = LoadImageDir(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyDocument)

	padded := Pad(doc, 3)
	require.Equal(t, 3, padded.PageCount())
	p2, _ := padded.Page(2)
	assert.Equal(t, document.UnitPage, p2.Bounds())
	assert.Same(t, doc, Pad(doc, 2))
}

func TestPageRect(t *testing.T) {
	assert.Equal(t, document.UnitPage, pageRect(0, 10))
	assert.Equal(t, document.Rect{Width: 1, Height: 1.5}, pageRect(2, 3))
}

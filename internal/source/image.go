package source

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ivlev/slidecast/internal/document"
)

// ImageLoader reads a document section holding a single slide image.
type ImageLoader struct{}

func (ImageLoader) Load(data []byte) (*document.Document, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return document.New([]document.Rect{pageRect(float64(cfg.Width), float64(cfg.Height))}), nil
}

func isImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp"}

// LoadImageDir builds a document with one page per image in dir, in file
// name order.
func LoadImageDir(dir string) (*document.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range imageExtensions {
			if ext == want {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, ErrEmptyDocument
	}

	bounds := make([]document.Rect, len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		bounds[i] = pageRect(float64(cfg.Width), float64(cfg.Height))
	}
	return document.New(bounds), nil
}

package executor

import "github.com/ivlev/slidecast/internal/document"

// Silent rebuilds document state without publishing page events. It has no
// page observer and ignores video.
type Silent struct {
	core
}

func NewSilent(doc *document.Document) *Silent {
	return &Silent{core: core{doc: doc, run: func(page *document.Page, fn func() error) error {
		return page.Silently(fn)
	}}}
}

func (s *Silent) SetOnSelectPageIndex(func(int)) {}
func (s *Silent) SetSeek(bool)                   {}
func (s *Silent) PlayVideo(VideoRequest) error   { return nil }
func (s *Silent) StopVideo() error               { return nil }

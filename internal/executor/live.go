package executor

import (
	"log"

	"github.com/ivlev/slidecast/internal/document"
)

// Live applies actions to the visible document. Page events are published
// as they happen, except in seek mode where pages change silently and are
// refreshed once when seek mode ends.
type Live struct {
	core
	video        VideoController
	onSelectPage func(int)

	seeking bool
	touched map[*document.Page]struct{}
	// pending is the latest video requested while seeking.
	pending *VideoRequest
	// target is the clock position the current seek ends at.
	target int64
}

// NewLive returns an executor for doc. video may be nil when screen
// recordings are not shown.
func NewLive(doc *document.Document, video VideoController) *Live {
	l := &Live{video: video}
	l.core = core{doc: doc, run: l.run}
	return l
}

func (l *Live) run(page *document.Page, fn func() error) error {
	if !l.seeking {
		return fn()
	}
	l.touched[page] = struct{}{}
	return page.Silently(fn)
}

func (l *Live) SetOnSelectPageIndex(fn func(int)) { l.onSelectPage = fn }

// SetSeek toggles seek mode. Leaving it refreshes every page changed in the
// meantime and starts the last video requested while seeking, unless that
// video has already ended at the seek target.
func (l *Live) SetSeek(seek bool) {
	if seek == l.seeking {
		return
	}
	l.seeking = seek
	if seek {
		l.touched = make(map[*document.Page]struct{})
		l.pending = nil
		return
	}
	touched := l.touched
	l.touched = nil
	for _, page := range l.doc.Pages() {
		if _, ok := touched[page]; ok {
			page.Refresh()
		}
	}
	req := l.pending
	l.pending = nil
	if req == nil || l.video == nil || req.EndsBy(l.target) {
		return
	}
	if err := l.video.Play(*req); err != nil {
		log.Printf("[!] video %s: %v", req.FileName, err)
	}
}

// SeekTo sets the clock position the current seek ends at.
func (l *Live) SeekTo(t int64) { l.target = t }

// Seeking reports whether seek mode is on.
func (l *Live) Seeking() bool { return l.seeking }

// MarkTouched records a page changed outside the executor during seek mode
// so that it is refreshed together with the pages the executor changed.
func (l *Live) MarkTouched(page *document.Page) {
	if l.seeking {
		l.touched[page] = struct{}{}
	}
}

func (l *Live) SetPageNumber(n int) error {
	if err := l.core.SetPageNumber(n); err != nil {
		return err
	}
	if l.onSelectPage != nil {
		l.onSelectPage(n)
	}
	return nil
}

func (l *Live) PlayVideo(req VideoRequest) error {
	if l.video == nil {
		return nil
	}
	if l.seeking {
		l.pending = &req
		return nil
	}
	return l.video.Play(req)
}

func (l *Live) StopVideo() error {
	l.pending = nil
	if l.video == nil {
		return nil
	}
	return l.video.Stop()
}

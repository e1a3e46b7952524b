// Package player replays recorded actions against a clock. Pages are
// rebuilt from their static actions, playback actions are applied when the
// clock reaches them, and seeking reconstructs the state at any position.
package player

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/executor"
	"github.com/ivlev/slidecast/internal/lifecycle"
	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/timeline"
)

// ErrPageUnchanged is returned when asked to switch to the page already shown.
var ErrPageUnchanged = errors.New("page unchanged")

type Options struct {
	Clock     Clock
	Scheduler FrameScheduler
	Video     executor.VideoController
	// OnSelectPage is called with the document page number whenever the
	// shown page changes.
	OnSelectPage func(int)
	Logger       *log.Logger
}

// FileActionPlayer plays the pages of one recording. It is not safe for
// concurrent use; with a LoopScheduler, calls from other goroutines go
// through LoopScheduler.Do.
type FileActionPlayer struct {
	id      uuid.UUID
	pages   []*recording.RecordedPage
	doc     *document.Document
	clock   Clock
	frames  FrameScheduler
	logger  *log.Logger
	machine *lifecycle.Machine

	live   *executor.Live
	silent *executor.Silent

	index       *timeline.Index
	pos         int
	queue       []action.Action
	cancelFrame func()
}

// New creates a player for pages over doc. The pages must be ordered by
// start time, as recording.Decode returns them.
func New(pages []*recording.RecordedPage, doc *document.Document, opts Options) *FileActionPlayer {
	p := &FileActionPlayer{
		id:     uuid.New(),
		pages:  pages,
		doc:    doc,
		clock:  opts.Clock,
		frames: opts.Scheduler,
		logger: opts.Logger,
		live:   executor.NewLive(doc, opts.Video),
		silent: executor.NewSilent(doc),
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	p.live.SetOnSelectPageIndex(opts.OnSelectPage)
	p.machine = lifecycle.New(lifecycle.Hooks{
		Init:    p.initInternal,
		Start:   p.startInternal,
		Stop:    p.stopInternal,
		Suspend: p.suspendInternal,
		Destroy: p.destroyInternal,
	})
	return p
}

func (p *FileActionPlayer) ID() uuid.UUID                { return p.id }
func (p *FileActionPlayer) State() lifecycle.State       { return p.machine.State() }
func (p *FileActionPlayer) Document() *document.Document { return p.doc }

func (p *FileActionPlayer) AddListener(l lifecycle.Listener) {
	p.machine.AddListener(l)
}

func (p *FileActionPlayer) Init() error    { return p.machine.Init() }
func (p *FileActionPlayer) Start() error   { return p.machine.Start() }
func (p *FileActionPlayer) Stop() error    { return p.machine.Stop() }
func (p *FileActionPlayer) Suspend() error { return p.machine.Suspend() }
func (p *FileActionPlayer) Destroy() error { return p.machine.Destroy() }

// PageNumber returns the document page currently shown, or -1 before Init.
func (p *FileActionPlayer) PageNumber() int {
	if p.index == nil || len(p.pages) == 0 {
		return -1
	}
	return p.pages[p.pos].Number
}

func (p *FileActionPlayer) initInternal() error {
	ix, err := timeline.New(recording.Starts(p.pages))
	if err != nil {
		return err
	}
	seen := make(map[int]bool, len(p.pages))
	for _, rp := range p.pages {
		if seen[rp.Number] {
			return fmt.Errorf("recorded page %d: %w", rp.Number, recording.ErrDuplicatePage)
		}
		seen[rp.Number] = true
		if _, err := p.doc.Page(rp.Number); err != nil {
			return fmt.Errorf("recorded page %d: %w", rp.Number, err)
		}
	}
	p.index = ix
	for i := range p.pages {
		p.resetPage(i)
	}
	if len(p.pages) > 0 {
		p.selectPage(0)
	}
	return nil
}

func (p *FileActionPlayer) startInternal() error {
	p.requestFrame()
	return nil
}

func (p *FileActionPlayer) stopInternal() error {
	p.cancel()
	if err := p.live.StopVideo(); err != nil {
		p.logger.Printf("[!] session %s: stop video: %v", p.id, err)
	}
	p.live.SetSeek(true)
	for i := range p.pages {
		p.resetPage(i)
	}
	p.live.SetSeek(false)
	return p.SeekByTime(0)
}

func (p *FileActionPlayer) suspendInternal() error {
	p.cancel()
	return nil
}

func (p *FileActionPlayer) destroyInternal() error {
	p.cancel()
	p.queue = nil
	p.pages = nil
	p.index = nil
	p.pos = 0
	return nil
}

func (p *FileActionPlayer) time() int64 {
	if p.clock == nil {
		return 0
	}
	return p.clock.Time()
}

func (p *FileActionPlayer) requestFrame() {
	if p.frames == nil {
		return
	}
	p.cancel()
	p.cancelFrame = p.frames.RequestFrame(p.tick)
}

func (p *FileActionPlayer) cancel() {
	if p.cancelFrame != nil {
		p.cancelFrame()
		p.cancelFrame = nil
	}
}

// tick is one frame: apply everything due by now, moving on to later pages
// once their start has been reached.
func (p *FileActionPlayer) tick() {
	p.cancelFrame = nil
	if !p.machine.Started() || p.index == nil {
		return
	}
	p.advance(p.time())
	p.requestFrame()
}

func (p *FileActionPlayer) advance(t int64) {
	for {
		p.applyDue(t)
		next := p.pos + 1
		if len(p.queue) > 0 || next >= len(p.pages) || p.pages[next].Timestamp > t {
			return
		}
		p.selectPage(next)
	}
}

// applyDue pops and applies queued actions whose time has come.
func (p *FileActionPlayer) applyDue(t int64) {
	for n := len(p.queue); n > 0 && p.queue[n-1].Timestamp() <= t; n = len(p.queue) {
		a := p.queue[n-1]
		p.queue = p.queue[:n-1]
		p.apply(p.live, a)
	}
}

func (p *FileActionPlayer) apply(ex action.Executor, a action.Action) {
	if err := a.Apply(ex); err != nil {
		p.logger.Printf("[!] session %s: page %d: %s at %dms: %v",
			p.id, p.pages[p.pos].Number, a.Type(), a.Timestamp(), err)
	}
}

// selectPage makes page position i current and loads its playback queue,
// last action first.
func (p *FileActionPlayer) selectPage(i int) {
	p.pos = i
	rp := p.pages[i]
	if err := p.live.SetPageNumber(rp.Number); err != nil {
		p.logger.Printf("[!] session %s: select page %d: %v", p.id, rp.Number, err)
	}
	p.queue = make([]action.Action, len(rp.Playback))
	for j, a := range rp.Playback {
		p.queue[len(rp.Playback)-1-j] = a
	}
}

// resetPage clears page position i and rebuilds it from its static actions.
func (p *FileActionPlayer) resetPage(i int) {
	rp := p.pages[i]
	page, err := p.doc.Page(rp.Number)
	if err != nil {
		p.logger.Printf("[!] session %s: reset page %d: %v", p.id, rp.Number, err)
		return
	}
	_ = page.Silently(func() error {
		page.Clear()
		return nil
	})
	p.live.MarkTouched(page)

	if err := p.silent.SetPageNumber(rp.Number); err != nil {
		return
	}
	p.silent.RestoreTools(executor.ToolState{})
	for _, a := range rp.Static {
		if err := a.Apply(p.silent); err != nil {
			p.logger.Printf("[!] session %s: page %d: static %s: %v", p.id, rp.Number, a.Type(), err)
		}
	}
}

// replayPage applies every playback action of page position i.
func (p *FileActionPlayer) replayPage(i int) {
	p.selectPage(i)
	for _, a := range p.pages[i].Playback {
		p.apply(p.live, a)
	}
	p.queue = nil
}

// SeekByTime rebuilds the document as it was at t milliseconds.
func (p *FileActionPlayer) SeekByTime(t int64) error {
	if p.index == nil {
		return fmt.Errorf("seek: %w", lifecycle.ErrIllegalState)
	}
	if len(p.pages) == 0 {
		return nil
	}
	p.seek(p.index.At(t), t)
	return nil
}

// SeekByPage shows the recorded page with document number n from its start
// and returns that start so the audio can follow.
func (p *FileActionPlayer) SeekByPage(n int) (int64, error) {
	if p.index == nil {
		return 0, fmt.Errorf("seek page %d: %w", n, lifecycle.ErrIllegalState)
	}
	target := -1
	for i, rp := range p.pages {
		if rp.Number == n {
			target = i
			break
		}
	}
	if target < 0 {
		return 0, fmt.Errorf("seek page %d: %w", n, document.ErrPageNotFound)
	}
	if target == p.pos {
		return 0, ErrPageUnchanged
	}
	start := p.pages[target].Timestamp
	p.seek(target, start)
	return start, nil
}

// SetPage is SeekByPage for callers that do not need the timestamp.
func (p *FileActionPlayer) SetPage(n int) error {
	_, err := p.SeekByPage(n)
	return err
}

// toolsAt returns the tool state playback has built up when page position
// i starts.
func (p *FileActionPlayer) toolsAt(i int) executor.ToolState {
	tr := executor.NewTracker()
	for _, rp := range p.pages[:i] {
		for _, a := range rp.Playback {
			_ = a.Apply(tr)
		}
	}
	return tr.State()
}

// seek moves to page position target and applies its actions up to t.
// Pages skipped on the way forward lie entirely in the past and are
// replayed in full, so a jump ends in the same state as playing through.
// Replay starts from the tools selected at the first replayed page.
func (p *FileActionPlayer) seek(target int, t int64) {
	p.cancel()
	p.live.SetSeek(true)
	p.live.SeekTo(t)

	cur := p.pos
	p.live.RestoreTools(p.toolsAt(min(cur, target)))
	switch {
	case target < cur:
		for i := target; i <= cur; i++ {
			p.resetPage(i)
		}
	case target > cur:
		for i := cur; i < target; i++ {
			p.resetPage(i)
			p.replayPage(i)
		}
		p.resetPage(target)
	default:
		p.resetPage(cur)
	}

	p.selectPage(target)
	p.applyDue(t)
	p.live.SetSeek(false)

	if p.machine.Started() {
		p.requestFrame()
	}
}

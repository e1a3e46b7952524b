package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slidecast/internal/executor"
	"github.com/ivlev/slidecast/internal/lifecycle"
	"github.com/ivlev/slidecast/internal/player"
	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/script"
)

// Snapshot seeks the input recording to Config.SeekTo and writes the
// reconstructed document as YAML.
func (p *Project) Snapshot() (string, error) {
	p.begin("SNAPSHOT")
	f, err := p.open(p.Config.InputPath)
	if err != nil {
		return "", err
	}
	pl, err := p.newPlayer(f, player.Options{})
	if err != nil {
		return "", err
	}
	defer pl.Destroy()

	if err := pl.Init(); err != nil {
		return "", err
	}
	if err := pl.SeekByTime(p.Config.SeekTo); err != nil {
		return "", err
	}

	snap := script.TakeSnapshot(pl.Document(), p.Config.SeekTo, pl.PageNumber())
	out := p.outputPath(".snapshot.yaml")
	if err := script.WriteSnapshot(snap, out); err != nil {
		return "", err
	}
	p.printf("[*] Position %dms | page %d\n", p.Config.SeekTo, pl.PageNumber())
	p.report("Pages", len(snap.Pages))
	p.printf("[+++] Snapshot saved: %s\n", out)
	return out, nil
}

func (p *Project) newPlayer(f *recording.File, opts player.Options) (*player.FileActionPlayer, error) {
	doc, err := p.loadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	opts.Logger = p.Logger
	return player.New(f.Pages, doc, opts), nil
}

// logVideo stands in for a video element by reporting what would play.
type logVideo struct {
	p *Project
}

func (v logVideo) Play(req executor.VideoRequest) error {
	v.p.printf("[>] Video %s from %dms (%dms at offset %dms, %dx%d)\n",
		req.FileName, req.StartTime, req.Length, req.Offset, req.Width, req.Height)
	return nil
}

func (v logVideo) Stop() error {
	v.p.printf("[>] Video stopped\n")
	return nil
}

// Play replays the input recording in real time on a wall clock, starting
// at Config.SeekTo, for Config.PlayFor milliseconds or to the end.
func (p *Project) Play(ctx context.Context) error {
	p.begin("PLAY")
	f, err := p.open(p.Config.InputPath)
	if err != nil {
		return err
	}

	clock := player.NewWallClock(p.Config.Speed)
	frames := player.NewLoopScheduler(p.Config.FPS)
	pages := 0
	pl, err := p.newPlayer(f, player.Options{
		Clock:     clock,
		Scheduler: frames,
		Video:     logVideo{p},
		OnSelectPage: func(n int) {
			pages++
			p.printf("[>] Page %d at %dms\n", n, clock.Time())
		},
	})
	if err != nil {
		return err
	}

	end := f.Header.Duration
	if p.Config.PlayFor > 0 {
		end = p.Config.SeekTo + p.Config.PlayFor
	}
	if end <= p.Config.SeekTo {
		return fmt.Errorf("nothing to play: position %dms, end %dms", p.Config.SeekTo, end)
	}

	pl.AddListener(func(from, to lifecycle.State) {
		p.printf("[*] Session %s: %s -> %s\n", pl.ID(), from, to)
	})
	if err := pl.Init(); err != nil {
		return err
	}
	clock.Seek(p.Config.SeekTo)
	if err := pl.SeekByTime(p.Config.SeekTo); err != nil {
		return err
	}
	if err := pl.Start(); err != nil {
		return err
	}
	clock.Play()

	wall := time.Duration(float64(end-p.Config.SeekTo)/p.Config.Speed) * time.Millisecond
	p.printf("[*] Playing %dms..%dms at x%.2f (%s, %d FPS)\n", p.Config.SeekTo, end, p.Config.Speed, wall, p.Config.FPS)

	runCtx, cancel := context.WithTimeout(ctx, wall)
	defer cancel()
	g, runCtx := errgroup.WithContext(runCtx)
	g.Go(func() error { return frames.Run(runCtx) })
	err = g.Wait()
	clock.Pause()
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return err
	}

	// The loop has stopped, so the player can be used from here directly.
	pos := clock.Time()
	shown := pl.PageNumber()
	if err := pl.Destroy(); err != nil {
		return err
	}
	p.printf("[*] Stopped at %dms on page %d | page changes %d\n", pos, shown, pages)
	p.report("Page changes", pages)
	p.printf("[+++] Playback finished\n")
	return nil
}

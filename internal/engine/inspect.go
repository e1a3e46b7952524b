package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/slidecast/internal/action"
	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/system"
	"github.com/ivlev/slidecast/internal/timeline"
)

// Report describes one inspected recording. Err is set when it could not
// be decoded.
type Report struct {
	Path     string
	Header   recording.Header
	Stats    recording.Stats
	Document int
	Audio    int
	Pages    []PageSpan
	Err      error
}

// PageSpan is the stretch of the clock one recorded page is shown for.
type PageSpan struct {
	Number     int
	Start, End int64
	Actions    int
}

// Inspect decodes the input and every extra input concurrently and prints
// a summary of each. It fails if any recording is unreadable.
func (p *Project) Inspect(ctx context.Context) ([]Report, error) {
	p.begin("INSPECT")
	paths := append([]string{p.Config.InputPath}, p.Config.Inputs...)
	reports := make([]Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = p.inspect(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	var errs []error
	for _, r := range reports {
		p.printReport(r)
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return reports, err
	}

	if p.Config.QRPath != "" {
		if err := system.WriteFingerprintQR(reports[0].Header.Checksum, p.Config.QRPath, 0); err != nil {
			return reports, fmt.Errorf("write QR code: %w", err)
		}
		p.printf("[*] Fingerprint QR: %s\n", p.Config.QRPath)
	}
	p.report("Recordings", len(reports))
	return reports, nil
}

func (p *Project) inspect(path string) Report {
	r := Report{Path: path}
	f, err := p.open(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Header = f.Header
	r.Stats = f.Stats()
	r.Document = len(f.Document)
	r.Audio = len(f.Audio)

	ix, err := timeline.New(recording.Starts(f.Pages))
	if err != nil {
		r.Err = fmt.Errorf("%s: %w", filepath.Base(path), err)
		return r
	}
	for i, rp := range f.Pages {
		r.Pages = append(r.Pages, PageSpan{
			Number:  rp.Number,
			Start:   ix.Start(i),
			End:     ix.End(i, f.Header.Duration),
			Actions: len(rp.Static) + len(rp.Playback),
		})
	}
	return r
}

func (p *Project) printReport(r Report) {
	name := filepath.Base(r.Path)
	if r.Err != nil {
		p.Logger.Printf("[!] %v", r.Err)
		return
	}
	checksum := "not recorded"
	if r.Header.HasChecksum() {
		checksum = system.Fingerprint(r.Header.Checksum)
		if !p.Config.VerifyChecksum {
			checksum += " (not verified)"
		}
	}
	p.printf("[*] %s: version %d | duration %.1fs | pages %d\n",
		name, r.Header.Version, float64(r.Header.Duration)/1000, r.Stats.Pages)
	p.printf("[*] %s: actions %d static + %d playback | skipped %d\n",
		name, r.Stats.Static, r.Stats.Playback, r.Stats.Skipped)
	p.printf("[*] %s: document %d bytes | audio %d bytes | checksum %s\n",
		name, r.Document, r.Audio, checksum)

	types := make([]action.Type, 0, len(r.Stats.ByType))
	for t := range r.Stats.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		p.printf("    %-20s %d\n", t, r.Stats.ByType[t])
	}
	for _, s := range r.Pages {
		p.printf("    page %d: %dms..%dms, %d actions\n", s.Number, s.Start, s.End, s.Actions)
	}
}

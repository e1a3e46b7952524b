// Package engine runs the slidecast commands: it opens recordings, loads
// their documents, drives the player and reports what it did.
package engine

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/document"
	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/source"
	"github.com/ivlev/slidecast/internal/system"
)

type Project struct {
	Config *config.Config
	// Out receives progress output. Defaults to stdout.
	Out    io.Writer
	Logger *log.Logger

	started time.Time
}

func NewProject(cfg *config.Config) *Project {
	return &Project{Config: cfg, Out: os.Stdout, Logger: log.Default()}
}

func (p *Project) printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

func (p *Project) begin(title string) {
	p.started = time.Now()
	p.printf("--- [SLIDECAST: %s] ---\n", title)
}

// open decodes the recording at path with the configured checksum policy.
func (p *Project) open(path string) (*recording.File, error) {
	f, err := recording.Open(path, recording.Options{SkipChecksum: !p.Config.VerifyChecksum})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if f.Skipped > 0 {
		p.Logger.Printf("[!] %s: skipped %d records of unknown type", filepath.Base(path), f.Skipped)
	}
	return f, nil
}

// loadDocument builds the document the recording's actions are replayed on,
// from Config.DocumentPath when set and from the document section otherwise.
func (p *Project) loadDocument(f *recording.File) (*document.Document, error) {
	span := pageSpan(f.Pages)
	path := p.Config.DocumentPath
	if path == "" {
		return source.Load(f.Document, span)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		doc, err := source.LoadImageDir(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return source.Pad(doc, span), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.Load(data, span)
}

// pageSpan is the number of document pages a recording addresses.
func pageSpan(pages []*recording.RecordedPage) int {
	n := 0
	for _, rp := range pages {
		if rp.Number+1 > n {
			n = rp.Number + 1
		}
	}
	return n
}

// outputPath returns the configured output or a timestamped name next to
// the input.
func (p *Project) outputPath(ext string) string {
	if p.Config.OutputPath != "" {
		return p.Config.OutputPath
	}
	base := filepath.Base(p.Config.InputPath)
	nameOnly := strings.TrimSuffix(base, filepath.Ext(base))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(filepath.Dir(p.Config.InputPath), fmt.Sprintf("%s_%s%s", cleanName, timestamp, ext))
}

// report prints the performance report when stats are enabled.
func (p *Project) report(work string, items int) {
	if !p.Config.ShowStats {
		return
	}
	total := time.Since(p.started)
	mem, err := system.ReadMemoryStats()
	memLine := mem.String()
	if err != nil {
		memLine = "unavailable: " + err.Error()
	}
	p.printf("--- [PERFORMANCE REPORT] ---\n"+
		"Build: %s\n"+
		"Total Time: %.3fs\n"+
		"%s: %d\n"+
		"Memory: %s\n"+
		"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), work, items, memLine)
}

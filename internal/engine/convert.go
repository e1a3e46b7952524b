package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/slidecast/internal/recording"
	"github.com/ivlev/slidecast/internal/script"
	"github.com/ivlev/slidecast/internal/system"
)

// Dump writes the input recording as a YAML script. Non-empty document and
// audio sections are written next to the script and referenced from it.
func (p *Project) Dump() (string, error) {
	p.begin("DUMP")
	f, err := p.open(p.Config.InputPath)
	if err != nil {
		return "", err
	}

	out := p.outputPath(".yaml")
	s := script.FromRecording(f)
	stem := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	if s.Document, err = writeSection(out, stem+".document"+sectionExt(f.Document), f.Document); err != nil {
		return "", err
	}
	if s.Audio, err = writeSection(out, stem+".audio", f.Audio); err != nil {
		return "", err
	}

	if err := script.WriteScript(s, out); err != nil {
		return "", err
	}
	p.printf("[*] Pages: %d | duration %.1fs\n", len(s.Pages), float64(s.Duration)/1000)
	p.report("Pages", len(s.Pages))
	p.printf("[+++] Script saved: %s\n", out)
	return out, nil
}

func sectionExt(data []byte) string {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return ".pdf"
	}
	return ""
}

func writeSection(scriptPath, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(scriptPath), name), data, 0644); err != nil {
		return "", fmt.Errorf("write section %s: %w", name, err)
	}
	return name, nil
}

// Build encodes the input YAML script as a binary recording.
func (p *Project) Build() (string, error) {
	p.begin("BUILD")
	s, err := script.ReadScript(p.Config.InputPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	f, err := s.Recording(filepath.Dir(p.Config.InputPath))
	if err != nil {
		return "", err
	}
	data, err := recording.Encode(f)
	if err != nil {
		return "", err
	}

	out := p.outputPath(system.RecordingExt)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", err
	}
	p.printf("[*] Pages: %d | %d bytes\n", len(f.Pages), len(data))
	p.report("Pages", len(f.Pages))
	p.printf("[+++] Recording saved: %s\n", out)
	return out, nil
}

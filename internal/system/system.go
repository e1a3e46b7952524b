package system

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/skip2/go-qrcode"
)

// RecordingExt is the file extension of binary recordings.
const RecordingExt = ".sldc"

func FindLatestRecording(dir string) (string, error) {
	return findLatest(dir, "recordings", RecordingExt)
}

func FindLatestScript(dir string) (string, error) {
	return findLatest(dir, "scripts", ".yaml", ".yml")
}

func findLatest(dir, what string, extensions ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matches := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matches = true
				break
			}
		}
		if matches {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s found in %s", what, dir)
	}

	return latestFile, nil
}

// MemoryStats is a snapshot of process and host memory.
type MemoryStats struct {
	ProcessRSS        uint64
	SystemUsedPercent float64
	SystemAvailable   uint64
	SystemTotal       uint64
	CollectedAt       time.Time
}

func ReadMemoryStats() (MemoryStats, error) {
	stats := MemoryStats{CollectedAt: time.Now()}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("virtual memory: %w", err)
	}
	stats.SystemUsedPercent = vm.UsedPercent
	stats.SystemAvailable = vm.Available
	stats.SystemTotal = vm.Total

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("process: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("process memory: %w", err)
	}
	stats.ProcessRSS = info.RSS
	return stats, nil
}

func (s MemoryStats) String() string {
	return fmt.Sprintf("rss %.1f MiB, system %.1f%% used, %.1f MiB available",
		mib(s.ProcessRSS), s.SystemUsedPercent, mib(s.SystemAvailable))
}

func mib(n uint64) float64 { return float64(n) / (1 << 20) }

// Fingerprint is the text encoded in a recording's QR code.
func Fingerprint(checksum [20]byte) string {
	return "sldc:sha1:" + hex.EncodeToString(checksum[:])
}

// WriteFingerprintQR writes the fingerprint as a PNG QR code of size pixels.
func WriteFingerprintQR(checksum [20]byte, path string, size int) error {
	if size <= 0 {
		size = 256
	}
	return qrcode.WriteFile(Fingerprint(checksum), qrcode.Medium, size, path)
}

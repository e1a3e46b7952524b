package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/ivlev/slidecast/internal/config"
	"github.com/ivlev/slidecast/internal/engine"
	"github.com/ivlev/slidecast/internal/system"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `usage: slidecast <command> [flags] [recordings...]

commands:
  inspect   print header, page and action statistics of recordings
  dump      write a recording as an editable YAML script
  build     encode a YAML script as a recording
  snapshot  write the document state at -seek as YAML
  play      replay a recording in real time
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	cfg, err := parseFlags(cmd, args)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	if cfg.InputPath == "" {
		find := system.FindLatestRecording
		if cmd == "build" {
			find = system.FindLatestScript
		}
		latest, err := find("input")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a file into input/ or pass -input", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Selected file: %s\n", cfg.InputPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewProject(cfg)
	switch cmd {
	case "inspect":
		_, err = project.Inspect(ctx)
	case "dump":
		_, err = project.Dump()
	case "build":
		_, err = project.Build()
	case "snapshot":
		_, err = project.Snapshot()
	case "play":
		err = project.Play(ctx)
	}
	if err != nil {
		log.Fatalf("[-] %s failed: %v", cmd, err)
	}
}

func parseFlags(cmd string, args []string) (*config.Config, error) {
	switch cmd {
	case "inspect", "dump", "build", "snapshot", "play":
	default:
		return nil, fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}

	cfg := config.Default()
	cfg.Workers = runtime.NumCPU()
	cfg.BuildVersion = version

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "", "YAML file with default settings; flags override it")
	saveConfig := fs.String("save-config", "", "Write the effective settings to this YAML file")
	fs.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Recording or script (default: the newest file in input/)")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "Output file (default: generated next to the input)")
	fs.StringVar(&cfg.DocumentPath, "document", cfg.DocumentPath, "Document file or directory of slide images to replay on (default: the recorded document)")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second during playback")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Recordings inspected in parallel")
	fs.BoolVar(&cfg.VerifyChecksum, "verify", cfg.VerifyChecksum, "Verify the recording checksum")
	fs.Int64Var(&cfg.SeekTo, "seek", cfg.SeekTo, "Position in milliseconds to snapshot or start playback at")
	fs.Int64Var(&cfg.PlayFor, "for", cfg.PlayFor, "Milliseconds to play (0: to the end)")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Playback speed")
	fs.StringVar(&cfg.QRPath, "qr", cfg.QRPath, "Write a QR code of the recording checksum to this PNG (inspect)")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print a performance report")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *configPath != "" {
		if err := config.Load(*configPath, cfg); err != nil {
			return nil, err
		}
		// Parse again so explicit flags win over the file.
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	rest := fs.Args()
	if cfg.InputPath == "" && len(rest) > 0 {
		cfg.InputPath, rest = rest[0], rest[1:]
	}
	cfg.Inputs = append(cfg.Inputs, rest...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if *saveConfig != "" {
		if err := config.Save(*saveConfig, cfg); err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("[*] Settings saved: %s\n", *saveConfig)
	}
	return cfg, nil
}

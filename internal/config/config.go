package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`
	// Inputs lists extra recordings for commands that take several files.
	Inputs []string `yaml:"inputs"`
	// DocumentPath replaces the document section of the recording: a
	// document file or a directory of slide images.
	DocumentPath string `yaml:"document"`

	FPS     int `yaml:"fps"`
	Workers int `yaml:"workers"`

	VerifyChecksum bool `yaml:"verify_checksum"`

	// SeekTo is the snapshot position in milliseconds.
	SeekTo int64 `yaml:"seek"`
	// PlayFor limits real-time playback; zero plays to the end.
	PlayFor int64   `yaml:"play_for"`
	Speed   float64 `yaml:"speed"`

	QRPath       string `yaml:"qr"`
	ShowStats    bool   `yaml:"stats"`
	BuildVersion string `yaml:"-"`
}

// Default returns the settings used when neither a config file nor flags
// say otherwise.
func Default() *Config {
	return &Config{
		FPS:            30,
		Workers:        4,
		VerifyChecksum: true,
		Speed:          1,
	}
}

// Load merges the YAML file at path into cfg. Keys missing from the file
// keep their current values.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	var errs []error
	if c.FPS <= 0 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be in 1..240, got %d", c.FPS))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be positive, got %g", c.Speed))
	}
	if c.SeekTo < 0 {
		errs = append(errs, fmt.Errorf("seek must not be negative, got %d", c.SeekTo))
	}
	return errors.Join(errs...)
}

// Package config loads and saves the TOML-backed runtime configuration
// for the emulator: audio parameters, firmware/cartridge/battery-RAM
// file paths, MIDI receive channel, velocity curve, and the clean-mode
// toggle.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full set of user-adjustable settings, persisted as a
// dx7run.toml file alongside the program's configuration directory.
type Config struct {
	Audio     Audio  `toml:"audio"`
	Files     Files  `toml:"files"`
	MIDI      MIDI   `toml:"midi"`
	CleanMode bool   `toml:"clean_mode"`
	Locale    string `toml:"locale"`
}

// Audio holds the host audio parameters FillBuffer is driven at.
type Audio struct {
	SampleRate float64 `toml:"sample_rate"`
	BufferSize int     `toml:"buffer_size"`
}

// Files holds the on-disk resources the emulation loads at startup.
type Files struct {
	ROM          string `toml:"rom"`
	RAM          string `toml:"ram"`
	FactoryBanks string `toml:"factory_banks"`
	Cartridge    string `toml:"cartridge"`
}

// MIDI holds the receive channel and velocity curve settings the
// firmware's controller parser is seeded with.
type MIDI struct {
	Channel      uint8   `toml:"channel"`
	VelocityCurve float64 `toml:"velocity_curve"`
}

// Default returns the configuration a fresh install starts from:
// 48KHz/256-sample audio, channel 1 (0-indexed internally as 0), and a
// linear velocity curve.
func Default() Config {
	return Config{
		Audio: Audio{
			SampleRate: 48000,
			BufferSize: 256,
		},
		Files: Files{
			RAM: "dx7.ram",
		},
		MIDI: MIDI{
			Channel:       0,
			VelocityCurve: 1.0,
		},
		Locale: "en",
	}
}

// DefaultPath returns the platform configuration directory's
// dx7run.toml path, or "" if the OS can't report one.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "nitro-core-dx", "dx7run.toml")
}

// Load reads and validates path, falling back to Default for a path
// that doesn't exist yet. A malformed file is an error; a missing one
// is not.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %q: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path as TOML, creating its parent directory if
// necessary.
func Save(path string, cfg Config) error {
	if path == "" {
		return fmt.Errorf("config: no path configured")
	}
	cfg.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %q: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %q: %w", path, err)
	}
	return nil
}

// normalize clamps fields a hand-edited config file might carry out of
// the range the rest of the module expects, falling back to Default's
// values rather than rejecting the whole file.
func (c *Config) normalize() {
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 48000
	}
	if c.Audio.BufferSize <= 0 {
		c.Audio.BufferSize = 256
	}
	if c.MIDI.Channel > 15 {
		c.MIDI.Channel = 0
	}
	if c.MIDI.VelocityCurve == 0 {
		c.MIDI.VelocityCurve = 1.0
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
}

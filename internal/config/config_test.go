package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("got %+v, want default %+v", cfg, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dx7run.toml")
	cfg := Default()
	cfg.Audio.SampleRate = 44100
	cfg.Files.ROM = "dx7.rom"
	cfg.Files.Cartridge = "voices.syx"
	cfg.MIDI.Channel = 3
	cfg.CleanMode = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
}

func TestNormalizeClampsBadValues(t *testing.T) {
	cfg := Config{}
	cfg.normalize()

	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("SampleRate = %v, want 48000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BufferSize != 256 {
		t.Errorf("BufferSize = %v, want 256", cfg.Audio.BufferSize)
	}
	if cfg.MIDI.VelocityCurve != 1.0 {
		t.Errorf("VelocityCurve = %v, want 1.0", cfg.MIDI.VelocityCurve)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want \"en\"", cfg.Locale)
	}

	cfg.MIDI.Channel = 200
	cfg.normalize()
	if cfg.MIDI.Channel != 0 {
		t.Errorf("Channel = %v, want 0 after clamp", cfg.MIDI.Channel)
	}
}

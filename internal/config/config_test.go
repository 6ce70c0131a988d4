package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Headers.Bits != 8 {
		t.Errorf("Expected Bits=8, got %d", cfg.Headers.Bits)
	}
	if cfg.Headers.MinReg != 8 {
		t.Errorf("Expected MinReg=8, got %d", cfg.Headers.MinReg)
	}
	if cfg.Headers.MinHeap != 16 {
		t.Errorf("Expected MinHeap=16, got %d", cfg.Headers.MinHeap)
	}
	if cfg.Headers.MinStack != 16 {
		t.Errorf("Expected MinStack=16, got %d", cfg.Headers.MinStack)
	}
	if cfg.Diagnostics.MaxMacroDepth != 64 {
		t.Errorf("Expected MaxMacroDepth=64, got %d", cfg.Diagnostics.MaxMacroDepth)
	}
	if cfg.Output.Format != "binary" {
		t.Errorf("Expected Format=binary, got %s", cfg.Output.Format)
	}
}

func TestLoadFromMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom on a missing file should not error: %v", err)
	}
	if cfg.Headers.Bits != 8 {
		t.Errorf("expected default Bits=8, got %d", cfg.Headers.Bits)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urcasm.toml")

	cfg := Default()
	cfg.Headers.Bits = 32
	cfg.Output.Format = "hex"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Headers.Bits != 32 {
		t.Errorf("expected Bits=32 after round-trip, got %d", loaded.Headers.Bits)
	}
	if loaded.Output.Format != "hex" {
		t.Errorf("expected Format=hex after round-trip, got %s", loaded.Output.Format)
	}
}

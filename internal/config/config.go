// Package config loads urcasm's on-disk configuration: assembler
// defaults and CLI behaviour that a user may want to override without
// passing flags every time. Structure and load/save pattern are
// grounded on lookbusy1344-arm_emulator/config/config.go — a TOML file
// decoded with BurntSushi/toml, with a Default() fallback when the
// file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is urcasm's on-disk configuration.
type Config struct {
	Headers struct {
		Bits     uint64 `toml:"bits"`
		MinReg   uint64 `toml:"min_reg"`
		MinHeap  uint64 `toml:"min_heap"`
		MinStack uint64 `toml:"min_stack"`
	} `toml:"headers"`

	Diagnostics struct {
		WarningsAsErrors bool `toml:"warnings_as_errors"`
		MaxMacroDepth    int  `toml:"max_macro_depth"`
	} `toml:"diagnostics"`

	Output struct {
		EmitDebugInfo bool   `toml:"emit_debug_info"`
		Format        string `toml:"format"` // "binary" or "hex"
	} `toml:"output"`
}

// Default returns the configuration urcasm uses absent a config file,
// matching the header defaults spec.md fixes (bits=8, minReg=8,
// minHeap=16, minStack=16).
func Default() *Config {
	cfg := &Config{}
	cfg.Headers.Bits = 8
	cfg.Headers.MinReg = 8
	cfg.Headers.MinHeap = 16
	cfg.Headers.MinStack = 16

	cfg.Diagnostics.WarningsAsErrors = false
	cfg.Diagnostics.MaxMacroDepth = 64

	cfg.Output.EmitDebugInfo = true
	cfg.Output.Format = "binary"
	return cfg
}

// Path returns the platform-specific config file path, creating its
// parent directory if needed.
func Path() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "urcasm")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "urcasm.toml"
		}
		dir = filepath.Join(home, ".config", "urcasm")
	default:
		return "urcasm.toml"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "urcasm.toml"
	}
	return filepath.Join(dir, "urcasm.toml")
}

// Load reads the config file at the default path, falling back to
// Default() when it does not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, falling back to Default()
// when it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to path in TOML form.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

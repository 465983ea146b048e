package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const configFileName = "config.toml"

// Config is resolved from defaults, then config.toml, then TODOMVC_* env vars.
// CLI flags are applied on top by the cli package.
type Config struct {
	// Dir is where backends keep their files. Empty means the config dir.
	Dir       string `toml:"dir,omitempty" env:"TODOMVC_DIR" json:"dir,omitempty"`
	Backend   string `toml:"backend" env:"TODOMVC_BACKEND" json:"backend"`
	Key       string `toml:"key" env:"TODOMVC_KEY" json:"key"`
	Format    string `toml:"format" env:"TODOMVC_FORMAT" json:"format"`
	LogLevel  string `toml:"log_level" env:"TODOMVC_LOG_LEVEL" json:"logLevel"`
	OnCorrupt string `toml:"on_corrupt" env:"TODOMVC_ON_CORRUPT" json:"onCorrupt"`
}

func DefaultConfig() Config {
	return Config{
		Backend:   string(BackendFile),
		Key:       DefaultKey,
		Format:    "json",
		LogLevel:  "warn",
		OnCorrupt: string(CorruptFail),
	}
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todomvc).
	if v := strings.TrimSpace(os.Getenv("TODOMVC_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todomvc"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads path (or the default config path when empty). A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects values no backend, writer or loader understands.
func (c Config) Validate() error {
	if _, err := ParseBackend(c.Backend); err != nil {
		return err
	}
	if _, ok := ParseCorruptPolicy(c.OnCorrupt); !ok {
		return fmt.Errorf("invalid on_corrupt %q (want fail|reset)", c.OnCorrupt)
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "json", "text", "markdown":
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	return nil
}

// ResolveDir returns Dir, defaulting to the config dir.
func (c Config) ResolveDir() (string, error) {
	if d := strings.TrimSpace(c.Dir); d != "" {
		return filepath.Clean(d), nil
	}
	return ConfigDir()
}

// Open opens the configured backend rooted at dir and returns the slot bound to it.
// Callers own slot.KV and must Close it.
func (c Config) Open(ctx context.Context, dir string) (Slot, error) {
	backend, err := ParseBackend(c.Backend)
	if err != nil {
		return Slot{}, err
	}
	policy, ok := ParseCorruptPolicy(c.OnCorrupt)
	if !ok {
		return Slot{}, fmt.Errorf("invalid on_corrupt %q (want fail|reset)", c.OnCorrupt)
	}
	kv, err := OpenKV(ctx, backend, dir)
	if err != nil {
		return Slot{}, err
	}
	return Slot{KV: kv, Key: c.Key, OnCorrupt: policy}, nil
}

// SaveConfig writes cfg as TOML to path (or the default config path when empty).
func SaveConfig(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return atomicWriteFile(dir, configFileName+".*.tmp", path, buf.Bytes(), 0o644)
}

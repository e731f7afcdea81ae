// Package config loads and persists the settings a Merger needs, the
// way node/repo/fsrepo.go loads and rewrites its own config.toml: decode
// into a typed struct with BurntSushi/toml, mutate in memory, re-encode
// on save.
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/bitrun"
)

// Config holds the settings needed to build a bitrun.Merger.
type Config struct {
	// Universe is the bound every RleBitmap this Merger touches is
	// validated against. Zero means "use bitrun.DefaultUniverse".
	Universe uint64 `toml:"Universe"`
}

// Default returns a Config with bitrun.DefaultUniverse.
func Default() *Config {
	return &Config{Universe: bitrun.DefaultUniverse}
}

// FromFile reads and decodes a TOML config file. A missing Universe
// field (or a missing file entirely, if path is empty) falls back to
// bitrun.DefaultUniverse.
func FromFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, xerrors.Errorf("config: decoding %s: %w", path, err)
	}
	if cfg.Universe == 0 {
		cfg.Universe = bitrun.DefaultUniverse
	}
	return cfg, nil
}

// WriteFile encodes cfg as TOML and writes it to path.
func WriteFile(path string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return xerrors.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return xerrors.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// Merger builds a bitrun.Merger from the config's Universe.
func (c *Config) Merger() *bitrun.Merger {
	if c.Universe == 0 {
		return bitrun.NewMerger()
	}
	return bitrun.NewMerger(bitrun.WithUniverse(c.Universe))
}

// Package config loads runner settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoardConfig sets the board dimensions and mine count.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Mines  int `yaml:"mines"`
}

// ServerConfig sets the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig sets where game history is kept.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Config is the full runner configuration.
type Config struct {
	Board    BoardConfig  `yaml:"board"`
	Seed     int64        `yaml:"seed"`  // 0 means time-seeded
	Games    int          `yaml:"games"` // games per `play` run
	LogLevel string       `yaml:"log_level"`
	Server   ServerConfig `yaml:"server"`
	Store    StoreConfig  `yaml:"store"`
}

// Default returns the configuration used when no file is given: the
// classic 10x10 board with 10 mines.
func Default() Config {
	return Config{
		Board:    BoardConfig{Width: 10, Height: 10, Mines: 10},
		Games:    1,
		LogLevel: "info",
		Server:   ServerConfig{Addr: ":8080"},
		Store:    StoreConfig{Path: "games.db"},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects board parameters the game cannot work with.
func (c Config) Validate() error {
	b := c.Board
	if b.Width < 2 || b.Height < 2 {
		return fmt.Errorf("config: board must be at least 2x2, got %dx%d", b.Width, b.Height)
	}
	if b.Mines < 1 || b.Mines >= b.Width*b.Height {
		return fmt.Errorf("config: mine count %d out of range for %dx%d board",
			b.Mines, b.Width, b.Height)
	}
	if c.Games < 1 {
		return fmt.Errorf("config: games must be positive, got %d", c.Games)
	}
	return nil
}

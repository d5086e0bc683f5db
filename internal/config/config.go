// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppName names the data directory.
const AppName = "cyber-rogue"

// Config holds every tunable of the terminal client and the SSH server.
type Config struct {
	DataDir   string `env:"CYBER_ROGUE_DATA_DIR"`
	LogLevel  string `env:"CYBER_ROGUE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CYBER_ROGUE_LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"CYBER_ROGUE_LOG_FILE"`

	FOVRadius int           `env:"CYBER_ROGUE_FOV_RADIUS" envDefault:"8"`
	TurnDelay time.Duration `env:"CYBER_ROGUE_TURN_DELAY" envDefault:"50ms"`

	LeaderboardDriver string `env:"CYBER_ROGUE_LEADERBOARD_DRIVER" envDefault:"sqlite"`
	LeaderboardDSN    string `env:"CYBER_ROGUE_LEADERBOARD_DSN"`

	SpectateAddr string `env:"CYBER_ROGUE_SPECTATE_ADDR"`
	SSHPort      int    `env:"CYBER_ROGUE_SSH_PORT" envDefault:"2222"`
	SSHHostKey   string `env:"CYBER_ROGUE_SSH_HOST_KEY" envDefault:".ssh/host_ed25519"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	}
	if cfg.LeaderboardDSN == "" && cfg.LeaderboardDriver == "sqlite" {
		cfg.LeaderboardDSN = filepath.Join(cfg.DataDir, "leaderboard.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.FOVRadius < 1 {
		return fmt.Errorf("config: fov radius %d must be positive", c.FOVRadius)
	}
	if c.TurnDelay < 0 {
		return fmt.Errorf("config: turn delay %s must not be negative", c.TurnDelay)
	}
	switch c.LeaderboardDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown leaderboard driver %q", c.LeaderboardDriver)
	}
	if c.SSHPort < 1 || c.SSHPort > 65535 {
		return fmt.Errorf("config: ssh port %d out of range", c.SSHPort)
	}
	return nil
}

// DefaultDataDir follows the XDG base directory layout:
// $XDG_DATA_HOME/cyber-rogue, defaulting to ~/.local/share/cyber-rogue.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}

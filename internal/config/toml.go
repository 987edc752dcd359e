// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	DBPath     *string          `toml:"db-path"`
	LogLevel   *string          `toml:"log-level"`
	Onboarding OnboardingConfig `toml:"onboarding"`
	Practice   PracticeConfig   `toml:"practice"`
	Stats      StatsConfig      `toml:"stats"`
}

// OnboardingConfig holds defaults offered when creating a profile.
type OnboardingConfig struct {
	DaysPerWeek   *int `toml:"days"`
	MinutesPerDay *int `toml:"minutes"`
	Listening     *int `toml:"listening"`
	Reading       *int `toml:"reading"`
	Writing       *int `toml:"writing"`
	Speaking      *int `toml:"speaking"`
	Fluency       *int `toml:"fluency"`
	Pronunciation *int `toml:"pronunciation"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Skill         *string `toml:"skill"`
	TargetDivisor *int    `toml:"target-divisor"`
}

// StatsConfig maps stats output settings.
type StatsConfig struct {
	Last        *int `toml:"last"`
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
